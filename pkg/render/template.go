// Package render turns an enriched event into its output line by substituting
// %-tokens in a user-supplied template.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leshylabs/LinkLog/pkg/event"
)

// timeComposite is what the %t shorthand stands for.
const timeComposite = "%M %T %h:%m:%z"

// Render expands template against ev at time now. Expansion is two-phase:
// the composite %t is rewritten into its constituent tokens first, then the
// atomic tokens are substituted in a single left-to-right pass. Substituted
// values are never rescanned, so a value containing a percent sign cannot
// trigger a second substitution. Unrecognized tokens and a trailing lone
// percent pass through unchanged.
func Render(template string, ev *event.Event, now time.Time) string {
	expanded := strings.ReplaceAll(template, "%t", timeComposite)

	var b strings.Builder
	b.Grow(len(expanded) + 32)
	for i := 0; i < len(expanded); i++ {
		c := expanded[i]
		if c != '%' || i+1 == len(expanded) {
			b.WriteByte(c)
			continue
		}
		val, ok := tokenValue(expanded[i+1], ev, now)
		if !ok {
			b.WriteByte(c)
			continue
		}
		b.WriteString(val)
		i++
	}
	return b.String()
}

func tokenValue(tok byte, ev *event.Event, now time.Time) (string, bool) {
	switch tok {
	case 'a':
		return ev.SourceIP.String(), true
	case 'A':
		return ev.DestIP.String(), true
	case 's':
		return ev.SourceDisplay, true
	case 'S':
		return ev.SourcePortDisplay, true
	case 'd':
		return ev.DestDisplay, true
	case 'D':
		return ev.DestPortDisplay, true
	case 'i':
		return ev.Direction.Padded(), true
	case 'p':
		return string(ev.Protocol), true
	case 'M':
		return now.Format("Jan"), true
	case 'T':
		return fmt.Sprintf("%2d", now.Day()), true
	case 'w':
		return now.Format("Mon"), true
	case 'y':
		// %y is the 4-digit year and %Y the 2-digit one. That is the reverse
		// of strftime, but it is the documented behavior and existing
		// templates rely on it.
		return strconv.Itoa(now.Year()), true
	case 'Y':
		return fmt.Sprintf("%02d", now.Year()%100), true
	case 'h':
		return fmt.Sprintf("%02d", now.Hour()), true
	case 'm':
		return fmt.Sprintf("%02d", now.Minute()), true
	case 'z':
		return fmt.Sprintf("%02d", now.Second()), true
	}
	return "", false
}
