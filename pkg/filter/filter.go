// Package filter decides which parsed events are shown.
package filter

import (
	"fmt"
	"strings"

	"github.com/leshylabs/LinkLog/pkg/event"
)

// Criteria is the raw filter configuration: wildcard patterns for the IP and
// host slots, enum values for direction and protocol. Empty means unset.
type Criteria struct {
	Direction  string
	Protocol   string
	IP         string
	SourceIP   string
	DestIP     string
	Host       string
	SourceHost string
	DestHost   string
}

// Set is an immutable collection of compiled filter slots. Built once at
// startup and never mutated, so it needs no synchronization.
type Set struct {
	direction event.Direction // "" when unset
	protocol  event.Protocol  // "" when unset

	ip, sourceIP, destIP       *Matcher
	host, sourceHost, destHost *Matcher
}

// New compiles the criteria into a Set. Direction and protocol are validated
// against their closed enums case-insensitively; an invalid value is a
// configuration error the caller must treat as fatal before reading traffic.
func New(c Criteria) (*Set, error) {
	s := &Set{}

	switch strings.ToLower(c.Direction) {
	case "":
	case "in":
		s.direction = event.In
	case "out":
		s.direction = event.Out
	default:
		return nil, fmt.Errorf("invalid direction filter %q (want in or out)", c.Direction)
	}

	switch strings.ToUpper(c.Protocol) {
	case "":
	case "TCP":
		s.protocol = event.TCP
	case "UDP":
		s.protocol = event.UDP
	default:
		return nil, fmt.Errorf("invalid protocol filter %q (want TCP or UDP)", c.Protocol)
	}

	s.ip = Compile(c.IP)
	s.sourceIP = Compile(c.SourceIP)
	s.destIP = Compile(c.DestIP)
	s.host = Compile(c.Host)
	s.sourceHost = Compile(c.SourceHost)
	s.destHost = Compile(c.DestHost)
	return s, nil
}

// Accepts reports whether the event passes every active slot. Slots are
// evaluated in a fixed order and the first failing slot rejects; unset slots
// never reject.
func (s *Set) Accepts(ev *event.Event) bool {
	if s.direction != "" && ev.Direction != s.direction {
		return false
	}
	if s.protocol != "" && ev.Protocol != s.protocol {
		return false
	}

	srcIP, dstIP := ev.SourceIP.String(), ev.DestIP.String()
	if s.ip != nil && !s.ip.Match(srcIP) && !s.ip.Match(dstIP) {
		return false
	}
	if s.sourceIP != nil && !s.sourceIP.Match(srcIP) {
		return false
	}
	if s.destIP != nil && !s.destIP.Match(dstIP) {
		return false
	}

	if s.host != nil && !matchHost(s.host, ev.SourceHostname) && !matchHost(s.host, ev.DestHostname) {
		return false
	}
	if s.sourceHost != nil && !matchHost(s.sourceHost, ev.SourceHostname) {
		return false
	}
	if s.destHost != nil && !matchHost(s.destHost, ev.DestHostname) {
		return false
	}
	return true
}

// An absent hostname never satisfies an active host slot, even one whose
// pattern would match the empty string.
func matchHost(m *Matcher, host string) bool {
	return host != "" && m.Match(host)
}

// WantsSourceHost reports whether any active slot needs the source hostname.
// The enricher uses this to decide if reverse resolution is worth the lookup.
func (s *Set) WantsSourceHost() bool {
	return s.host != nil || s.sourceHost != nil
}

// WantsDestHost reports whether any active slot needs the destination hostname.
func (s *Set) WantsDestHost() bool {
	return s.host != nil || s.destHost != nil
}
