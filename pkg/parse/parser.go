// Package parse extracts structured events from raw router log datagrams.
//
// The recognized grammar, anywhere inside the payload:
//
//	@<in|out> <TCP|UDP> from <endpoint>:<port> to <endpoint>:<port>
//
// where an endpoint is either a bare IPv4 address or a hostname followed by a
// parenthesized IPv4 address ("gw.lan (192.168.1.1)"). Routers normally emit
// bare IPs; the hostname form is tolerated so pre-resolved or proxy-annotated
// input parses with the same grammar.
package parse

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/leshylabs/LinkLog/pkg/event"
)

// Parse extracts an event from one datagram payload. The second return value
// is false when the payload does not match the grammar; that is the expected
// outcome for unrelated traffic on the listening port and carries no error.
func Parse(raw []byte) (event.Event, bool) {
	s := string(raw)
	for i := 0; i < len(s); i++ {
		if s[i] != '@' {
			continue
		}
		if ev, ok := parseAfterAt(s[i+1:]); ok {
			return ev, true
		}
	}
	return event.Event{}, false
}

func parseAfterAt(s string) (event.Event, bool) {
	var ev event.Event
	sc := &scanner{rest: s}

	switch {
	case sc.literal("in "):
		ev.Direction = event.In
	case sc.literal("out "):
		ev.Direction = event.Out
	default:
		return ev, false
	}

	switch {
	case sc.literal("TCP"):
		ev.Protocol = event.TCP
	case sc.literal("UDP"):
		ev.Protocol = event.UDP
	default:
		return ev, false
	}

	if !sc.literal(" from ") {
		return ev, false
	}
	host, ip, ok := sc.endpoint()
	if !ok {
		return ev, false
	}
	ev.SourceHostname, ev.SourceIP = host, ip

	if !sc.literal(":") {
		return ev, false
	}
	if ev.SourcePort, ok = sc.port(); !ok {
		return ev, false
	}

	if !sc.literal(" to ") {
		return ev, false
	}
	if host, ip, ok = sc.endpoint(); !ok {
		return ev, false
	}
	ev.DestHostname, ev.DestIP = host, ip

	if !sc.literal(":") {
		return ev, false
	}
	if ev.DestPort, ok = sc.port(); !ok {
		return ev, false
	}

	// Anything after the destination port (rate info, trailing junk) is ignored.
	return ev, true
}

// scanner consumes the payload left to right. Each method either consumes its
// production and returns true, or leaves the position untouched.
type scanner struct {
	rest string
}

func (sc *scanner) literal(lit string) bool {
	if strings.HasPrefix(sc.rest, lit) {
		sc.rest = sc.rest[len(lit):]
		return true
	}
	return false
}

// endpoint parses a bare IPv4 address, or a hostname followed by a
// parenthesized IPv4 address with an optional space before the paren.
func (sc *scanner) endpoint() (host string, ip netip.Addr, ok bool) {
	if ip, ok = sc.ipv4(); ok {
		return "", ip, true
	}

	n := 0
	for n < len(sc.rest) && isHostByte(sc.rest[n]) {
		n++
	}
	if n == 0 {
		return "", netip.Addr{}, false
	}

	save := sc.rest
	host = sc.rest[:n]
	sc.rest = sc.rest[n:]
	sc.literal(" ")
	if !sc.literal("(") {
		sc.rest = save
		return "", netip.Addr{}, false
	}
	if ip, ok = sc.ipv4(); !ok || !sc.literal(")") {
		sc.rest = save
		return "", netip.Addr{}, false
	}
	return host, ip, true
}

func (sc *scanner) ipv4() (netip.Addr, bool) {
	n := 0
	for n < len(sc.rest) && (isDigit(sc.rest[n]) || sc.rest[n] == '.') {
		n++
	}
	if n == 0 {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(sc.rest[:n])
	if err != nil || !addr.Is4() {
		return netip.Addr{}, false
	}
	sc.rest = sc.rest[n:]
	return addr, true
}

// port consumes 1-6 digits. Values that do not fit a 16-bit port fail the
// parse rather than wrapping.
func (sc *scanner) port() (uint16, bool) {
	n := 0
	for n < len(sc.rest) && isDigit(sc.rest[n]) {
		n++
	}
	if n == 0 || n > 6 {
		return 0, false
	}
	v, err := strconv.Atoi(sc.rest[:n])
	if err != nil || v > 0xFFFF {
		return 0, false
	}
	sc.rest = sc.rest[n:]
	return uint16(v), true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isHostByte covers the characters a router will embed in a hostname.
func isHostByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', isDigit(b):
		return true
	case b == '.', b == '-', b == '_':
		return true
	}
	return false
}
