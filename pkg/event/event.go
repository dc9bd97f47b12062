package event

import (
	"fmt"
	"net/netip"
)

// Direction is the side of the firewall a connection crossed.
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// Padded returns the direction right-aligned in a fixed 3-character field so
// that "in" and "out" render at equal width.
func (d Direction) Padded() string {
	return fmt.Sprintf("%3s", string(d))
}

// Protocol is the transport protocol reported by the router.
type Protocol string

const (
	TCP Protocol = "TCP"
	UDP Protocol = "UDP"
)

// Event is one parsed router log datagram. The parser fills the six mandatory
// fields (and the hostnames when the payload embeds them); the enricher fills
// the remaining hostname and display fields before filtering and rendering.
type Event struct {
	Direction Direction
	Protocol  Protocol

	SourceIP   netip.Addr
	DestIP     netip.Addr
	SourcePort uint16
	DestPort   uint16

	// Resolved or payload-embedded hostnames. Empty means unknown.
	SourceHostname string
	DestHostname   string

	// The host and port strings actually chosen for output: hostname or IP,
	// service name or numeric port. Set by the enricher, read by the renderer.
	SourceDisplay     string
	DestDisplay       string
	SourcePortDisplay string
	DestPortDisplay   string
}
