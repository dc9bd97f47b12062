package engine

import (
	"net/netip"
	"strconv"

	"github.com/leshylabs/LinkLog/pkg/event"
	"github.com/leshylabs/LinkLog/pkg/filter"
	"github.com/leshylabs/LinkLog/pkg/render"
)

// Resolver is what the enricher needs from the hostname resolver.
type Resolver interface {
	Resolve(ip netip.Addr) string
}

// EnricherConfig mirrors the display knobs from the configuration.
type EnricherConfig struct {
	SuppressSource bool
	SuppressDest   bool
	NumericPorts   bool
}

// Enricher fills hostname and display fields between parsing and filtering.
// Reverse resolution is attempted for a side only when something will consume
// the result: a host filter covering that side, or hostname display not being
// suppressed. Everything else skips the (potentially blocking) lookup.
type Enricher struct {
	resolver Resolver // nil when resolution is disabled entirely
	filters  *filter.Set
	cfg      EnricherConfig
}

func NewEnricher(resolver Resolver, filters *filter.Set, cfg EnricherConfig) *Enricher {
	return &Enricher{
		resolver: resolver,
		filters:  filters,
		cfg:      cfg,
	}
}

func (e *Enricher) Enrich(ev *event.Event) {
	if e.resolver != nil {
		// Payload-embedded hostnames already satisfy that side.
		if ev.SourceHostname == "" && (e.filters.WantsSourceHost() || !e.cfg.SuppressSource) {
			ev.SourceHostname = e.resolver.Resolve(ev.SourceIP)
		}
		if ev.DestHostname == "" && (e.filters.WantsDestHost() || !e.cfg.SuppressDest) {
			ev.DestHostname = e.resolver.Resolve(ev.DestIP)
		}
	}

	ev.SourceDisplay = hostDisplay(ev.SourceIP, ev.SourceHostname, e.cfg.SuppressSource)
	ev.DestDisplay = hostDisplay(ev.DestIP, ev.DestHostname, e.cfg.SuppressDest)
	ev.SourcePortDisplay = e.portDisplay(ev.Protocol, ev.SourcePort)
	ev.DestPortDisplay = e.portDisplay(ev.Protocol, ev.DestPort)
}

func hostDisplay(ip netip.Addr, host string, suppress bool) string {
	if suppress || host == "" {
		return ip.String()
	}
	return host
}

func (e *Enricher) portDisplay(proto event.Protocol, port uint16) string {
	if !e.cfg.NumericPorts {
		if name, ok := render.ServiceName(proto, port); ok {
			return name
		}
	}
	return strconv.Itoa(int(port))
}
