package resolve

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// Lookuper performs one reverse lookup for an IP address.
type Lookuper interface {
	LookupAddr(ip netip.Addr) (string, error)
}

// DNSLookuper answers reverse lookups with a PTR query against the system's
// configured nameservers. Every query carries the client timeout, so a dead
// nameserver stalls the pipeline for at most timeout * len(servers).
type DNSLookuper struct {
	client  *dns.Client
	servers []string
}

func NewDNSLookuper(timeout time.Duration) (*DNSLookuper, error) {
	cc, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return nil, fmt.Errorf("reading resolver config: %w", err)
	}
	servers := make([]string, 0, len(cc.Servers))
	for _, srv := range cc.Servers {
		servers = append(servers, net.JoinHostPort(srv, cc.Port))
	}
	return &DNSLookuper{
		client:  &dns.Client{Timeout: timeout},
		servers: servers,
	}, nil
}

func (d *DNSLookuper) LookupAddr(ip netip.Addr) (string, error) {
	arpa, err := dns.ReverseAddr(ip.String())
	if err != nil {
		return "", err
	}

	m := new(dns.Msg)
	m.SetQuestion(arpa, dns.TypePTR)

	var lastErr error
	for _, server := range d.servers {
		in, _, err := d.client.Exchange(m, server)
		if err != nil {
			lastErr = err
			continue
		}
		for _, rr := range in.Answer {
			if ptr, ok := rr.(*dns.PTR); ok {
				return strings.TrimSuffix(ptr.Ptr, "."), nil
			}
		}
		// Got an answer with no PTR record: the address has no name.
		return "", nil
	}
	if lastErr == nil {
		lastErr = errors.New("no nameservers configured")
	}
	return "", lastErr
}
