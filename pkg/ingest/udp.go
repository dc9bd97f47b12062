// Package ingest receives raw router log lines and queues them for the
// pipeline. The listeners never parse; they only move bytes.
package ingest

import (
	"context"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/leshylabs/LinkLog/pkg/engine"
)

// UDP listens for router log datagrams and pushes each payload onto the ring.
type UDP struct {
	l    *logrus.Logger
	addr string
	ring *engine.Ring
}

func NewUDP(l *logrus.Logger, addr string, ring *engine.Ring) *UDP {
	return &UDP{l: l, addr: addr, ring: ring}
}

// Start binds and reads until ctx is canceled. Blocking call.
func (u *UDP) Start(ctx context.Context) error {
	addr, err := net.ResolveUDPAddr("udp", u.addr)
	if err != nil {
		return err
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	u.l.WithField("addr", u.addr).Info("UDP listener started")

	buf := make([]byte, 65535)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			u.l.WithError(err).Warn("UDP read error")
			continue
		}

		// buf is reused on the next read; the payload must be copied out.
		payload := make([]byte, n)
		copy(payload, buf[:n])

		// Tail drop on a full ring; logging every drop would only make the
		// overload worse. The drop counter shows up in stats.
		_ = u.ring.Push(payload)
	}
}
