package ingest

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/leshylabs/LinkLog/pkg/engine"
)

// TCP accepts newline-delimited log lines, one connection per relay. Some
// syslog forwarders only speak TCP; the lines carry the same grammar as the
// UDP datagrams.
type TCP struct {
	l    *logrus.Logger
	addr string
	ring *engine.Ring
}

func NewTCP(l *logrus.Logger, addr string, ring *engine.Ring) *TCP {
	return &TCP{l: l, addr: addr, ring: ring}
}

// Start listens and accepts until ctx is canceled. Blocking call.
func (t *TCP) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", t.addr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	t.l.WithField("addr", t.addr).Info("TCP listener started")

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			t.l.WithError(err).Warn("TCP accept error")
			continue
		}
		go t.handle(conn)
	}
}

func (t *TCP) handle(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err != io.EOF {
				t.l.WithError(err).Debug("TCP read error")
			}
			return
		}
		_ = t.ring.Push(bytes.TrimRight(line, "\r\n"))
	}
}
