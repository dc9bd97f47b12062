package engine

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leshylabs/LinkLog/pkg/filter"
	"github.com/leshylabs/LinkLog/pkg/output"
)

// captureOutput collects every line written through the fan-out.
type captureOutput struct {
	mu    sync.Mutex
	lines []string
}

func (c *captureOutput) WriteBatch(entries [][]byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		c.lines = append(c.lines, string(e))
	}
	return nil
}

func (c *captureOutput) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func startPipeline(t *testing.T, criteria filter.Criteria, cfg EnricherConfig, template string) (*Ring, *Pipeline, *captureOutput) {
	t.Helper()

	ring, err := NewRing(128)
	require.NoError(t, err)

	filters := mustFilters(t, criteria)
	enricher := NewEnricher(nil, filters, cfg)
	capture := &captureOutput{}

	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)

	p := NewPipeline(l, ring, enricher, filters, template, output.NewFanOut(capture))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		p.Wait()
	})
	p.Start(ctx)
	return ring, p, capture
}

func TestPipeline_EndToEnd(t *testing.T) {
	ring, p, capture := startPipeline(t,
		filter.Criteria{},
		EnricherConfig{SuppressSource: true, SuppressDest: true, NumericPorts: true},
		"%t [%i, %p] %s:%S -> %d:%D",
	)

	require.NoError(t, ring.Push([]byte("@in UDP from 192.168.1.5:53124 to 8.8.8.8:53")))

	want := regexp.MustCompile(`^[A-Z][a-z]{2} [ \d]\d \d{2}:\d{2}:\d{2} \[ in, UDP\] 192\.168\.1\.5:53124 -> 8\.8\.8\.8:53\n$`)
	require.Eventually(t, func() bool {
		return len(capture.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Regexp(t, want, capture.snapshot()[0])

	s := p.Stats()
	assert.Equal(t, uint64(1), s.Received)
	assert.Equal(t, uint64(1), s.Parsed)
	assert.Equal(t, uint64(1), s.Emitted)
}

func TestPipeline_FilterRejects(t *testing.T) {
	ring, p, capture := startPipeline(t,
		filter.Criteria{Protocol: "TCP"},
		EnricherConfig{SuppressSource: true, SuppressDest: true, NumericPorts: true},
		"%s:%S -> %d:%D",
	)

	require.NoError(t, ring.Push([]byte("@in UDP from 192.168.1.5:53124 to 8.8.8.8:53")))

	require.Eventually(t, func() bool {
		return p.Stats().Rejected == 1
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, capture.snapshot())
}

func TestPipeline_MalformedDroppedSilently(t *testing.T) {
	ring, p, capture := startPipeline(t,
		filter.Criteria{},
		EnricherConfig{SuppressSource: true, SuppressDest: true},
		"%s",
	)

	require.NoError(t, ring.Push([]byte("lease renewed for 192.168.1.50")))
	require.NoError(t, ring.Push([]byte("@out TCP from 10.0.0.2:51000 to 93.184.216.34:80")))

	require.Eventually(t, func() bool {
		return p.Stats().Emitted == 1
	}, time.Second, 10*time.Millisecond)

	s := p.Stats()
	assert.Equal(t, uint64(2), s.Received)
	assert.Equal(t, uint64(1), s.Parsed, "the malformed payload never becomes an event")
	assert.Equal(t, uint64(0), s.Rejected)
	assert.Len(t, capture.snapshot(), 1)
}

func TestPipeline_ServiceNameDisplay(t *testing.T) {
	ring, _, capture := startPipeline(t,
		filter.Criteria{},
		EnricherConfig{SuppressSource: true, SuppressDest: true},
		"%d:%D",
	)

	require.NoError(t, ring.Push([]byte("@out TCP from 10.0.0.2:51000 to 93.184.216.34:80")))

	require.Eventually(t, func() bool {
		return len(capture.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "93.184.216.34:http\n", capture.snapshot()[0])
}

func TestPipeline_OutputHotSwap(t *testing.T) {
	ring, p, first := startPipeline(t,
		filter.Criteria{},
		EnricherConfig{SuppressSource: true, SuppressDest: true, NumericPorts: true},
		"%a",
	)

	second := &captureOutput{}
	p.SetOutput(output.NewFanOut(second))

	require.NoError(t, ring.Push([]byte("@in UDP from 192.168.1.5:53124 to 8.8.8.8:53")))

	require.Eventually(t, func() bool {
		return len(second.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, first.snapshot())
}
