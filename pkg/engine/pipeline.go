package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leshylabs/LinkLog/pkg/filter"
	"github.com/leshylabs/LinkLog/pkg/output"
	"github.com/leshylabs/LinkLog/pkg/parse"
	"github.com/leshylabs/LinkLog/pkg/render"
)

// Pipeline drains the ring and runs each datagram through
// parse → enrich → filter → render. A single worker keeps exactly one event
// in flight, so events are emitted in arrival order and a blocking reverse
// lookup stalls the line rather than reordering it.
//
// The filter set, template, and enricher are fixed at startup. Only the
// output fan-out is hot-swappable (quiet toggle from the control channel).
type Pipeline struct {
	l        *logrus.Logger
	ring     *Ring
	enricher *Enricher
	filters  *filter.Set
	template string

	out atomic.Pointer[output.FanOut]

	batchSize  int
	flushEvery time.Duration
	done       chan struct{}

	received atomic.Uint64
	parsed   atomic.Uint64
	rejected atomic.Uint64
	emitted  atomic.Uint64
}

func NewPipeline(l *logrus.Logger, ring *Ring, enricher *Enricher, filters *filter.Set, template string, out *output.FanOut) *Pipeline {
	p := &Pipeline{
		l:          l,
		ring:       ring,
		enricher:   enricher,
		filters:    filters,
		template:   template,
		batchSize:  16,
		flushEvery: 100 * time.Millisecond,
		done:       make(chan struct{}),
	}
	p.out.Store(out)
	return p
}

// SetOutput swaps the active output fan-out. Safe to call while the worker
// is running.
func (p *Pipeline) SetOutput(out *output.FanOut) {
	p.out.Store(out)
}

func (p *Pipeline) Start(ctx context.Context) {
	go p.worker(ctx)
}

// Wait blocks until the worker has flushed and exited after ctx cancellation.
func (p *Pipeline) Wait() {
	<-p.done
}

func (p *Pipeline) worker(ctx context.Context) {
	defer close(p.done)

	batch := make([][]byte, 0, p.batchSize)
	ticker := time.NewTicker(p.flushEvery)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := p.out.Load().WriteBatch(batch); err != nil {
			p.l.WithError(err).Error("output write failed")
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case <-ticker.C:
			flush()
		default:
			raw := p.ring.Pop()
			if raw == nil {
				time.Sleep(time.Millisecond)
				continue
			}
			p.received.Add(1)

			ev, ok := parse.Parse(raw)
			if !ok {
				// Unrecognized payloads are expected background noise on the
				// listening port. Drop without logging.
				continue
			}
			p.parsed.Add(1)

			p.enricher.Enrich(&ev)

			if !p.filters.Accepts(&ev) {
				p.rejected.Add(1)
				continue
			}

			line := render.Render(p.template, &ev, time.Now())
			batch = append(batch, append([]byte(line), '\n'))
			p.emitted.Add(1)

			if len(batch) >= p.batchSize {
				flush()
			}
		}
	}
}

// Stats is a snapshot of the pipeline counters.
type Stats struct {
	Received uint64
	Parsed   uint64
	Rejected uint64
	Emitted  uint64
	Dropped  uint64
	Queued   uint64
}

func (p *Pipeline) Stats() Stats {
	return Stats{
		Received: p.received.Load(),
		Parsed:   p.parsed.Load(),
		Rejected: p.rejected.Load(),
		Emitted:  p.emitted.Load(),
		Dropped:  p.ring.Dropped(),
		Queued:   p.ring.Len(),
	}
}
