// Package control is the runtime control plane: a Redis pub/sub channel
// carrying JSON commands. Filters and the template are immutable after
// startup; commands only touch the output set and report state.
//
// Supported commands:
//
//	{"command": "quiet", "value": true}   drop or restore the console sink
//	{"command": "reopen"}                 reopen the log file (rotation)
//	{"command": "stats"}                  log the pipeline counters
package control

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/leshylabs/LinkLog/pkg/engine"
	"github.com/leshylabs/LinkLog/pkg/output"
	"github.com/leshylabs/LinkLog/pkg/resolve"
)

type Watcher struct {
	l        *logrus.Logger
	client   *redis.Client
	channel  string
	pipeline *engine.Pipeline
	outputs  output.Set
	resolver *resolve.Resolver // nil when resolution is disabled
}

func NewWatcher(l *logrus.Logger, client *redis.Client, channel string, pipeline *engine.Pipeline, outputs output.Set, resolver *resolve.Resolver) *Watcher {
	return &Watcher{
		l:        l,
		client:   client,
		channel:  channel,
		pipeline: pipeline,
		outputs:  outputs,
		resolver: resolver,
	}
}

// Start subscribes and handles commands until ctx is canceled. Blocking call.
func (w *Watcher) Start(ctx context.Context) {
	pubsub := w.client.Subscribe(ctx, w.channel)
	defer pubsub.Close()
	w.l.WithField("channel", w.channel).Info("control watcher started")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			w.handle(msg.Payload)
		}
	}
}

func (w *Watcher) handle(payload string) {
	if !gjson.Valid(payload) {
		w.l.WithField("payload", payload).Warn("control message is not valid JSON")
		return
	}

	cmd := gjson.Get(payload, "command").String()
	switch cmd {
	case "quiet":
		quiet := gjson.Get(payload, "value").Bool()
		w.pipeline.SetOutput(w.outputs.Build(quiet))
		w.l.WithField("quiet", quiet).Info("console output toggled")

	case "reopen":
		if w.outputs.File == nil {
			w.l.Warn("reopen requested but no log file is configured")
			return
		}
		if err := w.outputs.File.Reopen(); err != nil {
			w.l.WithError(err).Error("log file reopen failed")
			return
		}
		w.l.Info("log file reopened")

	case "stats":
		s := w.pipeline.Stats()
		fields := logrus.Fields{
			"received": s.Received,
			"parsed":   s.Parsed,
			"rejected": s.Rejected,
			"emitted":  s.Emitted,
			"dropped":  s.Dropped,
			"queued":   s.Queued,
		}
		if w.resolver != nil {
			fields["cached_hosts"] = w.resolver.CacheLen()
		}
		w.l.WithFields(fields).Info("pipeline stats")

	default:
		w.l.WithField("command", cmd).Warn("unknown control command")
	}
}
