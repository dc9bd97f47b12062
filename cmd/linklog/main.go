package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/leshylabs/LinkLog/pkg/config"
	"github.com/leshylabs/LinkLog/pkg/control"
	"github.com/leshylabs/LinkLog/pkg/engine"
	"github.com/leshylabs/LinkLog/pkg/filter"
	"github.com/leshylabs/LinkLog/pkg/ingest"
	"github.com/leshylabs/LinkLog/pkg/output"
	"github.com/leshylabs/LinkLog/pkg/resolve"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	listenAddr := flag.String("listen", "", "override the UDP listen address")
	quiet := flag.Bool("quiet", false, "suppress console output")
	flag.Parse()

	l := logrus.New()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			l.WithError(err).Fatal("Failed to load config")
		}
	}
	if *listenAddr != "" {
		cfg.Listen.UDPAddr = *listenAddr
	}
	if *quiet {
		cfg.Output.Quiet = true
	}

	if err := configureLogger(l, cfg.Logging); err != nil {
		l.WithError(err).Fatal("Failed to configure logging")
	}

	// Filters must compile before any traffic is read; a bad enum value is an
	// operator error, not something to degrade around.
	filters, err := filter.New(filter.Criteria{
		Direction:  cfg.Filters.Direction,
		Protocol:   cfg.Filters.Protocol,
		IP:         cfg.Filters.IP,
		SourceIP:   cfg.Filters.SourceIP,
		DestIP:     cfg.Filters.DestIP,
		Host:       cfg.Filters.Host,
		SourceHost: cfg.Filters.SourceHost,
		DestHost:   cfg.Filters.DestHost,
	})
	if err != nil {
		l.WithError(err).Fatal("Invalid filter configuration")
	}

	ring, err := engine.NewRing(65536)
	if err != nil {
		l.WithError(err).Fatal("Failed to create ring buffer")
	}

	// Skip the resolver entirely when nothing can consume a hostname.
	var resolver *resolve.Resolver
	needSource := filters.WantsSourceHost() || !cfg.Resolve.SuppressSource
	needDest := filters.WantsDestHost() || !cfg.Resolve.SuppressDest
	if needSource || needDest {
		lookuper, err := resolve.NewDNSLookuper(cfg.Resolve.Timeout.Duration())
		if err != nil {
			l.WithError(err).Fatal("Failed to set up reverse DNS")
		}
		resolver = resolve.New(l, lookuper, resolve.NewMapCache(), cfg.Resolve.Cache)
	}

	// Keep the interface nil when resolution is disabled; a typed nil pointer
	// would defeat the enricher's nil check.
	var enrichResolver engine.Resolver
	if resolver != nil {
		enrichResolver = resolver
	}
	enricher := engine.NewEnricher(enrichResolver, filters, engine.EnricherConfig{
		SuppressSource: cfg.Resolve.SuppressSource,
		SuppressDest:   cfg.Resolve.SuppressDest,
		NumericPorts:   cfg.Display.NumericPorts,
	})

	outputs := output.Set{Console: output.NewConsole()}
	if cfg.Output.LogFile != "" {
		f, err := output.NewFile(cfg.Output.LogFile)
		if err != nil {
			l.WithError(err).Fatal("Failed to open log file")
		}
		defer f.Close()
		outputs.File = f
	}
	if cfg.Output.HTTPURL != "" {
		outputs.Extra = append(outputs.Extra, output.NewHTTP(cfg.Output.HTTPURL))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if cfg.Redis.PublishChannel != "" {
			outputs.Extra = append(outputs.Extra, output.NewRedis(rdb, cfg.Redis.PublishChannel))
		}
	}

	pipeline := engine.NewPipeline(l, ring, enricher, filters, cfg.Display.Template, outputs.Build(cfg.Output.Quiet))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipeline.Start(ctx)

	if rdb != nil && cfg.Redis.ControlChannel != "" {
		watcher := control.NewWatcher(l, rdb, cfg.Redis.ControlChannel, pipeline, outputs, resolver)
		go watcher.Start(ctx)
	}

	udp := ingest.NewUDP(l, cfg.Listen.UDPAddr, ring)
	go func() {
		if err := udp.Start(ctx); err != nil {
			l.WithError(err).Fatal("UDP listener died")
		}
	}()

	if cfg.Listen.TCPAddr != "" {
		tcp := ingest.NewTCP(l, cfg.Listen.TCPAddr, ring)
		go func() {
			if err := tcp.Start(ctx); err != nil {
				l.WithError(err).Fatal("TCP listener died")
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	l.Info("linklog running")

	for s := range sig {
		if s != syscall.SIGHUP {
			break
		}
		// SIGHUP: external log rotation wants a fresh file handle.
		if outputs.File == nil {
			continue
		}
		if err := outputs.File.Reopen(); err != nil {
			l.WithError(err).Error("Log file reopen failed")
		} else {
			l.Info("Log file reopened")
		}
	}

	l.Info("Shutting down")
	cancel()

	// Let the worker flush its last batch before the file output closes.
	waitDone := make(chan struct{})
	go func() {
		pipeline.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		l.Warn("Pipeline did not drain in time")
	}
}
