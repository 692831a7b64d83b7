// cmd/multitrack/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/tamzrod/ccd-multitrack/internal/attribute"
	"github.com/tamzrod/ccd-multitrack/internal/config"
	"github.com/tamzrod/ccd-multitrack/internal/metrics"
	"github.com/tamzrod/ccd-multitrack/internal/multitrack"
	"github.com/tamzrod/ccd-multitrack/internal/poller"
	"github.com/tamzrod/ccd-multitrack/internal/status"
	"github.com/tamzrod/ccd-multitrack/internal/track"
	"github.com/tamzrod/ccd-multitrack/internal/writer"
)

func main() {
	logger, _ := zap.NewDevelopment()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	if len(os.Args) < 2 {
		zap.S().Fatal("usage: multitrack <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		zap.S().Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		zap.S().Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	mc := cfg.MultiTrack

	// --------------------
	// Metrics
	// --------------------

	reg := prometheus.NewRegistry()
	mt := metrics.New(reg)

	if mc.Metrics.Listen != "" {
		go func() {
			zap.S().Infof("serving metrics on %s", mc.Metrics.Listen)
			if err := http.ListenAndServe(mc.Metrics.Listen, metrics.Handler(reg)); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zap.S().Errorf("metrics server failed: %v", err)
			}
		}()
	}

	opts := []multitrack.Option{
		multitrack.WithLogger(logger.Named("multitrack")),
		multitrack.WithMetrics(mt),
		multitrack.WithMaxSize(*mc.MaxSizeY),
		multitrack.WithRefiner(buildRefiner(mc.Refine)),
	}

	// --------------------
	// Publish target (optional)
	// --------------------

	var statusWriter writer.StatusWriter
	statusEnabled := false

	if mc.Publish != nil {
		plan, err := writer.BuildPlan(mc.Publish)
		if err != nil {
			zap.S().Fatalf("writer plan failed: %v", err)
		}

		client, closeWriter, err := writer.BuildEndpointClient(mc.Publish)
		if err != nil {
			zap.S().Fatalf("writer client failed (endpoint=%s): %v", mc.Publish.Endpoint, err)
		}
		defer closeWriter()

		wlog := writer.WithLogger(logger.Named("writer"))
		opts = append(opts, multitrack.WithPublisher(writer.New(plan, client, wlog)))
		statusWriter, statusEnabled = writer.NewStatusWriter(plan, client, wlog)
	}

	tracks := multitrack.New(opts...)

	// report delivers the outcome of every pass that actually ran.
	var reported uint64
	report := func() {
		if tracks.Passes() == reported {
			return
		}
		reported = tracks.Passes()

		attrs := attribute.NewList()
		tracks.StoreTrackAttributes(attrs)
		for _, a := range attrs.All() {
			zap.S().Debugf("%s = %d", a.Name, a.Value)
		}
		zap.S().Infof("validated %d track(s), total data height %d, %d correction(s)",
			tracks.Size(), tracks.TotalDataHeight(), len(tracks.Messages()))

		if !statusEnabled {
			return
		}
		snap := status.Observe(
			tracks.Size(),
			len(tracks.Messages()),
			tracks.TotalDataHeight(),
			tracks.MaxSize(),
			tracks.Passes(),
		)
		if err := statusWriter.WriteStatus(snap); err != nil {
			zap.S().Errorf("status write failed: %v", err)
		}
	}

	// --------------------
	// Initial geometry + user arrays
	// --------------------

	tracks.SetMaxSize(*mc.MaxSizeY)

	initial := map[multitrack.Param][]int32{
		multitrack.ParamStart: mc.Tracks.Start,
		multitrack.ParamEnd:   mc.Tracks.End,
		multitrack.ParamBin:   mc.Tracks.Bin,
	}
	for _, p := range multitrack.Params {
		if err := tracks.WriteArray(p, initial[p]); err != nil {
			zap.S().Errorf("initial %s rejected: %v", p, err)
		}
	}
	report()

	if mc.Source == nil {
		return
	}

	// --------------------
	// Source poller
	// --------------------

	p, closePoller, err := poller.Build(mc.Source, poller.WithLogger(logger.Named("poller")))
	if err != nil {
		zap.S().Fatalf("poller build failed (endpoint=%s): %v", mc.Source.Endpoint, err)
	}
	defer closePoller()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := make(chan poller.PollResult)
	go p.Run(ctx, out)

	for {
		select {
		case <-ctx.Done():
			zap.S().Infof("shutting down")
			return

		case res := <-out:
			if res.Err != nil {
				zap.S().Errorf("poll failed: %v", res.Err)
				continue
			}
			for _, param := range multitrack.Params {
				values, ok := res.Arrays[param]
				if !ok {
					continue
				}
				if err := tracks.WriteArray(param, values); err != nil {
					zap.S().Errorf("write %s rejected: %v", param, err)
				}
			}
			report()
		}
	}
}

func buildRefiner(rc config.RefineConfig) track.Refiner {
	var refiners []track.Refiner
	if rc.MaxBinning > 0 {
		refiners = append(refiners, track.MaxBinning(rc.MaxBinning))
	}
	if rc.UniformHeight {
		refiners = append(refiners, track.UniformHeight())
	}
	if len(refiners) == 0 {
		return nil
	}
	return track.Chain(refiners...)
}
