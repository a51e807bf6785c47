package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pulseagent/pulseagent/internal/capture"
	"github.com/pulseagent/pulseagent/internal/cloudbrain"
	"github.com/pulseagent/pulseagent/internal/config"
	"github.com/pulseagent/pulseagent/internal/executor"
	"github.com/pulseagent/pulseagent/internal/idle"
	"github.com/pulseagent/pulseagent/internal/input"
	"github.com/pulseagent/pulseagent/internal/logging"
	"github.com/pulseagent/pulseagent/internal/persistence"
	"github.com/pulseagent/pulseagent/internal/pulse"
	"github.com/pulseagent/pulseagent/internal/replay"
)

// controlAddr is the loopback-only address the serve command's debug
// control endpoint listens on, and the address the approve/dismiss
// subcommands hit. It exists purely for headless testing: a real overlay
// would call Engine.Approve/Dismiss in-process instead.
const controlAddr = "127.0.0.1:47651"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the capture/predict/execute cycle until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cmd)
		},
	}
}

func runServe(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log)
	defer log.Sync()

	idleSensor := idle.New()
	captureSource := capture.New(cfg.Capture.FPS)
	synth := input.New()
	exec := executor.New(synth, log, cfg.Execution.MinDelayMs, cfg.Execution.MaxDelayMs, cfg.Execution.Seed)

	predictor, err := cloudbrain.New(cloudbrain.Config{
		Backend:       cfg.Predictor.Backend,
		Endpoint:      cfg.Predictor.Endpoint,
		APIKey:        cfg.Predictor.APIKey,
		Model:         cfg.Predictor.Model,
		Timeout:       cfg.Predictor.Timeout,
		MinConfidence: cfg.Predictor.MinConfidence,
	})
	if err != nil {
		return fmt.Errorf("serve: predictor: %w", err)
	}

	var recorder *replay.Recorder
	if cfg.Replay.Enabled {
		recorder, err = replay.New(log, cfg.Replay.Dir, cfg.Replay.MaxWidth, cfg.Replay.FPS, cfg.Replay.CursorColor, cfg.Replay.CursorRadius, cfg.Replay.RippleColor)
		if err != nil {
			return fmt.Errorf("serve: replay: %w", err)
		}
	}

	var ledger *persistence.Store
	if cfg.Ledger.Enabled {
		ledger, err = persistence.Open(cfg.Ledger.DBPath)
		if err != nil {
			return fmt.Errorf("serve: ledger: %w", err)
		}
		defer ledger.Close()
	}

	machine := pulse.NewMachine(log)
	engine := pulse.New(pulse.Config{
		FPS:              cfg.Capture.FPS,
		BufferSeconds:    cfg.Capture.BufferSeconds,
		PauseThresholdMs: cfg.Capture.PauseThresholdMs,
		MinConfidence:    cfg.Predictor.MinConfidence,
		CoolingPeriodMs:  cfg.Execution.CoolingPeriodMs,
		MonitorWidth:     cfg.Capture.MonitorWidth,
		MonitorHeight:    cfg.Capture.MonitorHeight,
	}, log, machine, idleSensor, captureSource, predictor, exec, wrapRecorder(recorder), wrapLedger(ledger))

	stopControl := startControlServer(engine, log)
	defer stopControl()

	go logEvents(ctx, engine, log)

	log.Infow("pulseagent starting", "fps", cfg.Capture.FPS, "backend", cfg.Predictor.Backend)
	return engine.Run(ctx)
}

func logEvents(ctx context.Context, engine *pulse.Engine, log *zap.SugaredLogger) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-engine.Events():
			if !ok {
				return
			}
			log.Infow("pulse event", "kind", evt.Kind, "message", evt.Message)
		}
	}
}

// wrapRecorder adapts a possibly-nil *replay.Recorder to the pulse.ReplayRecorder
// interface, since a nil concrete pointer stored in a non-nil interface value
// would otherwise defeat the engine's own nil check.
func wrapRecorder(r *replay.Recorder) pulse.ReplayRecorder {
	if r == nil {
		return nil
	}
	return r
}

func wrapLedger(s *persistence.Store) pulse.Ledger {
	if s == nil {
		return nil
	}
	return s
}

// startControlServer runs a loopback-only HTTP endpoint accepting
// POST /approve and POST /dismiss, for headless testing without a real
// overlay. It never fails serve's startup if the port is unavailable — a
// warning is logged and the engine still runs, just without the debug hook.
func startControlServer(engine *pulse.Engine, log *zap.SugaredLogger) func() {
	mux := http.NewServeMux()
	mux.HandleFunc("/approve", func(w http.ResponseWriter, r *http.Request) {
		engine.Approve()
		writeControlAck(w)
	})
	mux.HandleFunc("/dismiss", func(w http.ResponseWriter, r *http.Request) {
		engine.Dismiss()
		writeControlAck(w)
	})

	ln, err := net.Listen("tcp", controlAddr)
	if err != nil {
		log.Warnw("control endpoint unavailable", "addr", controlAddr, "error", err)
		return func() {}
	}
	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(ln) }()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func writeControlAck(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
