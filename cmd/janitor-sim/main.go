package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/core"
	"github.com/automoto/janitors-nightmare/input"
	"github.com/automoto/janitors-nightmare/level"
	"github.com/automoto/janitors-nightmare/replay"
	"github.com/automoto/janitors-nightmare/script"
	"github.com/automoto/janitors-nightmare/systems"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	configPath string
	frames     uint64
	syncTest   bool
	realtime   bool
	record     bool
	verify     string
	bots       string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "TOML config file (defaults are used when empty)")
	flag.Uint64Var(&opts.frames, "frames", 0, "stop after this many frames (0 runs the whole match)")
	flag.BoolVar(&opts.syncTest, "synctest", false, "roll back and resimulate every frame, failing on checksum mismatch")
	flag.BoolVar(&opts.realtime, "realtime", false, "tick at session.fps instead of as fast as possible")
	flag.BoolVar(&opts.record, "record", false, "store a replay of the run")
	flag.StringVar(&opts.verify, "verify", "", "resimulate a stored replay by id and check its checksums")
	flag.StringVar(&opts.bots, "bots", "normal", "bot difficulty for both players: easy, normal or hard")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lvl, err := loadLevel(cfg)
	if err != nil {
		return err
	}

	simOpts := []core.Option{core.WithLogger(log)}
	if cfg.Script.RoundEnd != "" {
		rs, err := script.Load(cfg.Script.RoundEnd, log)
		if err != nil {
			return err
		}
		simOpts = append(simOpts, core.WithRoundOver(rs.Predicate()))
	}

	sim, err := core.New(cfg, lvl, simOpts...)
	if err != nil {
		return err
	}
	log.Info("simulation ready",
		zap.String("level", lvl.Name),
		zap.String("fingerprint", fmt.Sprintf("%016x", cfg.Fingerprint())),
	)

	if opts.verify != "" {
		return verify(ctx, log, cfg, sim, opts.verify)
	}

	difficulty, ok := config.ParseBotDifficulty(opts.bots)
	if !ok {
		return fmt.Errorf("unknown bot difficulty %q", opts.bots)
	}
	bots := [config.NumPlayers]*systems.Bot{}
	for p := range bots {
		bots[p] = systems.NewBot(p, difficulty)
	}
	source := input.SourceFunc(func(uint64) [config.NumPlayers]input.PlayerInput {
		var out [config.NumPlayers]input.PlayerInput
		for p, b := range bots {
			out[p] = input.PlayerInput{Bits: b.Input(sim.State()), Status: input.Confirmed}
		}
		return out
	})

	loop := core.NewGameLoop(sim, source, cfg.Session.FPS)
	if opts.syncTest {
		loop.WithSyncTest(core.NewSyncTest(sim, cfg.Session.CheckDistance))
	}
	var rec *replay.Recorder
	if opts.record || cfg.Replay.Enabled {
		rec = replay.NewRecorder(cfg, lvl.Name)
		loop.OnFrame(rec.Record)
	}

	switch {
	case opts.realtime:
		err = loop.Run(ctx)
	case opts.frames > 0:
		err = loop.RunFrames(ctx, opts.frames)
	default:
		err = loop.RunFrames(ctx, ^uint64(0))
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		return err
	}

	report(log, sim)

	if rec != nil {
		store, err := replay.OpenStore(cfg.Replay.AppName)
		if err != nil {
			return err
		}
		if err := store.Save(rec.Replay()); err != nil {
			return err
		}
		log.Info("replay saved", zap.String("id", rec.Replay().ID), zap.Int("frames", len(rec.Replay().Frames)))
	}
	return nil
}

func loadLevel(cfg *config.Config) (*level.Level, error) {
	if cfg.Arena.LevelFile == "" {
		return level.Default(cfg), nil
	}
	dir, file := filepath.Split(cfg.Arena.LevelFile)
	if dir == "" {
		dir = "."
	}
	return level.Load(os.DirFS(dir), file)
}

func verify(ctx context.Context, log *zap.Logger, cfg *config.Config, sim *core.Simulation, id string) error {
	store, err := replay.OpenStore(cfg.Replay.AppName)
	if err != nil {
		return err
	}
	r, err := store.Load(id)
	if err != nil {
		return err
	}
	if err := replay.Verify(ctx, sim, r); err != nil {
		return err
	}
	log.Info("replay verified", zap.String("id", id), zap.Int("frames", len(r.Frames)))
	return nil
}

func report(log *zap.Logger, sim *core.Simulation) {
	s := sim.State()
	for round := uint32(0); round < s.RoundData.CurRound; round++ {
		res := s.RoundData.Results[round]
		log.Info("round result",
			zap.Uint32("round", round),
			zap.Int("attacker", res.Attacker),
			zap.Int("defender", res.Defender),
			zap.Uint32("frames", res.Frames),
			zap.Uint32("cakes", res.CakesFired),
			zap.Uint32("hits", res.Hits),
			zap.Uint32("splats", res.Splats),
			zap.Uint32("cleaned", res.Cleaned),
		)
	}
	log.Info("run finished",
		zap.Uint64("frame", sim.Frame()),
		zap.Stringer("round_state", s.Round),
		zap.Bool("finished", sim.Finished()),
		zap.String("frame_checksum", fmt.Sprintf("%016x", sim.FrameChecksum())),
	)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
