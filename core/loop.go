package core

import (
	"context"
	"sync"
	"time"

	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/input"
	"go.uber.org/zap"
)

// FrameFunc observes a completed frame.
type FrameFunc func(frame uint64, inputs [config.NumPlayers]input.PlayerInput, digest uint64)

// GameLoop drives a simulation at a fixed tick rate, pulling inputs from a
// source every tick.
type GameLoop struct {
	sim      *Simulation
	syncTest *SyncTest
	source   input.Source
	tickRate int
	log      *zap.Logger
	onFrame  FrameFunc
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewGameLoop(sim *Simulation, source input.Source, tickRate int) *GameLoop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &GameLoop{
		sim:      sim,
		source:   source,
		tickRate: tickRate,
		log:      sim.state.Log,
		stopChan: make(chan struct{}),
	}
}

// WithSyncTest runs every tick through a sync test.
func (g *GameLoop) WithSyncTest(t *SyncTest) *GameLoop {
	g.syncTest = t
	return g
}

// OnFrame registers an observer called after every tick.
func (g *GameLoop) OnFrame(f FrameFunc) *GameLoop {
	g.onFrame = f
	return g
}

// Run ticks in real time until the context is cancelled, Stop is called, the
// match finishes or a sync test fails.
func (g *GameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.log.Info("game loop started", zap.Int("tick_rate", g.tickRate))
	defer g.log.Info("game loop stopped", zap.Uint64("frame", g.sim.Frame()))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.stopChan:
			return nil
		case <-ticker.C:
			if err := g.Tick(); err != nil {
				return err
			}
			if g.sim.Finished() {
				return nil
			}
		}
	}
}

// RunFrames ticks n times as fast as possible, stopping early when the match
// finishes.
func (g *GameLoop) RunFrames(ctx context.Context, n uint64) error {
	for i := uint64(0); i < n && !g.sim.Finished(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Stop ends Run. It is safe to call more than once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}

// Tick advances exactly one frame.
func (g *GameLoop) Tick() error {
	frame := g.sim.Frame()
	inputs := g.source.Inputs(frame)
	if g.syncTest != nil {
		if err := g.syncTest.Step(inputs); err != nil {
			return err
		}
	} else {
		g.sim.Step(inputs)
	}
	if g.onFrame != nil {
		g.onFrame(frame, inputs, g.sim.FrameChecksum())
	}
	return nil
}
