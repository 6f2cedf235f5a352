// Package core owns the frame loop: it runs the systems in their fixed order,
// takes and restores snapshots and drives sync tests and replays.
package core

import (
	"errors"
	"fmt"

	"github.com/automoto/janitors-nightmare/checksum"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/input"
	"github.com/automoto/janitors-nightmare/level"
	"github.com/automoto/janitors-nightmare/physics"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/automoto/janitors-nightmare/systems"
	"github.com/automoto/janitors-nightmare/systems/factory"
	"go.uber.org/zap"
)

var (
	ErrDesync     = errors.New("desync")
	ErrNoSnapshot = errors.New("no snapshot")
)

// behavior runs before physics during a round, in this order. State updates
// read the previous frame's contacts and must precede input application.
var behavior = []func(*sim.State){
	systems.UpdateAttackerStates,
	systems.UpdateDefenderStates,
	systems.ApplyInputs,
	systems.MoveAttackers,
	systems.MoveCrosshair,
	systems.CakeCollision,
	systems.SplatCleaning,
}

type Simulation struct {
	state *sim.State
}

type Option func(*sim.State)

func WithLogger(log *zap.Logger) Option {
	return func(s *sim.State) {
		if log != nil {
			s.Log = log
		}
	}
}

// WithRoundOver replaces the timeout that ends a round.
func WithRoundOver(f sim.RoundOverFunc) Option {
	return func(s *sim.State) {
		if f != nil {
			s.RoundOver = f
		}
	}
}

// New builds a simulation at the start of the first interlude. A nil level
// uses the built-in arena.
func New(cfg *config.Config, lvl *level.Level, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if lvl == nil {
		lvl = level.Default(cfg)
	}
	if err := level.Validate(lvl, factory.AttackerBody(cfg)); err != nil {
		return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
	}
	s := sim.New(cfg, lvl, nil)
	for _, opt := range opts {
		opt(s)
	}
	return &Simulation{state: s}, nil
}

// State exposes the underlying state for read-only consumers such as bots and
// the render view.
func (m *Simulation) State() *sim.State { return m.state }

// Frame is the number of frames stepped so far.
func (m *Simulation) Frame() uint64 { return m.state.Frame }

// Finished reports whether the match has requested the win screen.
func (m *Simulation) Finished() bool { return m.state.Mode == config.ModeWin }

// Step advances one frame. It never fails and never blocks.
func (m *Simulation) Step(inputs [config.NumPlayers]input.PlayerInput) {
	s := m.state
	s.Inputs = inputs
	finished := s.Mode == config.ModeWin

	if s.Round == config.Round && !finished {
		for _, system := range behavior {
			system(s)
		}
	}

	physics.Step(s)

	if !finished {
		switch s.Round {
		case config.InterludeStart:
			systems.InterludeStart(s)
		case config.Interlude:
			systems.Interlude(s)
		case config.InterludeEnd:
			systems.InterludeEnd(s)
		case config.RoundStart:
			systems.RoundStart(s)
		case config.Round:
			systems.Round(s)
		case config.RoundEnd:
			systems.RoundEnd(s)
		}
	}

	checksum.Update(s)
	s.Frame++
}

// Checksums returns every entity checksum in rollback id order.
func (m *Simulation) Checksums() []checksum.Entity {
	return checksum.Collect(m.state)
}

// FrameChecksum is the per-frame value peers compare.
func (m *Simulation) FrameChecksum() uint64 {
	return checksum.FrameDigest(m.state)
}

// Save captures all persistent state.
func (m *Simulation) Save() *Snapshot {
	return save(m.state)
}

// Load restores a snapshot taken by Save.
func (m *Simulation) Load(snap *Snapshot) error {
	if snap == nil {
		return ErrNoSnapshot
	}
	restore(m.state, snap)
	return nil
}
