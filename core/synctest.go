package core

import (
	"fmt"

	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/input"
	"go.uber.org/zap"
)

type syncFrame struct {
	snap   *Snapshot
	inputs [config.NumPlayers]input.PlayerInput
	digest uint64
}

// SyncTest checks that the simulation survives rollback. Every frame it
// saves, advances, then rolls back checkDistance frames and resimulates them
// with the recorded inputs, comparing frame checksums as it goes.
type SyncTest struct {
	sim      *Simulation
	distance int
	ring     []syncFrame
	log      *zap.Logger
}

func NewSyncTest(sim *Simulation, checkDistance int) *SyncTest {
	if checkDistance < 0 {
		checkDistance = 0
	}
	return &SyncTest{
		sim:      sim,
		distance: checkDistance,
		ring:     make([]syncFrame, checkDistance+1),
		log:      sim.state.Log,
	}
}

func (t *SyncTest) slot(frame uint64) *syncFrame {
	return &t.ring[frame%uint64(len(t.ring))]
}

// Step advances one frame and runs the rollback check. The simulation is
// left on the same frame either way.
func (t *SyncTest) Step(inputs [config.NumPlayers]input.PlayerInput) error {
	frame := t.sim.Frame()
	cur := t.slot(frame)
	cur.snap = t.sim.Save()
	cur.inputs = inputs
	t.sim.Step(inputs)
	cur.digest = t.sim.FrameChecksum()

	if t.distance == 0 || frame+1 < uint64(t.distance) {
		return nil
	}

	start := frame + 1 - uint64(t.distance)
	if err := t.sim.Load(t.slot(start).snap); err != nil {
		return err
	}
	for f := start; f <= frame; f++ {
		rec := t.slot(f)
		t.sim.Step(rec.inputs)
		if got := t.sim.FrameChecksum(); got != rec.digest {
			t.log.Error("sync test mismatch",
				zap.Uint64("frame", f),
				zap.Uint64("want", rec.digest),
				zap.Uint64("got", got),
			)
			return fmt.Errorf("%w: frame %d: checksum %016x, want %016x", ErrDesync, f, got, rec.digest)
		}
	}
	return nil
}
