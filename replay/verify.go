package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/automoto/janitors-nightmare/checksum"
	"github.com/automoto/janitors-nightmare/core"
)

var ErrIncompatible = errors.New("replay recorded with different tuning")

// Verify resimulates r on a fresh simulation and returns a wrapped
// core.ErrDesync naming the first frame whose checksum differs.
func Verify(ctx context.Context, sim *core.Simulation, r *Replay) error {
	cfg := sim.State().Config
	if r.ChecksumVersion != checksum.Version {
		return fmt.Errorf("%w: checksum version %d, running %d", ErrIncompatible, r.ChecksumVersion, checksum.Version)
	}
	if r.Fingerprint != cfg.Fingerprint() {
		return fmt.Errorf("%w: config fingerprint %016x, running %016x", ErrIncompatible, r.Fingerprint, cfg.Fingerprint())
	}
	if sim.Frame() != 0 {
		return fmt.Errorf("verify needs a fresh simulation, got frame %d", sim.Frame())
	}

	for i, f := range r.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		sim.Step(f.Inputs)
		if got := sim.FrameChecksum(); got != f.Digest {
			return fmt.Errorf("%w: replay %s frame %d: checksum %016x, want %016x", core.ErrDesync, r.ID, i, got, f.Digest)
		}
	}
	return nil
}
