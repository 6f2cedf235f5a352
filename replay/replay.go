// Package replay records matches as inputs plus per-frame checksums, so a
// match can be resimulated later and checked for desyncs.
package replay

import (
	"fmt"

	"github.com/automoto/janitors-nightmare/checksum"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/input"
	"github.com/google/uuid"
	"github.com/hashicorp/go-msgpack/v2/codec"
)

// Frame is one recorded frame: what both players pressed and the resulting
// frame checksum.
type Frame struct {
	Inputs [config.NumPlayers]input.PlayerInput `codec:"i"`
	Digest uint64                               `codec:"d"`
}

type Replay struct {
	ID              string  `codec:"id"`
	ChecksumVersion int     `codec:"cv"`
	Fingerprint     uint64  `codec:"fp"`
	Level           string  `codec:"lvl"`
	Frames          []Frame `codec:"f"`
}

// Recorder collects frames as they are simulated. Record has the shape of
// core.FrameFunc.
type Recorder struct {
	replay *Replay
}

func NewRecorder(cfg *config.Config, levelName string) *Recorder {
	return &Recorder{replay: &Replay{
		ID:              uuid.NewString(),
		ChecksumVersion: checksum.Version,
		Fingerprint:     cfg.Fingerprint(),
		Level:           levelName,
	}}
}

// Record appends a frame. Frames must arrive in order without gaps.
func (r *Recorder) Record(frame uint64, inputs [config.NumPlayers]input.PlayerInput, digest uint64) {
	if frame != uint64(len(r.replay.Frames)) {
		return
	}
	r.replay.Frames = append(r.replay.Frames, Frame{Inputs: inputs, Digest: digest})
}

func (r *Recorder) Replay() *Replay { return r.replay }

var mh codec.MsgpackHandle

func codecEncodeBytes(out *[]byte, v any) error {
	return codec.NewEncoderBytes(out, &mh).Encode(v)
}

func codecDecodeBytes(data []byte, v any) error {
	return codec.NewDecoderBytes(data, &mh).Decode(v)
}

func Encode(r *Replay) ([]byte, error) {
	var out []byte
	if err := codecEncodeBytes(&out, r); err != nil {
		return nil, fmt.Errorf("encode replay %s: %w", r.ID, err)
	}
	return out, nil
}

func Decode(data []byte) (*Replay, error) {
	var r Replay
	if err := codecDecodeBytes(data, &r); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	return &r, nil
}

// Inputs serves the recorded inputs as an input.Source. Frames past the end
// are neutral.
func (r *Replay) Inputs(frame uint64) [config.NumPlayers]input.PlayerInput {
	if frame >= uint64(len(r.Frames)) {
		return [config.NumPlayers]input.PlayerInput{}
	}
	return r.Frames[frame].Inputs
}
