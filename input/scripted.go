package input

import "github.com/automoto/janitors-nightmare/config"

// Source produces the inputs for one frame.
type Source interface {
	Inputs(frame uint64) [config.NumPlayers]PlayerInput
}

// Step is one segment of a scripted input track: Bits held for Frames frames.
type Step struct {
	Bits   Bits
	Frames uint64
}

// Scripted replays fixed per-player tracks and loops them. It never looks at
// wall-clock time, so two runs with the same tracks see the same inputs.
type Scripted struct {
	Tracks [config.NumPlayers][]Step
	Status [config.NumPlayers]Status
}

func (s *Scripted) Inputs(frame uint64) [config.NumPlayers]PlayerInput {
	var out [config.NumPlayers]PlayerInput
	for p, track := range s.Tracks {
		out[p] = PlayerInput{Bits: bitsAt(track, frame), Status: s.Status[p]}
	}
	return out
}

func bitsAt(track []Step, frame uint64) Bits {
	var total uint64
	for _, st := range track {
		total += st.Frames
	}
	if total == 0 {
		return 0
	}
	f := frame % total
	for _, st := range track {
		if f < st.Frames {
			return st.Bits
		}
		f -= st.Frames
	}
	return 0
}

// SourceFunc adapts a function to Source.
type SourceFunc func(frame uint64) [config.NumPlayers]PlayerInput

func (f SourceFunc) Inputs(frame uint64) [config.NumPlayers]PlayerInput { return f(frame) }
