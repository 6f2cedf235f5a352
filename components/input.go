package components

import "github.com/yohamta/donburi"

// AttackerControlsData holds the continuous intents decoded from input.
// +X is right, +Y is up.
type AttackerControlsData struct {
	Horizontal float32
	Vertical   float32
	Action     bool
}

var AttackerControls = donburi.NewComponentType[AttackerControlsData]()

// DefenderControlsData steers the crosshair. PrevFire is kept so firing
// triggers on the press edge only.
type DefenderControlsData struct {
	Horizontal float32
	Vertical   float32
	Fire       bool
	PrevFire   bool
}

// FirePressed reports a rising edge of the fire button this frame.
func (d DefenderControlsData) FirePressed() bool {
	return d.Fire && !d.PrevFire
}

var DefenderControls = donburi.NewComponentType[DefenderControlsData]()
