package components

import "github.com/yohamta/donburi"

// AttackerData marks the janitor. Handle is the player controlling it.
type AttackerData struct {
	Handle int
}

var Attacker = donburi.NewComponentType[AttackerData]()

// DefenderData marks the fortress. Handle is the player controlling it.
type DefenderData struct {
	Handle int
}

var Defender = donburi.NewComponentType[DefenderData]()

// Facing is -1 (left) or +1 (right); the renderer flips sprites with it.
var Facing = donburi.NewComponentType[float32]()
