package config

// AnimationDef describes one sprite strip. The renderer picks frame
// (stateFrames / FramesPerSprite) % Frames.
type AnimationDef struct {
	Frames          int
	FramesPerSprite int
}

// FramesPerSprite is the default animation speed.
// TODO: per-frame durations once the fire strip gets a longer wind-up frame.
const FramesPerSprite = 10

var AttackerAnimations = map[AttackerStateID]AnimationDef{
	AttackerIdle: {Frames: 2, FramesPerSprite: FramesPerSprite},
	AttackerWalk: {Frames: 2, FramesPerSprite: FramesPerSprite},
	AttackerFall: {Frames: 2, FramesPerSprite: FramesPerSprite},
	AttackerJump: {Frames: 1, FramesPerSprite: FramesPerSprite},
	AttackerLand: {Frames: 1, FramesPerSprite: FramesPerSprite},
	AttackerHit:  {Frames: 1, FramesPerSprite: FramesPerSprite},
}

var DefenderAnimations = map[DefenderStateID]AnimationDef{
	DefenderIdle: {Frames: 2, FramesPerSprite: FramesPerSprite},
	DefenderFire: {Frames: 4, FramesPerSprite: FramesPerSprite},
}

// SpriteFrame returns the strip index for an entity that has spent
// stateFrames frames in its current state.
func (a AnimationDef) SpriteFrame(stateFrames uint16) int {
	if a.Frames <= 0 || a.FramesPerSprite <= 0 {
		return 0
	}
	return (int(stateFrames) / a.FramesPerSprite) % a.Frames
}
