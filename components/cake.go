package components

import "github.com/yohamta/donburi"

// CakeData is a projectile fired by the defender.
type CakeData struct {
	Owner      RollbackID
	SpawnFrame uint32
}

var Cake = donburi.NewComponentType[CakeData]()

// SplatData is a cake stain on the ground. Dirt counts the frames of cleaning
// still needed.
type SplatData struct {
	Dirt uint16
}

var Splat = donburi.NewComponentType[SplatData]()

// CrosshairData tracks how long the defender has been steering, for the
// speed ramp.
type CrosshairData struct {
	HeldFrames uint16
}

var Crosshair = donburi.NewComponentType[CrosshairData]()

// BannerData drives the between-rounds banner. Progress runs 0..1 over the
// interlude.
type BannerData struct {
	Round    uint32
	Progress float32
}

var Banner = donburi.NewComponentType[BannerData]()
