package tags

import "github.com/yohamta/donburi"

var (
	// RoundEntity marks everything despawned at the end of a round.
	RoundEntity = donburi.NewTag().SetName("RoundEntity")
	// Interlude marks the between-rounds banner.
	Interlude = donburi.NewTag().SetName("Interlude")
	Ground    = donburi.NewTag().SetName("Ground")
)

// Resolv tags used when validating level geometry.
const (
	ResolvSolid = "solid"
	ResolvSpawn = "spawn"
)
