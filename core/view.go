package core

import (
	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

type EntityKind uint8

const (
	KindOther EntityKind = iota
	KindAttacker
	KindDefender
	KindCrosshair
	KindCake
	KindSplat
	KindSolid
	KindBanner
)

// EntityView is what a renderer needs to pick a sprite. It is a copy; nothing
// a renderer does with it reaches the simulation.
type EntityView struct {
	ID          components.RollbackID
	Kind        EntityKind
	Position    gamemath.Vec3
	Size        gamemath.Vec2
	Facing      float32
	State       string
	StateFrames uint16
	SpriteFrame int
	// Progress is the banner's eased 0..1 progress.
	Progress float32
}

// View projects the state for rendering, in rollback id order.
func View(s *sim.State) []EntityView {
	entries := s.Sorted(filter.Contains(components.Rollback))
	out := make([]EntityView, 0, len(entries))
	for _, e := range entries {
		out = append(out, viewOf(e))
	}
	return out
}

func viewOf(e *donburi.Entry) EntityView {
	v := EntityView{ID: components.Rollback.GetValue(e), Facing: 1}
	if e.HasComponent(components.Transform) {
		v.Position = components.Transform.Get(e).Translation
	}
	if e.HasComponent(components.Collider) {
		v.Size = components.Collider.GetValue(e).HalfExtents().Scale(2)
	}
	if e.HasComponent(components.Facing) {
		v.Facing = components.Facing.GetValue(e)
	}

	switch {
	case e.HasComponent(components.Attacker):
		st := components.AttackerState.GetValue(e)
		v.Kind = KindAttacker
		v.State = st.ID.String()
		v.StateFrames = st.Frames
		v.SpriteFrame = config.AttackerAnimations[st.ID].SpriteFrame(st.Frames)
	case e.HasComponent(components.Defender):
		st := components.DefenderState.GetValue(e)
		v.Kind = KindDefender
		v.State = st.ID.String()
		v.StateFrames = st.Frames
		v.SpriteFrame = config.DefenderAnimations[st.ID].SpriteFrame(st.Frames)
	case e.HasComponent(components.Crosshair):
		v.Kind = KindCrosshair
	case e.HasComponent(components.Cake):
		v.Kind = KindCake
	case e.HasComponent(components.Splat):
		v.Kind = KindSplat
	case e.HasComponent(components.Banner):
		b := components.Banner.GetValue(e)
		v.Kind = KindBanner
		v.Progress = b.Progress
	case e.HasComponent(components.Collider):
		v.Kind = KindSolid
	}
	return v
}
