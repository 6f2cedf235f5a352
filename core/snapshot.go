package core

import (
	"slices"

	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/automoto/janitors-nightmare/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// rollbackComponent knows how to copy one component type out of and back into
// an entity. Tags have no value and leave save/restore nil.
type rollbackComponent struct {
	ctype   donburi.IComponentType
	save    func(e *donburi.Entry) any
	restore func(e *donburi.Entry, v any)
}

func register[T any](c *donburi.ComponentType[T]) rollbackComponent {
	return rollbackComponent{
		ctype:   c,
		save:    func(e *donburi.Entry) any { return c.GetValue(e) },
		restore: func(e *donburi.Entry, v any) { c.SetValue(e, v.(T)) },
	}
}

func registerTag(t donburi.IComponentType) rollbackComponent {
	return rollbackComponent{ctype: t}
}

// rollbackComponents is every component type that can influence a future
// frame. A type missing from this list is silently lost on restore and will
// desync peers. Order only matters within a single binary.
var rollbackComponents = []rollbackComponent{
	register(components.Pos),
	register(components.PrevPos),
	register(components.Vel),
	register(components.PreSolveVel),
	register(components.Mass),
	register(components.Restitution),
	register(components.Collider),
	register(components.Aabb),
	register(components.Transform),
	register(components.Checksum),
	register(components.Attacker),
	register(components.AttackerState),
	register(components.AttackerControls),
	register(components.Defender),
	register(components.DefenderState),
	register(components.DefenderControls),
	register(components.Facing),
	register(components.Crosshair),
	register(components.Cake),
	register(components.Splat),
	register(components.Banner),
	registerTag(tags.RoundEntity),
	registerTag(tags.Interlude),
	registerTag(tags.Ground),
}

// EntitySnapshot is one entity. Mask has bit i set when the entity carries
// rollbackComponents[i]; Values holds the saved values of the non-tag ones in
// the same order.
type EntitySnapshot struct {
	ID     components.RollbackID
	Mask   uint64
	Values []any
}

// Snapshot is everything a restore needs to continue bit-identically.
type Snapshot struct {
	Frame          uint64
	Round          config.RoundState
	RoundData      sim.RoundData
	FrameCount     uint32
	NextID         components.RollbackID
	Mode           config.Mode
	Contacts       []sim.Contact
	StaticContacts []sim.Contact
	Entities       []EntitySnapshot
}

func save(s *sim.State) *Snapshot {
	snap := &Snapshot{
		Frame:          s.Frame,
		Round:          s.Round,
		RoundData:      s.RoundData.Clone(),
		FrameCount:     s.FrameCount,
		NextID:         s.NextID,
		Mode:           s.Mode,
		Contacts:       slices.Clone(s.Contacts),
		StaticContacts: slices.Clone(s.StaticContacts),
	}
	for _, e := range s.Sorted(filter.Contains(components.Rollback)) {
		es := EntitySnapshot{ID: components.Rollback.GetValue(e)}
		for i, rc := range rollbackComponents {
			if !e.HasComponent(rc.ctype) {
				continue
			}
			es.Mask |= 1 << i
			if rc.save != nil {
				es.Values = append(es.Values, rc.save(e))
			}
		}
		snap.Entities = append(snap.Entities, es)
	}
	return snap
}

// restore rebuilds the world from scratch. Entities are recreated in id
// order, so storage order after a restore does not depend on what was
// spawned or despawned since the snapshot.
func restore(s *sim.State, snap *Snapshot) {
	s.ResetWorld()
	s.Frame = snap.Frame
	s.Round = snap.Round
	s.RoundData = snap.RoundData.Clone()
	s.FrameCount = snap.FrameCount
	s.NextID = snap.NextID
	s.Mode = snap.Mode
	s.Contacts = slices.Clone(snap.Contacts)
	s.StaticContacts = slices.Clone(snap.StaticContacts)
	s.Pairs = s.Pairs[:0]

	for _, es := range snap.Entities {
		var cs []donburi.IComponentType
		for i, rc := range rollbackComponents {
			if es.Mask&(1<<i) != 0 {
				cs = append(cs, rc.ctype)
			}
		}
		e := s.SpawnWithID(es.ID, cs...)
		v := 0
		for i, rc := range rollbackComponents {
			if es.Mask&(1<<i) == 0 || rc.restore == nil {
				continue
			}
			rc.restore(e, es.Values[v])
			v++
		}
	}
}
