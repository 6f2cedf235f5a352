package systems

import (
	"encoding/binary"

	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/config"
	"github.com/automoto/janitors-nightmare/physics"
	"github.com/automoto/janitors-nightmare/shared/gamemath"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/automoto/janitors-nightmare/systems/factory"
	"github.com/cespare/xxhash/v2"
	"github.com/yohamta/donburi/filter"
)

func ids(s *sim.State, f filter.LayoutFilter) []components.RollbackID {
	entries := s.Sorted(f)
	out := make([]components.RollbackID, len(entries))
	for i, e := range entries {
		out[i] = components.Rollback.GetValue(e)
	}
	return out
}

// CakeCollision resolves cakes against attackers and the ground. The solver
// skips mixed dynamic pairs, so cake hits on the attacker are tested here.
func CakeCollision(s *sim.State) {
	attackers := ids(s, filter.Contains(components.Attacker, components.AttackerState))
	for _, cakeID := range ids(s, filter.Contains(components.Cake)) {
		cake, ok := s.Lookup(cakeID)
		if !ok {
			continue
		}
		cakePos := components.Pos.GetValue(cake)
		radius := components.Collider.GetValue(cake).Radius

		hit := false
		for _, attID := range attackers {
			att, ok := s.Lookup(attID)
			if !ok {
				continue
			}
			body := components.Collider.GetValue(att).Size
			if _, touching := physics.CircleBox(cakePos, radius, components.Pos.GetValue(att), body); touching {
				components.AttackerState.Get(att).Enter(config.AttackerHit)
				s.RoundData.Current.Hits++
				hit = true
				break
			}
		}
		if hit {
			s.Despawn(cake)
			continue
		}

		if landed(s, cakeID) {
			s.Despawn(cake)
			splatter(s, cakeID, gamemath.V(cakePos.X, cakePos.Y-radius))
		}
	}
}

func landed(s *sim.State, id components.RollbackID) bool {
	for _, c := range s.StaticContacts {
		if c.A == id && c.Normal.Y < 0 {
			return true
		}
	}
	return false
}

// splatHash is a stateless hash of (cake, frame, n). Splat placement uses it
// instead of a PRNG so there is no generator state to snapshot.
func splatHash(cake components.RollbackID, frame uint32, n uint32) uint64 {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(cake))
	binary.LittleEndian.PutUint32(buf[4:], frame)
	binary.LittleEndian.PutUint32(buf[8:], n)
	return xxhash.Sum64(buf[:])
}

// SplatOffsets returns the horizontal offsets of the splats a cake leaves
// when it lands on frame.
func SplatOffsets(cfg *config.CakeConfig, cake components.RollbackID, frame uint32) []float32 {
	span := uint64(cfg.MaxSplat) - uint64(cfg.MinSplat) + 1
	count := cfg.MinSplat + uint32(splatHash(cake, frame, 0)%span)
	out := make([]float32, count)
	for i := range out {
		u := float32(splatHash(cake, frame, uint32(i+1))%1001) / 1000
		out[i] = float32((float32(2*u) - 1) * cfg.SplatSpread)
	}
	return out
}

func splatter(s *sim.State, cake components.RollbackID, at gamemath.Vec2) {
	for _, dx := range SplatOffsets(&s.Config.Cake, cake, s.FrameCount) {
		factory.CreateSplat(s, gamemath.V(at.X+dx, at.Y))
		s.RoundData.Current.Splats++
	}
}

// SplatCleaning lets an attacker scrub splats within reach while holding
// action.
func SplatCleaning(s *sim.State) {
	reach := s.Config.Attacker.CleanReach
	splats := ids(s, filter.Contains(components.Splat))
	for _, e := range s.Sorted(filter.Contains(components.Attacker, components.AttackerControls)) {
		if !components.AttackerControls.GetValue(e).Action || !components.AttackerState.GetValue(e).CanClean() {
			continue
		}
		pos := components.Pos.GetValue(e)
		for _, id := range splats {
			splat, ok := s.Lookup(id)
			if !ok {
				continue
			}
			if components.Pos.GetValue(splat).Sub(pos).LengthSquared() > float32(reach*reach) {
				continue
			}
			data := components.Splat.Get(splat)
			if data.Dirt > 0 {
				data.Dirt--
			}
			if data.Dirt == 0 {
				s.Despawn(splat)
				s.RoundData.Current.Cleaned++
			}
		}
	}
}
