// Package checksum computes the per-entity values peers compare to detect
// desyncs.
//
// Each entity category serializes a fixed list of fields, little-endian, and
// hashes the bytes with Fletcher-16. Adding, removing or reordering a field
// changes every checksum, so Version must be bumped and both peers must agree
// on it.
package checksum

import (
	"encoding/binary"
	"math"

	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/cespare/xxhash/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Version names the field layouts below.
const Version = 2

// Fletcher16 is the two-sum mod-255 checksum.
func Fletcher16(data []byte) uint16 {
	var sum1, sum2 uint16
	for _, b := range data {
		sum1 = (sum1 + uint16(b)) % 255
		sum2 = (sum2 + sum1) % 255
	}
	return sum2<<8 | sum1
}

type writer struct {
	buf []byte
}

func (w *writer) f32(vs ...float32) {
	for _, v := range vs {
		w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
	}
}

func (w *writer) u8(v uint8) { w.buf = append(w.buf, v) }

func (w *writer) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }

// Encode serializes the checksummed fields of e. It returns false for entities
// outside every category.
func Encode(e *donburi.Entry, dst []byte) ([]byte, bool) {
	w := writer{buf: dst[:0]}
	switch {
	case e.HasComponent(components.Attacker):
		t := components.Transform.Get(e).Translation
		vel := components.Vel.GetValue(e)
		pos := components.Pos.GetValue(e)
		st := components.AttackerState.GetValue(e)
		w.f32(t.X, t.Y, t.Z, vel.X, vel.Y, pos.X, pos.Y)
		w.u8(uint8(st.ID))
		w.u16(st.Frames)
	case e.HasComponent(components.Defender):
		pos := components.Pos.GetValue(e)
		st := components.DefenderState.GetValue(e)
		w.f32(pos.X, pos.Y)
		w.u8(uint8(st.ID))
		w.u16(st.Frames)
	case e.HasComponent(components.Cake):
		t := components.Transform.Get(e).Translation
		vel := components.Vel.GetValue(e)
		pos := components.Pos.GetValue(e)
		w.f32(t.X, t.Y, t.Z, vel.X, vel.Y, pos.X, pos.Y)
	case e.HasComponent(components.Crosshair):
		pos := components.Pos.GetValue(e)
		w.f32(pos.X, pos.Y)
	case e.HasComponent(components.Splat):
		pos := components.Pos.GetValue(e)
		w.f32(pos.X, pos.Y)
		w.u16(components.Splat.GetValue(e).Dirt)
	default:
		return w.buf, false
	}
	return w.buf, true
}

// Update recomputes the checksum of every entity that carries one.
func Update(s *sim.State) {
	var buf []byte
	for _, e := range s.Sorted(filter.Contains(components.Checksum)) {
		var ok bool
		buf, ok = Encode(e, buf)
		if !ok {
			continue
		}
		components.Checksum.SetValue(e, Fletcher16(buf))
	}
}

// Entity is one entity's checksum.
type Entity struct {
	ID       components.RollbackID
	Checksum uint16
}

// Collect returns every entity checksum in rollback id order.
func Collect(s *sim.State) []Entity {
	entries := s.Sorted(filter.Contains(components.Checksum))
	out := make([]Entity, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entity{
			ID:       components.Rollback.GetValue(e),
			Checksum: components.Checksum.GetValue(e),
		})
	}
	return out
}

// FrameDigest folds all entity checksums and the round lifecycle into one
// value, which is what peers exchange per frame.
func FrameDigest(s *sim.State) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, c := range Collect(s) {
		binary.LittleEndian.PutUint32(buf[:4], uint32(c.ID))
		binary.LittleEndian.PutUint16(buf[4:6], c.Checksum)
		h.Write(buf[:6])
	}
	buf[0] = uint8(s.Round)
	binary.LittleEndian.PutUint32(buf[1:5], s.FrameCount)
	h.Write(buf[:5])
	binary.LittleEndian.PutUint32(buf[:4], s.RoundData.CurRound)
	h.Write(buf[:4])
	return h.Sum64()
}
