package systems

import (
	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/input"
	"github.com/automoto/janitors-nightmare/sim"
	"github.com/yohamta/donburi/filter"
)

// ApplyInputs decodes this frame's input bits into control intents.
// Must run before every system that reads AttackerControls or
// DefenderControls, and after the behavior state updates.
func ApplyInputs(s *sim.State) {
	for _, e := range s.Sorted(filter.Contains(components.Attacker, components.AttackerControls)) {
		bits := s.Inputs[components.Attacker.Get(e).Handle].Effective()
		components.AttackerControls.SetValue(e, components.AttackerControlsData{
			Horizontal: bits.Horizontal(),
			Vertical:   bits.Vertical(),
			Action:     bits.Has(input.Action),
		})
	}

	for _, e := range s.Sorted(filter.Contains(components.Defender, components.DefenderControls)) {
		bits := s.Inputs[components.Defender.Get(e).Handle].Effective()
		c := components.DefenderControls.Get(e)
		c.PrevFire = c.Fire
		c.Fire = bits.Has(input.Action)
		c.Horizontal = bits.Horizontal()
		c.Vertical = bits.Vertical()
	}
}
