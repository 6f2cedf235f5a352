package config

// RoundState is the single global phase of the simulation.
type RoundState uint8

const (
	InterludeStart RoundState = iota
	Interlude
	InterludeEnd
	RoundStart
	Round
	RoundEnd
)

var roundStateNames = [...]string{
	InterludeStart: "InterludeStart",
	Interlude:      "Interlude",
	InterludeEnd:   "InterludeEnd",
	RoundStart:     "RoundStart",
	Round:          "Round",
	RoundEnd:       "RoundEnd",
}

func (r RoundState) String() string {
	if int(r) < len(roundStateNames) {
		return roundStateNames[r]
	}
	return "RoundState(?)"
}

// AttackerStateID identifies the janitor's animation/logic state.
type AttackerStateID uint8

const (
	AttackerIdle AttackerStateID = iota
	AttackerJump
	AttackerFall
	AttackerLand
	AttackerWalk
	AttackerHit
)

var attackerStateNames = [...]string{
	AttackerIdle: "idle",
	AttackerJump: "jump",
	AttackerFall: "fall",
	AttackerLand: "land",
	AttackerWalk: "walk",
	AttackerHit:  "hit",
}

func (s AttackerStateID) String() string {
	if int(s) < len(attackerStateNames) {
		return attackerStateNames[s]
	}
	return "attacker(?)"
}

// DefenderStateID identifies the fortress' animation/logic state.
type DefenderStateID uint8

const (
	DefenderIdle DefenderStateID = iota
	DefenderFire
)

func (s DefenderStateID) String() string {
	switch s {
	case DefenderIdle:
		return "idle"
	case DefenderFire:
		return "fire"
	}
	return "defender(?)"
}

// Mode is the outer application state the core can request.
type Mode uint8

const (
	ModeRound Mode = iota
	ModeWin
)
