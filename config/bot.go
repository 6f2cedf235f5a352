package config

// BotDifficulty affects reaction time and decision quality
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// BotDifficultyConfig holds tuning values for bot behavior at a specific difficulty
type BotDifficultyConfig struct {
	ReactionDelay uint64  // Frames between decisions
	AimTolerance  float32 // Crosshair distance to the janitor that counts as on target
	DodgeRange    float32 // Horizontal distance at which the janitor avoids a falling cake
}

var BotDifficulties = map[BotDifficulty]BotDifficultyConfig{
	BotDifficultyEasy: {
		ReactionDelay: 30, // 0.5 second reaction time
		AimTolerance:  12,
		DodgeRange:    0,
	},
	BotDifficultyNormal: {
		ReactionDelay: 15,
		AimTolerance:  20,
		DodgeRange:    24,
	},
	BotDifficultyHard: {
		ReactionDelay: 5, // Near-instant reaction
		AimTolerance:  28,
		DodgeRange:    40,
	},
}

// ParseBotDifficulty maps a flag value to a difficulty.
func ParseBotDifficulty(s string) (BotDifficulty, bool) {
	switch s {
	case "easy":
		return BotDifficultyEasy, true
	case "normal":
		return BotDifficultyNormal, true
	case "hard":
		return BotDifficultyHard, true
	}
	return 0, false
}
