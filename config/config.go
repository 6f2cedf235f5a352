// Package config holds the tuning values of the simulation. Both peers must run
// with identical values; Fingerprint gives them something cheap to compare.
package config

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/cespare/xxhash/v2"
)

const (
	NumPlayers = 2

	DeltaTime   float32 = 1.0 / 60.0
	NumSubsteps         = 1
	SubDT               = DeltaTime / NumSubsteps

	// AabbVelMarginFactor pads AABBs by this many seconds of travel so that
	// sudden accelerations do not tunnel past the broad phase.
	AabbVelMarginFactor = 2 * DeltaTime

	// PixelsPerMeter assumes the janitor is 1.80m tall and 24px tall.
	PixelsPerMeter float32 = 24.0 / 1.8

	// MaxSplatLimit bounds cake.max_splat.
	MaxSplatLimit = 64
)

type Config struct {
	Physics   PhysicsConfig   `toml:"physics"`
	Round     RoundConfig     `toml:"round"`
	Attacker  AttackerConfig  `toml:"attacker"`
	Defender  DefenderConfig  `toml:"defender"`
	Crosshair CrosshairConfig `toml:"crosshair"`
	Cake      CakeConfig      `toml:"cake"`
	Arena     ArenaConfig     `toml:"arena"`
	Script    ScriptConfig    `toml:"script"`
	Session   SessionConfig   `toml:"session"`
	Replay    ReplayConfig    `toml:"replay"`
	Logging   LoggingConfig   `toml:"logging"`
}

// PhysicsConfig: when Gravity is zero it is derived from the attacker's jump
// height and time to peak.
type PhysicsConfig struct {
	GravityX float32 `toml:"gravity_x"`
	GravityY float32 `toml:"gravity_y"`
}

type RoundConfig struct {
	NumRounds       uint32 `toml:"num_rounds"`
	InterludeLength uint32 `toml:"interlude_length"` // frames
	RoundLength     uint32 `toml:"round_length"`     // frames
}

type AttackerConfig struct {
	Size           float32 `toml:"size"`
	MaxSpeed       float32 `toml:"max_speed"`
	JumpHeight     float32 `toml:"jump_height"`
	JumpTimeToPeak float32 `toml:"jump_time_to_peak"` // seconds
	IdleThresh     float32 `toml:"idle_thresh"`
	LandFrames     uint16  `toml:"land_frames"`
	StunFrames     uint16  `toml:"stun_frames"`
	CleanReach     float32 `toml:"clean_reach"`
	Restitution    float32 `toml:"restitution"`
}

type DefenderConfig struct {
	Size             float32 `toml:"size"`
	XPos             float32 `toml:"x_pos"`
	FireFrames       uint16  `toml:"fire_frames"`
	FireReleaseFrame uint16  `toml:"fire_release_frame"`
	CakeFlightFrames uint16  `toml:"cake_flight_frames"`
}

type CrosshairConfig struct {
	Speed      float32 `toml:"speed"` // pixels per frame at full ramp
	RampFrames uint16  `toml:"ramp_frames"`
	MinFactor  float32 `toml:"min_factor"`
}

type CakeConfig struct {
	Size        float32 `toml:"size"`
	Restitution float32 `toml:"restitution"`
	MinSplat    uint32  `toml:"min_splat"`
	MaxSplat    uint32  `toml:"max_splat"`
	SplatSpread float32 `toml:"splat_spread"`
	SplatDirt   uint16  `toml:"splat_dirt"` // frames of cleaning per splat
}

type ArenaConfig struct {
	GroundLevel float32 `toml:"ground_level"`
	Width       float32 `toml:"width"`
	Height      float32 `toml:"height"`
	LevelFile   string  `toml:"level_file"` // optional Tiled .tmx
}

type ScriptConfig struct {
	RoundEnd string `toml:"round_end"` // optional Lua file defining round_over(ctx)
}

type SessionConfig struct {
	FPS           int `toml:"fps"`
	CheckDistance int `toml:"check_distance"`
	MaxPrediction int `toml:"max_prediction"`
	InputDelay    int `toml:"input_delay"`
}

type ReplayConfig struct {
	Enabled bool   `toml:"enabled"`
	AppName string `toml:"app_name"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML bytes on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the tuning the game shipped with.
func Default() *Config {
	const attackerSize = 24
	return &Config{
		Round: RoundConfig{
			NumRounds:       2,
			InterludeLength: 60,
			RoundLength:     6000,
		},
		Attacker: AttackerConfig{
			Size:           attackerSize,
			MaxSpeed:       100,
			JumpHeight:     2 * attackerSize,
			JumpTimeToPeak: 1,
			IdleThresh:     0.01,
			LandFrames:     3,
			StunFrames:     60,
			CleanReach:     attackerSize,
		},
		Defender: DefenderConfig{
			Size:             168,
			XPos:             250,
			FireFrames:       40,
			FireReleaseFrame: 20,
			CakeFlightFrames: 60,
		},
		Crosshair: CrosshairConfig{
			Speed:      3,
			RampFrames: 12,
			MinFactor:  0.25,
		},
		Cake: CakeConfig{
			Size:        16,
			Restitution: 0.2,
			MinSplat:    1,
			MaxSplat:    5,
			SplatSpread: 20,
			SplatDirt:   30,
		},
		Arena: ArenaConfig{
			GroundLevel: -100,
			Width:       720,
			Height:      720,
		},
		Session: SessionConfig{
			FPS:           60,
			CheckDistance: 2,
			MaxPrediction: 12,
			InputDelay:    2,
		},
		Replay: ReplayConfig{
			AppName: "janitors-nightmare",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate rejects tuning the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Round.NumRounds == 0:
		return fmt.Errorf("round.num_rounds must be positive")
	case c.Attacker.JumpTimeToPeak <= 0:
		return fmt.Errorf("attacker.jump_time_to_peak must be positive")
	case c.Defender.FireReleaseFrame >= c.Defender.FireFrames:
		return fmt.Errorf("defender.fire_release_frame (%d) must be below fire_frames (%d)",
			c.Defender.FireReleaseFrame, c.Defender.FireFrames)
	case c.Defender.CakeFlightFrames == 0:
		return fmt.Errorf("defender.cake_flight_frames must be positive")
	case c.Cake.MinSplat > c.Cake.MaxSplat:
		return fmt.Errorf("cake.min_splat (%d) exceeds max_splat (%d)", c.Cake.MinSplat, c.Cake.MaxSplat)
	case c.Cake.MaxSplat > MaxSplatLimit:
		return fmt.Errorf("cake.max_splat (%d) exceeds %d", c.Cake.MaxSplat, MaxSplatLimit)
	case c.Session.CheckDistance < 0:
		return fmt.Errorf("session.check_distance must not be negative")
	}
	return nil
}

// Gravity returns the configured gravity, or the one that makes a jump of
// JumpHeight peak after JumpTimeToPeak seconds.
func (c *Config) Gravity() (x, y float32) {
	if c.Physics.GravityX != 0 || c.Physics.GravityY != 0 {
		return c.Physics.GravityX, c.Physics.GravityY
	}
	t := c.Attacker.JumpTimeToPeak
	return 0, float32(-2*c.Attacker.JumpHeight) / float32(t*t)
}

// Fingerprint hashes every value that influences the simulation. Logging,
// replay and session settings are excluded.
func (c *Config) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [4]byte
	f := func(vs ...float32) {
		for _, v := range vs {
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
			h.Write(buf[:])
		}
	}
	u := func(vs ...uint32) {
		for _, v := range vs {
			binary.LittleEndian.PutUint32(buf[:], v)
			h.Write(buf[:])
		}
	}
	gx, gy := c.Gravity()
	f(gx, gy)
	u(c.Round.NumRounds, c.Round.InterludeLength, c.Round.RoundLength)
	a := c.Attacker
	f(a.Size, a.MaxSpeed, a.JumpHeight, a.JumpTimeToPeak, a.IdleThresh, a.CleanReach, a.Restitution)
	u(uint32(a.LandFrames), uint32(a.StunFrames))
	d := c.Defender
	f(d.Size, d.XPos)
	u(uint32(d.FireFrames), uint32(d.FireReleaseFrame), uint32(d.CakeFlightFrames))
	f(c.Crosshair.Speed, c.Crosshair.MinFactor)
	u(uint32(c.Crosshair.RampFrames))
	k := c.Cake
	f(k.Size, k.Restitution, k.SplatSpread)
	u(k.MinSplat, k.MaxSplat, uint32(k.SplatDirt))
	f(c.Arena.GroundLevel, c.Arena.Width, c.Arena.Height)
	h.Write([]byte(c.Arena.LevelFile))
	h.Write([]byte(c.Script.RoundEnd))
	return h.Sum64()
}
