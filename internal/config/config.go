// Package config provides YAML-based game configuration loading and
// difficulty management for scroll-pong.
package config

import (
	"errors"
	"fmt"
	"math"
)

// Config contains all tunables of the game and its front ends.
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Paddles    PaddlesConfig    `yaml:"paddles"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Input      InputConfig      `yaml:"input"`
}

// DisplayConfig defines output parameters.
type DisplayConfig struct {
	Gamma  float64 `yaml:"gamma"`   // Brightness exponent, 3 for LEDs, 1 for raw
	MaxFPS float64 `yaml:"max_fps"` // Frame cap, 0 = unlimited
}

// PhysicsConfig defines ball and paddle motion.
type PhysicsConfig struct {
	BallSpeed          float64 `yaml:"ball_speed"`           // Serve speed in cells/sec
	SpeedRamp          float64 `yaml:"speed_ramp"`           // Fractional speed gain per second of play
	PaddleSpeed        float64 `yaml:"paddle_speed"`         // Rows/sec
	Spin               bool    `yaml:"spin"`                 // Paddle motion imparts english
	EnglishTransfer    float64 `yaml:"english_transfer"`     // Fraction of spin realized per bounce
	EnglishScale       float64 `yaml:"english_scale"`        // Radians per unit of realized spin
	MaxEnglishDeg      float64 `yaml:"max_english_deg"`      // Deflection cap per bounce
	MinHorizontalSpeed float64 `yaml:"min_horizontal_speed"` // Below this |vx| is nudged
	MaxSubsteps        int     `yaml:"max_substeps"`         // Crossings resolved one by one per update
}

// PaddlesConfig defines the hit band around a paddle center.
type PaddlesConfig struct {
	Coverage     float64 `yaml:"coverage"`      // Without spin
	SpinCoverage float64 `yaml:"spin_coverage"` // With spin
}

// GameplayConfig defines timings of the game flow.
type GameplayConfig struct {
	Debounce       float64 `yaml:"debounce"`        // Input grace window in seconds
	Countdown      float64 `yaml:"countdown"`       // Seconds before the ball is served
	CountdownSpeed float64 `yaml:"countdown_speed"` // Countdown indicator steps/sec
	ScorePeriod    float64 `yaml:"score_period"`    // Seconds per score animation frame
}

// InputConfig defines terminal input behaviour.
type InputConfig struct {
	// KeyHold is how long a key counts as held after its last press or
	// auto-repeat, since terminals report no release events.
	KeyHold float64 `yaml:"key_hold"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "rounds", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Rounds/seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to serve speed at max difficulty
}

// MaxEnglish returns the deflection cap in radians.
func (p PhysicsConfig) MaxEnglish() float64 {
	return p.MaxEnglishDeg * math.Pi / 180
}

// PaddleCoverage returns the hit band for the configured variant.
func (c Config) PaddleCoverage() float64 {
	if c.Physics.Spin {
		return c.Paddles.SpinCoverage
	}
	return c.Paddles.Coverage
}

// Validate reports the first invalid value.
func (c Config) Validate() error {
	var errs []error
	if !(c.Display.Gamma > 0) {
		errs = append(errs, fmt.Errorf("config: display.gamma must be positive, got %v", c.Display.Gamma))
	}
	if c.Physics.BallSpeed <= 0 {
		errs = append(errs, fmt.Errorf("config: physics.ball_speed must be positive, got %v", c.Physics.BallSpeed))
	}
	if c.Physics.PaddleSpeed < 0 {
		errs = append(errs, fmt.Errorf("config: physics.paddle_speed must not be negative, got %v", c.Physics.PaddleSpeed))
	}
	if c.Physics.EnglishTransfer < 0 || c.Physics.EnglishTransfer > 1 {
		errs = append(errs, fmt.Errorf("config: physics.english_transfer must be in [0, 1], got %v", c.Physics.EnglishTransfer))
	}
	if c.Physics.MaxSubsteps < 1 {
		errs = append(errs, fmt.Errorf("config: physics.max_substeps must be at least 1, got %d", c.Physics.MaxSubsteps))
	}
	if c.PaddleCoverage() <= 0 {
		errs = append(errs, fmt.Errorf("config: paddle coverage must be positive, got %v", c.PaddleCoverage()))
	}
	if c.Gameplay.Debounce < 0 || c.Gameplay.Countdown < 0 {
		errs = append(errs, errors.New("config: gameplay timings must not be negative"))
	}
	if c.Gameplay.CountdownSpeed <= 0 || c.Gameplay.ScorePeriod <= 0 {
		errs = append(errs, errors.New("config: animation rates must be positive"))
	}
	switch c.Difficulty.Progression.Type {
	case "", ProgressionNone, ProgressionRounds, ProgressionTime:
	default:
		errs = append(errs, fmt.Errorf("config: unknown difficulty.progression.type %q", c.Difficulty.Progression.Type))
	}
	return errors.Join(errs...)
}

// Progression types.
const (
	ProgressionNone   = "none"
	ProgressionRounds = "rounds"
	ProgressionTime   = "time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
