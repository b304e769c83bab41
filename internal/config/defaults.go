package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// Default returns the hardcoded configuration. It matches
// defaults/pong.yaml and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			Gamma:  3.0,
			MaxFPS: 60,
		},
		Physics: PhysicsConfig{
			BallSpeed:          8.0,
			SpeedRamp:          0.05,
			PaddleSpeed:        12.0,
			Spin:               true,
			EnglishTransfer:    0.5,
			EnglishScale:       0.05,
			MaxEnglishDeg:      30,
			MinHorizontalSpeed: 1.0,
			MaxSubsteps:        16,
		},
		Paddles: PaddlesConfig{
			Coverage:     1.0,
			SpinCoverage: 1.25,
		},
		Gameplay: GameplayConfig{
			Debounce:       0.25,
			Countdown:      2.0,
			CountdownSpeed: 7.0,
			ScorePeriod:    0.15,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionRounds,
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
		Input: InputConfig{
			KeyHold: 0.5,
		},
	}
}
