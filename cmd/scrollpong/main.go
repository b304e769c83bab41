// scrollpong is two-player Pong for a 17x7 LED grid, played in a terminal
// or over SSH.
//
// Usage:
//
//	scrollpong play                - Play locally in the terminal
//	scrollpong serve               - Start SSH server, one game per session
//	scrollpong recordings          - Browse recorded games
//	scrollpong replay <session>    - Replay a recorded game
//	scrollpong headless            - Simulate frames without a UI
//	scrollpong config              - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Frame cap (default: from config, 60)
//	--seed <value>        - RNG seed for reproducible serves
//	--gamma <exp>         - Display gamma (default: from config, 3)
//	--config <path>       - Custom pong.yaml
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/scroll-pong/internal/config"
)

const defaultDBPath = "~/.scrollpong/recordings.db"

var (
	// Global flags
	flagFPS        float64
	flagSeed       int64
	flagGamma      float64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scrollpong",
	Short: "Scroll Pong - two-player Pong on a 17x7 LED grid",
	Long: `Scroll Pong is a two-player Pong for the Pico Scroll Pack's 17x7 LED
matrix. The terminal front end draws the grid as gray blocks and maps keys to
the four buttons.

Available commands:
  play        - Play locally in the terminal
  serve       - Start SSH server for remote play
  recordings  - Browse and replay recorded games
  replay      - Replay a recorded game
  headless    - Simulate frames and print the final grid
  config      - Print the effective configuration

Examples:
  scrollpong play
  scrollpong play --record --difficulty hard
  scrollpong serve --ssh :2222
  scrollpong headless --frames 600 --coin`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&flagFPS, "fps", 0, "Frame cap in frames per second (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().Float64Var(&flagGamma, "gamma", 0, "Display gamma exponent (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pong.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordingsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the configuration and applies the global flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDifficulty != "" {
		if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
			return config.Config{}, err
		}
	}
	if flagFPS > 0 {
		cfg.Display.MaxFPS = flagFPS
	}
	if flagGamma > 0 {
		cfg.Display.Gamma = flagGamma
	}
	return cfg, cfg.Validate()
}

// seed returns the --seed value, or a time-based one when unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newLogger builds the logger from the global flags. Full-screen commands
// pass quiet to keep log lines out of the terminal unless --log-file is set.
// The returned func closes the log file.
func newLogger(prefix string, quiet bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}
