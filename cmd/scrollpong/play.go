package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/scroll-pong/internal/platform/tui"
	"github.com/vovakirdan/scroll-pong/internal/storage"
)

var (
	flagRecord bool
	flagDBPath string
	flagLabel  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a two-player game in this terminal.

Controls:
  A/W        - Left paddle up    (button A)
  B/S        - Left paddle down  (button B)
  X/Up       - Right paddle up   (button X)
  Y/Down     - Right paddle down (button Y)
  Q/Ctrl+C   - Quit

Press and release any button to insert a coin. Terminals report no key
releases, so a key counts as held for input.key_hold seconds after its last
press or auto-repeat.

Difficulty options:
  easy   - Slower ramp, wider paddles
  normal - Config values as given
  hard   - Faster serve and ramp
  fixed  - Serve speed never grows

Examples:
  scrollpong play
  scrollpong play --difficulty hard
  scrollpong play --record --label practice
  scrollpong play --config ./my-pong.yaml --gamma 1`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the game")
	playCmd.Flags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to recordings database")
	playCmd.Flags().StringVar(&flagLabel, "label", "", "Label for the recording")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs a terminal; use 'scrollpong headless' for scripted runs")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("scrollpong", true)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.GameOptions{
		Config: cfg,
		Seed:   seed(),
		Logger: logger,
	}

	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("could not open recordings database: %w", err)
		}
		defer store.Close()
		opts.Wrap = tui.RecordTo(store, flagLabel, cfg.Display.Gamma, logger)
	}

	model, err := tui.StartGame(context.Background(), opts)
	if err != nil {
		return err
	}

	if err := tui.Run(model); err != nil {
		logger.Error("game stopped", "error", err)
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
