package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/scroll-pong/internal/platform/tui"
	"github.com/vovakirdan/scroll-pong/internal/storage"
)

var (
	flagRecDB    string
	flagRecPlain bool
	flagRecLimit int
	flagSpeed    float64
)

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "Browse recorded games",
	Long: `List the games recorded with 'play --record' or 'serve --record'.

In a terminal this opens a browser: enter replays the selected game and d
deletes it. With --plain, or when stdout is not a terminal, a plain table is
printed instead.

Examples:
  scrollpong recordings
  scrollpong recordings --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runRecordings,
}

var replayCmd = &cobra.Command{
	Use:   "replay <session>",
	Short: "Replay a recorded game",
	Long: `Replay a recorded game in the terminal at its recorded pace.

The session may be given by any unique prefix of its ID.

Examples:
  scrollpong replay 3f2a
  scrollpong replay 3f2a --speed 2`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	for _, c := range []*cobra.Command{recordingsCmd, replayCmd} {
		c.Flags().StringVar(&flagRecDB, "db", defaultDBPath, "Path to recordings database")
		c.Flags().Float64Var(&flagSpeed, "speed", 1, "Replay speed multiplier (0 = as fast as possible)")
	}
	recordingsCmd.Flags().BoolVar(&flagRecPlain, "plain", false, "Print a plain table")
	recordingsCmd.Flags().IntVar(&flagRecLimit, "limit", 20, "Maximum recordings to list")
}

func runRecordings(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagRecDB)
	if err != nil {
		return fmt.Errorf("opening recordings database: %w", err)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if flagRecPlain || !term.IsTerminal(fd) {
		return printRecordings(cmd.OutOrStdout(), store)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width = w
		height = h
	}

	sess, ok, err := tui.RunRecordings(store, width, height)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := replaySession(store, sess); err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	return nil
}

// printRecordings writes the session list as text.
func printRecordings(w io.Writer, store *storage.Store) error {
	sessions, err := store.Sessions(flagRecLimit)
	if err != nil {
		return fmt.Errorf("retrieving recordings: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(w, "No recordings yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'scrollpong play --record' to capture a game.")
		return nil
	}

	fmt.Fprintf(w, "  %-8s  %-16s  %-16s  %-7s  %s\n", "ID", "Label", "Started", "Frames", "Length")
	fmt.Fprintf(w, "  %-8s  %-16s  %-16s  %-7s  %s\n", "--", "-----", "-------", "------", "------")
	for _, s := range sessions {
		row := tui.SessionRow(s)
		fmt.Fprintf(w, "  %-8s  %-16s  %-16s  %-7s  %s\n", row[0], row[1], s.StartedAt.Local().Format("2006-01-02 15:04"), row[3], row[4])
	}
	return nil
}

func runReplay(_ *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("replay needs a terminal")
	}

	store, err := storage.Open(flagRecDB)
	if err != nil {
		return fmt.Errorf("opening recordings database: %w", err)
	}
	defer store.Close()

	sess, err := store.FindSession(args[0])
	if err != nil {
		return err
	}
	if err := replaySession(store, sess); err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	return nil
}

// replaySession loads a recording and plays it in the terminal.
func replaySession(store *storage.Store, sess storage.Session) error {
	frames, err := store.Frames(sess.ID)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("REPLAY %s  %s  %s", sess.ID[:min(8, len(sess.ID))], sess.Label, sess.Duration.Round(time.Second))
	model := tui.StartReplay(context.Background(), title, frames, sess.Gamma, flagSpeed)
	return tui.Run(model)
}
