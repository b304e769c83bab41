// Package tui provides the Bubble Tea front end: it shows the LED grid in a
// terminal, maps keys to the four buttons and serves games over SSH.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/scroll-pong/internal/config"
	"github.com/vovakirdan/scroll-pong/internal/core"
	"github.com/vovakirdan/scroll-pong/internal/engine"
	"github.com/vovakirdan/scroll-pong/internal/games/pong"
	"github.com/vovakirdan/scroll-pong/internal/storage"
)

// FrameMsg carries a flushed grid to the model.
type FrameMsg []uint8

// streamEndMsg reports that the frame producer stopped.
type streamEndMsg struct {
	err error
}

// waitForFrame blocks on the sink until the next frame or its close.
func waitForFrame(sink *FrameSink) tea.Cmd {
	return func() tea.Msg {
		frame, ok := <-sink.Frames()
		if !ok {
			return streamEndMsg{err: sink.Err()}
		}
		return FrameMsg(frame)
	}
}

// producer is the goroutine feeding a FrameSink.
type producer struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// stop cancels the producer and waits for it to finish.
func (p *producer) stop() {
	p.cancel()
	<-p.done
}

// Model is the Bubble Tea model showing a live or replayed grid.
type Model struct {
	title    string
	sink     *FrameSink
	input    *HeldInput // nil when there is nothing to control
	prod     *producer
	keys     KeyMap
	help     help.Model
	renderer *Renderer

	frame    []uint8
	frames   int
	err      error
	quitting bool
}

func newModel(title string, sink *FrameSink, input *HeldInput, prod *producer, renderer *Renderer) Model {
	return Model{
		title:    title,
		sink:     sink,
		input:    input,
		prod:     prod,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		renderer: renderer,
		frame:    make([]uint8, core.GridWidth*core.GridHeight),
	}
}

// GameOptions configures a live game shown in the terminal.
type GameOptions struct {
	Config config.Config
	Seed   int64
	Logger *log.Logger
	Title  string

	// Wrap inserts sinks, such as a recorder, between the game and the UI.
	// A wrapper implementing io.Closer is closed when the game stops.
	Wrap func(engine.PixelSink) (engine.PixelSink, error)

	// Styles targets a specific output; nil means the local terminal.
	Styles *lipgloss.Renderer
}

var _ io.Closer = (*storage.Recorder)(nil)

// StartGame starts a game loop in its own goroutine and returns the model
// observing it. The loop stops when ctx is done or the model quits.
func StartGame(ctx context.Context, opts GameOptions) (Model, error) {
	frames := NewFrameSink()
	input := NewHeldInput(time.Duration(opts.Config.Input.KeyHold * float64(time.Second)))

	var sink engine.PixelSink = frames
	if opts.Wrap != nil {
		wrapped, err := opts.Wrap(frames)
		if err != nil {
			return Model{}, err
		}
		sink = wrapped
	}

	game, err := pong.New(pong.Options{
		Config: opts.Config,
		Sink:   sink,
		Input:  input,
		Seed:   opts.Seed,
		Logger: opts.Logger,
	})
	if err != nil {
		if c, ok := sink.(io.Closer); ok {
			err = errors.Join(err, c.Close())
		}
		return Model{}, err
	}

	ctx, cancel := context.WithCancel(ctx)
	prod := &producer{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(prod.done)
		err := game.Run(ctx)
		if c, ok := sink.(io.Closer); ok {
			if cerr := c.Close(); cerr != nil {
				err = errors.Join(err, cerr)
			}
		}
		frames.Close(err)
	}()

	title := opts.Title
	if title == "" {
		title = "SCROLL PONG"
	}
	renderer := NewRendererFor(opts.Styles, opts.Config.Display.Gamma)
	return newModel(title, frames, input, prod, renderer), nil
}

// StartReplay plays recorded frames in their own goroutine and returns the
// model observing them. gamma is the curve the frames were recorded with.
func StartReplay(ctx context.Context, title string, frames []storage.Frame, gamma, speed float64) Model {
	sink := NewFrameSink()
	ctx, cancel := context.WithCancel(ctx)
	prod := &producer{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(prod.done)
		sink.Close(storage.Replay(ctx, frames, sink, engine.NewSystemClock(), speed))
	}()
	return newModel(title, sink, nil, prod, NewRenderer(gamma))
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.sink)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = msg
		m.frames++
		return m, waitForFrame(m.sink)

	case streamEndMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsQuit(msg) {
		m.quitting = true
		if m.prod != nil {
			m.prod.cancel()
		}
		return m, tea.Quit
	}
	if m.input != nil {
		if id, ok := m.keys.Button(msg); ok {
			m.input.Press(id)
		}
	}
	return m, nil
}

// Err returns the error that stopped the producer, if any.
func (m Model) Err() error {
	return m.err
}

// Frames returns the number of frames received.
func (m Model) Frames() int {
	return m.frames
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.renderer.Render(m.frame, core.GridWidth))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.input != nil {
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	} else {
		b.WriteString(helpStyle.Render(fmt.Sprintf("frame %d • %s", m.frames, m.help.View(quitOnly{m.keys}))))
	}
	return b.String()
}

// quitOnly limits the help view to the quit binding.
type quitOnly struct {
	KeyMap
}

// ShortHelp returns the quit binding.
func (q quitOnly) ShortHelp() []key.Binding {
	return []key.Binding{q.Quit}
}

// Run starts the Bubble Tea program with the given model and waits for its
// producer to stop.
func Run(m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(m, opts...)

	final, err := p.Run()
	if m.prod != nil {
		m.prod.stop()
	}
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	if err := m.sink.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// RecordTo returns a GameOptions.Wrap that tees every frame into a new
// recording in store.
func RecordTo(store *storage.Store, label string, gamma float64, logger *log.Logger) func(engine.PixelSink) (engine.PixelSink, error) {
	return func(next engine.PixelSink) (engine.PixelSink, error) {
		return storage.NewRecorder(store, next, engine.NewSystemClock(), storage.RecorderOptions{
			Label:  label,
			Gamma:  gamma,
			Logger: logger,
		})
	}
}
