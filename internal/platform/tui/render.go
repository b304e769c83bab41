package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/scroll-pong/internal/core"
)

// cellWidth is the number of terminal columns per grid cell; two columns
// make a cell roughly square.
const cellWidth = 2

// Renderer turns grid frames into styled terminal text. It undoes the
// display gamma so a terminal shows the brightness a viewer would see on
// the LEDs.
type Renderer struct {
	gamma  float64
	styles [256]lipgloss.Style
	frame  lipgloss.Style
}

// NewRenderer creates a renderer for frames encoded with gamma, styled for
// the local terminal.
func NewRenderer(gamma float64) *Renderer {
	return NewRendererFor(lipgloss.DefaultRenderer(), gamma)
}

// NewRendererFor creates a renderer whose styles target lr, such as the
// renderer of an SSH session.
func NewRendererFor(lr *lipgloss.Renderer, gamma float64) *Renderer {
	if lr == nil {
		lr = lipgloss.DefaultRenderer()
	}
	if !(gamma > 0) {
		gamma = 1
	}
	r := &Renderer{
		gamma: gamma,
		frame: lr.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
	}
	for raw := range r.styles {
		v := Perceived(uint8(raw), gamma)
		r.styles[raw] = lr.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", v, v, v)))
	}
	return r
}

// Perceived inverts the display gamma: 255*(raw/255)^(1/gamma).
func Perceived(raw uint8, gamma float64) uint8 {
	return uint8(math.Round(255 * math.Pow(float64(raw)/255, 1/gamma)))
}

// Render draws a row-major frame of the given width inside a border.
// Adjacent cells of equal level share one style run.
func (r *Renderer) Render(frame []uint8, width int) string {
	if width <= 0 || len(frame) == 0 {
		return r.frame.Render("")
	}
	height := len(frame) / width
	blank := strings.Repeat(" ", cellWidth)

	var sb strings.Builder
	sb.Grow(len(frame) * (cellWidth + 20))
	for y := range height {
		if y > 0 {
			sb.WriteRune('\n')
		}
		row := frame[y*width : (y+1)*width]
		x := 0
		for x < width {
			level := row[x]
			n := 0
			for x < width && row[x] == level {
				n++
				x++
			}
			sb.WriteString(r.styles[level].Render(strings.Repeat(blank, n)))
		}
	}
	return r.frame.Render(sb.String())
}

// RenderASCII draws a frame with shade characters, for logs and
// non-terminal output.
func RenderASCII(frame []uint8, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	for i, v := range frame {
		if i > 0 && i%width == 0 {
			sb.WriteRune('\n')
		}
		sb.WriteRune(core.ShadeRune(v))
	}
	return sb.String()
}
