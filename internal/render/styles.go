package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette
var (
	keyColor     = lipgloss.Color("#7aa2f7")
	stringColor  = lipgloss.Color("#9ece6a")
	binaryColor  = lipgloss.Color("#bb9af7")
	mutedColor   = lipgloss.Color("#565f89")
	headerColor  = lipgloss.Color("#e0af68")
	borderColor  = lipgloss.Color("#3b4261")
	warningColor = lipgloss.Color("#f7768e")
)

// styles holds the lipgloss styles bound to one output renderer.
type styles struct {
	key     lipgloss.Style
	str     lipgloss.Style
	binary  lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
	border  lipgloss.Style
	warning lipgloss.Style
	cell    lipgloss.Style
}

// newStyles returns the styles for w. Without color every style is plain
// so the output holds no escape sequences.
func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	s := styles{
		key:     r.NewStyle(),
		str:     r.NewStyle(),
		binary:  r.NewStyle(),
		muted:   r.NewStyle(),
		header:  r.NewStyle().Padding(0, 1),
		border:  r.NewStyle(),
		warning: r.NewStyle(),
		cell:    r.NewStyle().Padding(0, 1),
	}
	if !color {
		r.SetColorProfile(termenv.Ascii)
		return s
	}

	s.key = s.key.Foreground(keyColor).Bold(true)
	s.str = s.str.Foreground(stringColor)
	s.binary = s.binary.Foreground(binaryColor).Italic(true)
	s.muted = s.muted.Foreground(mutedColor).Italic(true)
	s.header = s.header.Foreground(headerColor).Bold(true)
	s.border = s.border.Foreground(borderColor)
	s.warning = s.warning.Foreground(warningColor)
	return s
}
