// Package theme centralizes Lip Gloss styles for the Bubble Tea UI. Three
// palettes ship with the app and the active one cycles dark, blue, light.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Name identifies a built-in palette.
type Name string

const (
	Dark  Name = "dark"
	Blue  Name = "blue"
	Light Name = "light"
)

// Next returns the palette that follows n in the cycle order.
func (n Name) Next() Name {
	switch n {
	case Dark:
		return Blue
	case Blue:
		return Light
	default:
		return Dark
	}
}

// Theme groups the styles used across the UI.
type Theme struct {
	Name Name

	Title    lipgloss.Style
	Header   lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Holiday  lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style

	Modal       lipgloss.Style
	ModalTitle  lipgloss.Style
	InputLabel  lipgloss.Style
	StatCard    lipgloss.Style
	TodayMarker lipgloss.Style
}

// palette holds the raw colors a theme derives its styles from.
type palette struct {
	accent  string
	text    string
	muted   string
	holiday string
	danger  string
}

var palettes = map[Name]palette{
	Dark: {
		accent:  "#a78bfa",
		text:    "#e5e7eb",
		muted:   "#6b7280",
		holiday: "#fbbf24",
		danger:  "#f87171",
	},
	Blue: {
		accent:  "#38bdf8",
		text:    "#e0f2fe",
		muted:   "#64748b",
		holiday: "#fde047",
		danger:  "#fb7185",
	},
	Light: {
		accent:  "#7c3aed",
		text:    "#1f2937",
		muted:   "#9ca3af",
		holiday: "#b45309",
		danger:  "#dc2626",
	},
}

// Detect picks a default palette from the terminal background.
func Detect() Name {
	if termenv.HasDarkBackground() {
		return Dark
	}
	return Light
}

// Load resolves a saved theme name into a Theme. Unknown or empty names fall
// back to the detected default.
func Load(name string) Theme {
	n := Name(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := palettes[n]; !ok {
		n = Detect()
	}
	return build(n)
}

func build(n Name) Theme {
	p := palettes[n]

	// Selection background sits between the accent and the text color so it
	// reads on both dark and light terminals.
	selectedBg := p.accent
	if accent, err := colorful.Hex(p.accent); err == nil {
		if text, err := colorful.Hex(p.text); err == nil {
			selectedBg = accent.BlendLab(text, 0.25).Hex()
		}
	}

	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted))

	return Theme{
		Name: n,

		Title:    accent.Bold(true),
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Bold(true),
		Accent:   accent,
		Muted:    muted,
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Background(lipgloss.Color(selectedBg)),
		Holiday:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.holiday)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)).Bold(true),
		Help:     muted,

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.accent)).
			Padding(1, 2),
		ModalTitle:  accent.Bold(true).Underline(true),
		InputLabel:  muted.Bold(true),
		StatCard:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(p.muted)).Padding(0, 1),
		TodayMarker: accent.Reverse(true),
	}
}
