package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of styles every section renders with. Colors are
// adaptive, so one palette serves both modes.
type Palette struct {
	Primary      lipgloss.AdaptiveColor
	Secondary    lipgloss.AdaptiveColor
	Accent       lipgloss.AdaptiveColor
	SuccessColor lipgloss.AdaptiveColor
	ErrorColor   lipgloss.AdaptiveColor
	Muted        lipgloss.AdaptiveColor
	Border       lipgloss.AdaptiveColor
	Text         lipgloss.AdaptiveColor
	Track        lipgloss.AdaptiveColor

	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Body        lipgloss.Style
	Faint       lipgloss.Style
	Heading     lipgloss.Style
	Card        lipgloss.Style
	CardTitle   lipgloss.Style
	Tag         lipgloss.Style
	Link        lipgloss.Style
	NavActive   lipgloss.Style
	NavInactive lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	Button      lipgloss.Style
	ButtonBusy  lipgloss.Style
	ButtonDone  lipgloss.Style
	Label       lipgloss.Style
	Footer      lipgloss.Style
	Pending     lipgloss.Style
	Cursor      lipgloss.Style
}

// tagColors backs the opaque visual tags of skills and projects.
var tagColors = map[string]lipgloss.AdaptiveColor{
	"orange": {Light: "#C2410C", Dark: "#FB923C"},
	"blue":   {Light: "#1D4ED8", Dark: "#60A5FA"},
	"yellow": {Light: "#A16207", Dark: "#FACC15"},
	"purple": {Light: "#7E22CE", Dark: "#C084FC"},
	"green":  {Light: "#15803D", Dark: "#4ADE80"},
	"cyan":   {Light: "#0E7490", Dark: "#22D3EE"},
	"teal":   {Light: "#0F766E", Dark: "#2DD4BF"},
	"pink":   {Light: "#BE185D", Dark: "#F472B6"},
	"red":    {Light: "#B91C1C", Dark: "#F87171"},
	"indigo": {Light: "#4338CA", Dark: "#818CF8"},
}

// NewPalette builds the default palette.
func NewPalette() Palette {
	p := Palette{
		Primary:      lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"},
		Secondary:    lipgloss.AdaptiveColor{Light: "#7E22CE", Dark: "#C084FC"},
		Accent:       lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#C89A3A"},
		SuccessColor: lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"},
		ErrorColor:   lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF4D4F"},
		Muted:        lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#8C8C8C"},
		Border:       lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4A4A4A"},
		Text:         lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F0F0F0"},
		Track:        lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"},
	}
	p.Title = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	p.Subtitle = lipgloss.NewStyle().Foreground(p.Secondary).Bold(true)
	p.Body = lipgloss.NewStyle().Foreground(p.Text)
	p.Faint = lipgloss.NewStyle().Foreground(p.Muted)
	p.Heading = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(p.Accent)
	p.Card = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(p.Border)
	p.CardTitle = lipgloss.NewStyle().Foreground(p.Text).Bold(true)
	p.Tag = lipgloss.NewStyle().Foreground(p.Primary).Padding(0, 1)
	p.Link = lipgloss.NewStyle().Foreground(p.Primary).Underline(true)
	p.NavActive = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(p.Accent)
	p.NavInactive = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(p.Border)
	p.Success = lipgloss.NewStyle().Foreground(p.SuccessColor).Bold(true)
	p.Error = lipgloss.NewStyle().Foreground(p.ErrorColor)
	p.Button = lipgloss.NewStyle().
		Foreground(p.Text).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(p.Primary)
	p.ButtonBusy = p.Button.BorderForeground(p.Muted).Foreground(p.Muted)
	p.ButtonDone = p.Button.BorderForeground(p.SuccessColor).Foreground(p.SuccessColor)
	p.Label = lipgloss.NewStyle().Foreground(p.Muted).Bold(true)
	p.Footer = lipgloss.NewStyle().Foreground(p.Muted)
	p.Pending = lipgloss.NewStyle().Foreground(p.Muted)
	p.Cursor = lipgloss.NewStyle().Foreground(p.Accent).Underline(true)
	return p
}

// TagColor resolves an opaque visual tag. Unknown tags use the primary color.
func (p Palette) TagColor(tag string) lipgloss.AdaptiveColor {
	if c, ok := tagColors[tag]; ok {
		return c
	}
	return p.Primary
}

// Resolve picks the concrete color string for the given mode. Widgets that
// take plain color strings (progress bars) need it.
func Resolve(c lipgloss.AdaptiveColor, dark bool) string {
	if dark {
		return c.Dark
	}
	return c.Light
}
