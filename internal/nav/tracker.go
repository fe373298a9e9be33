// Package nav tracks which page section is active and the navigation menu.
package nav

// SectionID is an anchor identifier. The set is the contract between the
// navigation and the composed page.
type SectionID string

const (
	Hero      SectionID = "hero"
	About     SectionID = "apropos"
	Skills    SectionID = "competences"
	Projects  SectionID = "projets"
	Education SectionID = "formation"
	Contact   SectionID = "contact"
)

// Order lists sections in document order.
var Order = []SectionID{Hero, About, Skills, Projects, Education, Contact}

// Entry is a navigation menu item.
type Entry struct {
	ID    SectionID
	Label string
}

// Entries are the menu items; hero is reached through the home affordance.
var Entries = []Entry{
	{ID: About, Label: "About"},
	{ID: Skills, Label: "Skills"},
	{ID: Projects, Label: "Projects"},
	{ID: Education, Label: "Education"},
	{ID: Contact, Label: "Contact"},
}

const (
	DefaultActiveThreshold    = 200
	DefaultScrollTopThreshold = 300
)

// Options sets the thresholds in whatever unit the host measures offsets in.
type Options struct {
	ActiveThreshold    int
	ScrollTopThreshold int
}

// DefaultOptions returns the pixel thresholds of the page layout.
func DefaultOptions() Options {
	return Options{
		ActiveThreshold:    DefaultActiveThreshold,
		ScrollTopThreshold: DefaultScrollTopThreshold,
	}
}

// SectionTop is a section's top edge relative to the viewport top.
type SectionTop struct {
	ID  SectionID
	Top int
}

// Sample is one scroll notification.
type Sample struct {
	// ScrollY is the vertical scroll offset of the page.
	ScrollY int
	// Tops are the section tops relative to the viewport, in document order.
	Tops []SectionTop
	// User is false for programmatic scrolling such as smooth-scroll frames.
	User bool
}

// State is the derived navigation state.
type State struct {
	Active        SectionID
	MenuOpen      bool
	ShowScrollTop bool
}

// Tracker derives State from scroll samples.
type Tracker struct {
	opts   Options
	state  State
	menu   Menu
	pinned bool
}

// NewTracker returns a tracker with hero active and the menu closed.
func NewTracker(opts Options) *Tracker {
	return &Tracker{
		opts:  opts,
		state: State{Active: Hero},
	}
}

// State returns the current derived state.
func (t *Tracker) State() State {
	s := t.state
	s.MenuOpen = t.menu.IsOpen()
	return s
}

// Observe recomputes the state for a scroll sample and reports whether it
// changed. The active section is the last one in document order whose top is
// at or above the threshold line. When none qualifies the previous active
// section is kept.
func (t *Tracker) Observe(sample Sample) (State, bool) {
	before := t.State()
	t.state.ShowScrollTop = sample.ScrollY > t.opts.ScrollTopThreshold
	if sample.User {
		t.pinned = false
	}
	if !t.pinned {
		if id, ok := ActiveSection(sample.Tops, t.opts.ActiveThreshold); ok {
			t.state.Active = id
		}
	}
	after := t.State()
	return after, after != before
}

// Select activates id immediately, collapses the menu and ignores
// programmatic samples until the user scrolls again.
func (t *Tracker) Select(id SectionID) State {
	t.state.Active = id
	t.pinned = true
	t.menu.Close()
	return t.State()
}

// ScrollToTop activates hero the same way Select does.
func (t *Tracker) ScrollToTop() State {
	return t.Select(Hero)
}

// ToggleMenu flips the compact menu.
func (t *Tracker) ToggleMenu() State {
	t.menu.Toggle()
	return t.State()
}

// Pinned reports whether a navigation selection is overriding scroll samples.
func (t *Tracker) Pinned() bool {
	return t.pinned
}

// ActiveSection scans tops in order with last-match-wins semantics.
func ActiveSection(tops []SectionTop, threshold int) (SectionID, bool) {
	var active SectionID
	found := false
	for _, top := range tops {
		if top.Top <= threshold {
			active = top.ID
			found = true
		}
	}
	return active, found
}

// Valid reports whether id names a known section.
func Valid(id SectionID) bool {
	for _, known := range Order {
		if known == id {
			return true
		}
	}
	return false
}
