// Package tui provides the Bubble Tea portfolio page.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/folio/internal/contact"
	"github.com/verte-zerg/folio/internal/model"
	"github.com/verte-zerg/folio/internal/nav"
	"github.com/verte-zerg/folio/internal/outbox"
	"github.com/verte-zerg/folio/internal/theme"
)

const (
	introInterval  = 60 * time.Millisecond
	frameInterval  = time.Second / 60
	noticeDuration = 2 * time.Second
	barStep        = 0.08

	// Thresholds in lines: the page scrolls by lines, not pixels.
	activeThresholdLines    = 3
	scrollTopThresholdLines = 8
)

// Options configures the page model.
type Options struct {
	Portfolio model.Portfolio
	Theme     *theme.Store
	Flow      *contact.Flow
	// Journal records every delivered message. Nil disables journaling.
	Journal outbox.Journal
	Logger  *zap.Logger
	// Now and Clipboard default to time.Now and the system clipboard.
	Now       func() time.Time
	Clipboard func(string) error
}

// ContentMsg delivers a reloaded portfolio to a running page.
type ContentMsg struct {
	Portfolio model.Portfolio
	Err       error
}

type (
	introTickMsg     struct{}
	frameMsg         struct{ gen int }
	scrollSettleMsg  struct{}
	noticeExpiredMsg struct{ id int }
	deliveredMsg     struct {
		attempt contact.Attempt
		result  contact.Result
	}
	resetMsg struct {
		id uint64
		ok bool
	}
)

// Model implements the Bubble Tea portfolio page.
type Model struct {
	portfolio model.Portfolio
	palette   theme.Palette
	theme     *theme.Store
	flow      *contact.Flow
	journal   outbox.Journal
	logger    *zap.Logger
	now       func() time.Time
	copyText  func(string) error

	width  int
	height int

	viewport     viewport.Model
	tops         []nav.SectionTop
	tracker      *nav.Tracker
	throttle     nav.Throttle
	userScrolled bool
	navView      string

	spring       harmonica.Spring
	scrollPos    float64
	scrollVel    float64
	scrollTarget float64
	animating    bool
	animGen      int

	intro bool
	typed int
	bars  float64

	form    *contactForm
	spinner spinner.Model

	notice    string
	noticeErr bool
	noticeID  int

	aboutView string
	aboutKey  string

	keys     pageKeys
	formKeys formKeys
	help     help.Model
}

// NewModel constructs the page model.
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Theme == nil {
		opts.Theme = theme.Load(context.Background(), nil, opts.Logger)
	}
	if opts.Flow == nil {
		opts.Flow = contact.NewFlow(nil, contact.Options{})
	}
	m := &Model{
		portfolio: opts.Portfolio,
		palette:   theme.NewPalette(),
		theme:     opts.Theme,
		flow:      opts.Flow,
		journal:   opts.Journal,
		logger:    opts.Logger.Named("tui"),
		now:       opts.Now,
		copyText:  opts.Clipboard,
		viewport:  viewport.New(0, 0),
		tracker: nav.NewTracker(nav.Options{
			ActiveThreshold:    activeThresholdLines,
			ScrollTopThreshold: scrollTopThresholdLines,
		}),
		throttle: nav.Throttle{Interval: nav.DefaultScrollThrottle},
		spring:   harmonica.NewSpring(harmonica.FPS(60), 6.0, 1.0),
		intro:    true,
		form:     newContactForm(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		keys:     newPageKeys(),
		formKeys: newFormKeys(),
		help:     help.New(),
	}
	m.renderNav()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return introTick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.form.setWidth(pageWidth(msg.Width) - 2)
		m.renderNav()
		m.updateLayout()
		m.recompose()
		return m, nil
	case tea.KeyMsg:
		if m.form.active {
			return m.updateForm(msg)
		}
		return m.updatePage(msg)
	case tea.MouseMsg:
		before := m.viewport.YOffset
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		if m.viewport.YOffset != before {
			m.stopAnimation()
			return m, tea.Batch(cmd, m.scrolled(true))
		}
		return m, cmd
	case introTickMsg:
		return m, m.stepIntro()
	case frameMsg:
		if msg.gen != m.animGen {
			return m, nil
		}
		return m, m.stepScroll()
	case scrollSettleMsg:
		m.settleScroll()
		return m, nil
	case deliveredMsg:
		return m, m.finishDelivery(msg)
	case resetMsg:
		if msg.ok && m.flow.Reset(msg.id) {
			m.recompose()
		}
		return m, nil
	case spinner.TickMsg:
		if m.flow.State().Phase != contact.PhaseSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.recompose()
		return m, cmd
	case noticeExpiredMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil
	case ContentMsg:
		return m, m.applyContent(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	navHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.navView, m.width, navHeight)
	body := fitLines(m.viewport.View(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Menu):
		if m.compact() {
			m.tracker.ToggleMenu()
			m.refreshNav()
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.userScrolled = false
		m.tracker.ScrollToTop()
		m.refreshNav()
		return m, m.animateTo(0)
	case key.Matches(msg, m.keys.Contact):
		cmd := m.form.Focus()
		m.recompose()
		return m, tea.Batch(cmd, m.jumpTo(nav.Contact))
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyEmail()
	case key.Matches(msg, m.keys.Jump):
		idx := int(msg.String()[0] - '1')
		if idx < 0 || idx >= len(nav.Order) {
			return m, nil
		}
		return m, m.jumpTo(nav.Order[idx])
	}

	before := m.viewport.YOffset
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	if m.viewport.YOffset != before {
		m.stopAnimation()
		return m, tea.Batch(cmd, m.scrolled(true))
	}
	return m, cmd
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.formKeys.Escape):
		if m.flow.State().Err != nil {
			m.flow.DismissError()
		} else {
			m.form.Blur()
		}
		m.recompose()
		return m, nil
	case key.Matches(msg, m.formKeys.Next):
		cmd := m.form.move(1)
		m.recompose()
		return m, cmd
	case key.Matches(msg, m.formKeys.Prev):
		cmd := m.form.move(-1)
		m.recompose()
		return m, cmd
	case key.Matches(msg, m.formKeys.Submit):
		return m, m.submit()
	}

	field := m.form.focus
	value, cmd := m.form.update(msg)
	if value != m.flow.State().Value(field) {
		m.flow.SetField(field, value)
	}
	m.recompose()
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	attempt, ok := m.flow.Submit()
	m.recompose()
	if !ok {
		if err := m.flow.State().Err; err != nil {
			m.logger.Debug("submission rejected", zap.Error(err))
		}
		return nil
	}
	m.logger.Info("sending contact message", zap.Uint64("attempt", attempt.ID))
	flow := m.flow
	deliver := func() tea.Msg {
		return deliveredMsg{attempt: attempt, result: flow.Deliver(attempt)}
	}
	return tea.Batch(m.spinner.Tick, deliver)
}

func (m *Model) finishDelivery(msg deliveredMsg) tea.Cmd {
	if m.journal != nil {
		if _, err := outbox.Record(context.Background(), m.journal, msg.attempt.Message, msg.result.Err, m.now()); err != nil {
			m.logger.Warn("failed to journal message", zap.Error(err))
		}
	}
	if !m.flow.Complete(msg.result) {
		m.logger.Debug("ignored stale delivery", zap.Uint64("attempt", msg.result.ID))
		return nil
	}
	st := m.flow.State()
	m.form.sync(st)
	m.recompose()
	if st.Phase != contact.PhaseSubmitted {
		m.logger.Warn("contact message failed", zap.Error(st.Err))
		return nil
	}
	m.logger.Info("contact message sent", zap.Uint64("attempt", msg.result.ID))
	flow := m.flow
	id := msg.result.ID
	return func() tea.Msg {
		return resetMsg{id: id, ok: flow.AwaitReset()}
	}
}

func (m *Model) quit() tea.Cmd {
	m.flow.Close()
	return tea.Quit
}

func (m *Model) toggleTheme() {
	dark := m.theme.Toggle(context.Background())
	m.logger.Debug("theme toggled", zap.Bool("dark", dark))
	m.aboutKey = ""
	m.renderNav()
	m.recompose()
}

func (m *Model) copyEmail() tea.Cmd {
	email := m.portfolio.Profile.Email
	if email == "" {
		return nil
	}
	if err := m.copyText(email); err != nil {
		m.logger.Warn("clipboard unavailable", zap.Error(err))
		return m.flash("Clipboard unavailable: "+email, true)
	}
	return m.flash("Copied "+email, false)
}

func (m *Model) flash(text string, isErr bool) tea.Cmd {
	m.noticeID++
	id := m.noticeID
	m.notice = text
	m.noticeErr = isErr
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

func (m *Model) applyContent(msg ContentMsg) tea.Cmd {
	if msg.Err != nil {
		m.logger.Warn("content reload failed", zap.Error(msg.Err))
		return m.flash("Content reload failed: "+msg.Err.Error(), true)
	}
	m.portfolio = msg.Portfolio
	m.aboutKey = ""
	m.renderNav()
	m.recompose()
	return m.flash("Content reloaded", false)
}

func introTick() tea.Cmd {
	return tea.Tick(introInterval, func(time.Time) tea.Msg {
		return introTickMsg{}
	})
}

// stepIntro advances the entrance animation: the hero name types itself in
// and the skill bars fill.
func (m *Model) stepIntro() tea.Cmd {
	if !m.intro {
		return nil
	}
	nameLen := len([]rune(m.portfolio.Profile.Name))
	if m.typed < nameLen {
		m.typed++
	}
	m.bars = math.Min(1, m.bars+barStep)
	if m.typed >= nameLen && m.bars >= 1 {
		m.intro = false
	}
	m.recompose()
	if !m.intro {
		return nil
	}
	return introTick()
}

// jumpTo selects id and scrolls to it. A scroll sample still pending from
// before the jump is no longer a user scroll.
func (m *Model) jumpTo(id nav.SectionID) tea.Cmd {
	if !nav.Valid(id) {
		return nil
	}
	m.userScrolled = false
	m.tracker.Select(id)
	m.refreshNav()
	return m.animateTo(m.sectionOffset(id))
}

func (m *Model) sectionOffset(id nav.SectionID) int {
	for _, top := range m.tops {
		if top.ID == id {
			return top.Top
		}
	}
	return 0
}

func (m *Model) maxOffset() int {
	return maxInt(0, m.viewport.TotalLineCount()-m.viewport.Height)
}

// animateTo starts a spring-driven scroll towards target. A running
// animation is retargeted instead of restarted.
func (m *Model) animateTo(target int) tea.Cmd {
	m.scrollTarget = float64(minInt(maxInt(target, 0), m.maxOffset()))
	if m.animating {
		return nil
	}
	m.animating = true
	m.animGen++
	m.scrollPos = float64(m.viewport.YOffset)
	m.scrollVel = 0
	return frameTick(m.animGen)
}

func (m *Model) stopAnimation() {
	if m.animating {
		m.animating = false
		m.animGen++
	}
}

func frameTick(gen int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

func (m *Model) stepScroll() tea.Cmd {
	if !m.animating {
		return nil
	}
	m.scrollPos, m.scrollVel = m.spring.Update(m.scrollPos, m.scrollVel, m.scrollTarget)
	if math.Abs(m.scrollPos-m.scrollTarget) < 0.5 && math.Abs(m.scrollVel) < 0.5 {
		m.scrollPos = m.scrollTarget
		m.scrollVel = 0
		m.animating = false
	}
	m.viewport.SetYOffset(int(math.Round(m.scrollPos)))
	cmds := []tea.Cmd{m.scrolled(false)}
	if m.animating {
		cmds = append(cmds, frameTick(m.animGen))
	}
	return tea.Batch(cmds...)
}

// scrolled records a scroll notification. Bursts are coalesced into one
// tracker update per throttle interval.
func (m *Model) scrolled(user bool) tea.Cmd {
	if user {
		m.userScrolled = true
	}
	if !m.throttle.Request() {
		return nil
	}
	return tea.Tick(m.throttle.Interval, func(time.Time) tea.Msg {
		return scrollSettleMsg{}
	})
}

func (m *Model) settleScroll() {
	m.throttle.Fire()
	sample := nav.Sample{
		ScrollY: m.viewport.YOffset,
		Tops:    m.relativeTops(),
		User:    m.userScrolled,
	}
	m.userScrolled = false
	if _, changed := m.tracker.Observe(sample); changed {
		m.refreshNav()
	}
}

func (m *Model) relativeTops() []nav.SectionTop {
	out := make([]nav.SectionTop, len(m.tops))
	for i, top := range m.tops {
		out[i] = nav.SectionTop{ID: top.ID, Top: top.Top - m.viewport.YOffset}
	}
	return out
}

func (m *Model) compact() bool {
	return m.width > 0 && m.width < wideWidth
}

// refreshNav re-renders the navigation bar and resizes the viewport when the
// bar height changed.
func (m *Model) refreshNav() {
	before := lipgloss.Height(m.navView)
	m.renderNav()
	if lipgloss.Height(m.navView) != before {
		m.updateLayout()
	}
}

func (m *Model) renderNav() {
	st := m.tracker.State()
	p := m.palette
	brandName := m.portfolio.Profile.Nickname
	if brandName == "" {
		brandName = m.portfolio.Profile.Name
	}
	brand := p.Title.Render(brandName)
	mode := "☀ light"
	if m.theme.IsDark() {
		mode = "☾ dark"
	}
	extras := []string{p.Faint.Render(mode)}
	if st.ShowScrollTop {
		extras = append(extras, p.Link.Render("↑ top"))
	}

	if !m.compact() {
		tabs := make([]string, 0, len(nav.Entries))
		for _, e := range nav.Entries {
			label := fmt.Sprintf("%d %s", entryKey(e.ID), e.Label)
			if e.ID == st.Active {
				tabs = append(tabs, p.NavActive.Render(label))
			} else {
				tabs = append(tabs, p.NavInactive.Render(label))
			}
		}
		m.navView = lipgloss.JoinHorizontal(lipgloss.Center,
			brand+"  ",
			lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
			"  "+strings.Join(extras, "  "))
		return
	}

	line := brand + "  " + p.Faint.Render("m: menu")
	if label := entryLabel(st.Active); label != "" {
		line += "  " + p.Subtitle.Render(label)
	}
	line += "  " + strings.Join(extras, "  ")
	if !st.MenuOpen {
		m.navView = line
		return
	}
	lines := []string{line}
	for _, e := range nav.Entries {
		label := fmt.Sprintf("  %d %s", entryKey(e.ID), e.Label)
		if e.ID == st.Active {
			lines = append(lines, p.Title.Render(label))
		} else {
			lines = append(lines, p.Faint.Render(label))
		}
	}
	m.navView = strings.Join(lines, "\n")
}

// entryKey is the digit that jumps to id.
func entryKey(id nav.SectionID) int {
	for i, known := range nav.Order {
		if known == id {
			return i + 1
		}
	}
	return 0
}

func entryLabel(id nav.SectionID) string {
	for _, e := range nav.Entries {
		if e.ID == id {
			return e.Label
		}
	}
	return ""
}

func (m *Model) renderFooter() string {
	if m.notice != "" {
		if m.noticeErr {
			return m.palette.Error.Render(m.notice)
		}
		return m.palette.Success.Render(m.notice)
	}
	if m.form.active {
		return m.help.View(m.formKeys)
	}
	return m.help.View(m.keys)
}

func (m *Model) layoutHeights() (navHeight, bodyHeight, footerHeight int) {
	navHeight = maxInt(1, lipgloss.Height(m.navView))
	footerHeight = 1
	bodyHeight = maxInt(1, m.height-navHeight-footerHeight)
	return navHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.viewport.Width = m.width
	m.viewport.Height = bodyHeight
}

// recompose rebuilds the page content. The about section goes through
// glamour, so it is cached per width and mode.
func (m *Model) recompose() {
	if m.width <= 0 {
		return
	}
	width := pageWidth(m.width)
	dark := m.theme.IsDark()
	aboutKey := fmt.Sprintf("%d/%t", width, dark)
	if m.aboutKey != aboutKey {
		about, err := renderAbout(m.portfolio.Profile, dark, width)
		if err != nil {
			m.logger.Warn("about section rendered as plain text", zap.Error(err))
		}
		m.aboutView = about
		m.aboutKey = aboutKey
	}
	typed, bars := m.typed, m.bars
	if !m.intro {
		typed, bars = -1, 1
	}
	page, tops := composePage(pageInput{
		portfolio: m.portfolio,
		palette:   m.palette,
		dark:      dark,
		width:     m.width,
		typed:     typed,
		bars:      bars,
		about:     m.aboutView,
		form:      m.form.view(m.flow.State(), m.palette, m.spinner, width),
		year:      m.now().Year(),
	})
	m.tops = tops
	m.viewport.SetContent(page)
}
