package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/folio/internal/model"
	"github.com/verte-zerg/folio/internal/nav"
	"github.com/verte-zerg/folio/internal/theme"
)

const (
	// wideWidth is the width from which cards sit side by side and the full
	// navigation bar replaces the compact menu.
	wideWidth     = 90
	maxPageWidth  = 110
	skillNameCols = 20
	sectionGap    = 2
)

// pageInput is everything a page composition depends on.
type pageInput struct {
	portfolio model.Portfolio
	palette   theme.Palette
	dark      bool
	width     int
	// typed is the number of hero name runes revealed; negative reveals all.
	typed int
	// bars is the fill fraction of the skill bars, 0..1.
	bars  float64
	about string
	form  string
	year  int
}

type renderedSection struct {
	id   nav.SectionID
	body string
}

// composePage lays the sections out in document order and returns the page
// with the line each section starts at.
func composePage(in pageInput) (string, []nav.SectionTop) {
	width := pageWidth(in.width)
	sections := []renderedSection{
		{id: nav.Hero, body: renderHero(in, width)},
		{id: nav.About, body: renderAboutSection(in, width)},
		{id: nav.Skills, body: renderSkills(in, width)},
		{id: nav.Projects, body: renderProjects(in, width)},
		{id: nav.Education, body: renderEducation(in, width)},
		{id: nav.Contact, body: renderContact(in, width)},
	}

	var b strings.Builder
	tops := make([]nav.SectionTop, 0, len(sections))
	line := 0
	for i, s := range sections {
		if i > 0 {
			b.WriteString(strings.Repeat("\n", sectionGap+1))
			line += sectionGap
		}
		tops = append(tops, nav.SectionTop{ID: s.id, Top: line})
		b.WriteString(s.body)
		line += lineCount(s.body)
	}
	b.WriteString(strings.Repeat("\n", sectionGap+1))
	b.WriteString(renderFooter(in, width))

	page := lipgloss.PlaceHorizontal(maxInt(in.width, width), lipgloss.Center, b.String())
	return page, tops
}

func pageWidth(width int) int {
	if width <= 0 {
		return 80
	}
	return minInt(width, maxPageWidth)
}

func sectionHeading(p theme.Palette, title, subtitle string) string {
	heading := p.Heading.Render(title)
	if subtitle == "" {
		return heading
	}
	return heading + "\n" + p.Faint.Render(subtitle)
}

func renderHero(in pageInput, width int) string {
	p := in.palette
	pr := in.portfolio.Profile
	name := wrapStyledRunes(buildRevealRunes([]rune(pr.Name), in.typed, p.Title, p.Cursor), width)
	lines := []string{
		"",
		p.Faint.Render(pr.Greeting),
		"",
		name,
		p.Subtitle.Render(pr.Role),
		"",
		lipgloss.NewStyle().Width(width).Render(p.Body.Render(pr.Tagline)),
		"",
		p.Faint.Render("c: contact me   2: read more   y: copy email"),
	}
	return strings.Join(lines, "\n")
}

func renderAboutSection(in pageInput, width int) string {
	return sectionHeading(in.palette, "About me", "Get to know me better") + "\n" + in.about
}

// aboutMarkdown is the markdown source of the about section.
func aboutMarkdown(pr model.Profile) string {
	var b strings.Builder
	for _, block := range pr.About {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", block.Title, block.Text)
	}
	return b.String()
}

// renderAbout renders the about blocks through glamour, falling back to
// plain text when the renderer fails.
func renderAbout(pr model.Profile, dark bool, width int) (string, error) {
	md := aboutMarkdown(pr)
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(maxInt(20, width-4)),
	)
	if err != nil {
		return plainAbout(pr, width), fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return plainAbout(pr, width), fmt.Errorf("failed to render about: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

func plainAbout(pr model.Profile, width int) string {
	blocks := make([]string, 0, len(pr.About))
	wrap := lipgloss.NewStyle().Width(width)
	for _, block := range pr.About {
		blocks = append(blocks, block.Title+"\n"+wrap.Render(block.Text))
	}
	return strings.Join(blocks, "\n\n")
}

func renderSkills(in pageInput, width int) string {
	p := in.palette
	barWidth := maxInt(10, minInt(40, width-skillNameCols-8))
	parts := []string{sectionHeading(p, "Skills", "Technologies and tools I master")}
	for _, cat := range model.Categories {
		skills := in.portfolio.SkillsByCategory(cat)
		if len(skills) == 0 {
			continue
		}
		parts = append(parts, "", p.Subtitle.Render(cat.String()))
		for _, s := range skills {
			parts = append(parts, renderSkill(s, p, in.dark, barWidth, in.bars))
		}
	}
	return strings.Join(parts, "\n")
}

func renderSkill(s model.SkillEntry, p theme.Palette, dark bool, barWidth int, fill float64) string {
	bar := progress.New(
		progress.WithSolidFill(theme.Resolve(p.TagColor(s.Tag), dark)),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)
	bar.EmptyColor = theme.Resolve(p.Track, dark)
	name := runewidth.FillRight(runewidth.Truncate(s.Name, skillNameCols, "…"), skillNameCols)
	level := fmt.Sprintf("%3d%%", s.Level)
	return p.Body.Render(name) + " " + bar.ViewAs(float64(s.Level)/100*fill) + " " + p.Faint.Render(level)
}

func renderProjects(in pageInput, width int) string {
	p := in.palette
	projects := in.portfolio.Projects
	cols := 1
	if width >= wideWidth {
		cols = minInt(3, maxInt(1, len(projects)))
	}
	cardWidth := width/cols - 1

	cards := make([]string, 0, len(projects))
	for _, pr := range projects {
		cards = append(cards, renderProjectCard(pr, p, cardWidth))
	}
	rows := []string{sectionHeading(p, "My projects", "A few of my recent work")}
	for i := 0; i < len(cards); i += cols {
		end := minInt(i+cols, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, equalHeight(cards[i:end])...))
	}
	return strings.Join(rows, "\n")
}

func renderProjectCard(pr model.ProjectEntry, p theme.Palette, width int) string {
	inner := maxInt(10, width-4)
	tags := make([]string, 0, len(pr.Technologies))
	for _, tech := range pr.Technologies {
		tags = append(tags, p.Tag.Foreground(p.TagColor(pr.Tag)).Render(tech))
	}
	body := strings.Join([]string{
		p.CardTitle.Foreground(p.TagColor(pr.Tag)).Render(pr.Title),
		lipgloss.NewStyle().Width(inner).Render(p.Body.Render(pr.Description)),
		"",
		lipgloss.NewStyle().Width(inner).Render(strings.Join(tags, " ")),
	}, "\n")
	return p.Card.Width(inner + 2).Render(body)
}

// equalHeight pads rendered cards so a row of them shares one height.
func equalHeight(cards []string) []string {
	height := 0
	for _, c := range cards {
		height = maxInt(height, lipgloss.Height(c))
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		if pad := height - lipgloss.Height(c); pad > 0 {
			c += strings.Repeat("\n", pad)
		}
		out[i] = c
	}
	return out
}

func renderEducation(in pageInput, width int) string {
	p := in.palette
	parts := []string{sectionHeading(p, "Education", "My academic background")}
	inner := maxInt(10, width-6)
	for _, e := range in.portfolio.Education {
		body := strings.Join([]string{
			p.CardTitle.Render(e.Degree),
			p.Subtitle.Render(e.Institution),
			p.Faint.Render(e.Period),
			"",
			lipgloss.NewStyle().Width(inner).Render(p.Body.Render(e.Summary)),
		}, "\n")
		parts = append(parts, p.Card.Width(inner+2).Render(body))
	}
	return strings.Join(parts, "\n")
}

func renderContact(in pageInput, width int) string {
	p := in.palette
	pr := in.portfolio.Profile
	lines := []string{
		sectionHeading(p, "Contact", ""),
		lipgloss.NewStyle().Width(width).Render(p.Body.Render(pr.Pitch)),
		"",
	}
	if pr.Email != "" {
		lines = append(lines, p.Label.Render("Email     ")+p.Link.Render(pr.Email))
	}
	if pr.Phone != "" {
		lines = append(lines, p.Label.Render("Phone     ")+p.Body.Render(pr.Phone))
	}
	for _, l := range pr.Links {
		label := runewidth.FillRight(truncateLine(l.Label, 9), 10)
		lines = append(lines, p.Label.Render(label)+p.Link.Render(l.URL))
	}
	lines = append(lines, "", in.form)
	return strings.Join(lines, "\n")
}

func renderFooter(in pageInput, width int) string {
	p := in.palette
	pf := in.portfolio
	lines := []string{
		fmt.Sprintf("© %d %s", in.year, pf.Profile.Name),
		"Version " + pf.Version,
		"Built with Go • Bubble Tea • Lip Gloss",
	}
	rule := p.Faint.Render(strings.Repeat("─", width))
	return rule + "\n" + p.Footer.Render(strings.Join(lines, "\n"))
}
