package tui

import (
	"strings"
	"time"

	"github.com/verte-zerg/folio/internal/model"
	"github.com/verte-zerg/folio/internal/theme"
)

// RenderStatic composes the whole page once, fully revealed and without the
// interactive form, for output that is not a terminal.
func RenderStatic(p model.Portfolio, width int, dark bool, now time.Time) string {
	palette := theme.NewPalette()
	w := pageWidth(width)
	// renderAbout already falls back to plain text.
	about, _ := renderAbout(p.Profile, dark, w)
	page, _ := composePage(pageInput{
		portfolio: p,
		palette:   palette,
		dark:      dark,
		width:     width,
		typed:     -1,
		bars:      1,
		about:     about,
		form:      palette.Faint.Render("Run folio in a terminal or use `folio send` to write a message."),
		year:      now.Year(),
	})
	lines := strings.Split(page, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n") + "\n"
}
