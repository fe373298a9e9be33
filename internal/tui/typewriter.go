package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const cursorGlyph = "_"

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildRevealRunes styles the first shown runes of target. Runes not yet
// revealed are blanked to their display width so the layout does not move
// while typing; the first of them carries the cursor. shown < 0 reveals all.
func buildRevealRunes(target []rune, shown int, style, cursor lipgloss.Style) []styledRune {
	if shown < 0 || shown > len(target) {
		shown = len(target)
	}
	out := make([]styledRune, 0, len(target))
	for i, r := range target {
		w := runewidth.RuneWidth(r)
		item := styledRune{width: w, isSpace: r == ' '}
		switch {
		case i < shown:
			item.s = style.Render(string(r))
		case i == shown:
			item.s = cursor.Render(cursorGlyph) + strings.Repeat(" ", maxInt(w-1, 0))
			item.width = maxInt(w, 1)
		default:
			item.s = strings.Repeat(" ", w)
		}
		out = append(out, item)
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
