package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const ellipsis = '…'

// widthCache memoizes terminal cell widths. The renderer only runs on the
// event loop goroutine, so no locking is needed.
type widthCache map[rune]int

func (c widthCache) cells(ru rune) int {
	if w, ok := c[ru]; ok {
		return w
	}
	w := runewidth.RuneWidth(ru)
	if w < 0 {
		w = 0
	}
	c[ru] = w
	return w
}

func (c widthCache) measure(text string) int {
	total := 0
	for _, ru := range text {
		total += c.cells(ru)
	}
	return total
}

// truncate shortens text to fit maxWidth cells, marking the cut with an
// ellipsis.
func (c widthCache) truncate(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if c.measure(text) <= maxWidth {
		return text
	}
	budget := maxWidth - max(c.cells(ellipsis), 1)
	if budget <= 0 {
		return string(ellipsis)
	}

	var b strings.Builder
	used := 0
	for _, ru := range text {
		w := c.cells(ru)
		if used+w > budget {
			break
		}
		b.WriteRune(ru)
		used += w
	}
	b.WriteRune(ellipsis)
	return b.String()
}

func (r *Renderer) runeCells(ru rune) int { return r.widths.cells(ru) }
func (r *Renderer) measureTextWidth(s string) int { return r.widths.measure(s) }
func (r *Renderer) truncateTextToWidth(s string, maxWidth int) string {
	return r.widths.truncate(s, maxWidth)
}

// drawTextLine writes text from startX, never past maxWidth cells, and
// returns the column after the last written cell. Zero-width runes are
// attached to the preceding cell as combining characters.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	limit := startX + maxWidth
	x := startX
	runes := []rune(text)
	for i := 0; i < len(runes) && x < limit; {
		base := runes[i]
		i++
		j := i
		for j < len(runes) && r.runeCells(runes[j]) == 0 {
			j++
		}
		var combining []rune
		if j > i {
			combining = runes[i:j]
		}
		i = j

		w := r.runeCells(base)
		if x+w > limit {
			break
		}
		r.screen.SetContent(x, y, base, combining, style)
		x += w
	}
	return x
}

// drawStyledStringClipped draws text rune by rune up to maxX, padding wide
// runes so the cells they cover carry the same style.
func (r *Renderer) drawStyledStringClipped(startX, y, maxX int, text string, style tcell.Style) int {
	x := startX
	for _, ru := range text {
		if x >= maxX {
			break
		}
		w := max(r.runeCells(ru), 1)
		r.screen.SetContent(x, y, ru, nil, style)
		for pad := 1; pad < w && x+pad < maxX; pad++ {
			r.screen.SetContent(x+pad, y, ' ', nil, style)
		}
		x += w
	}
	return x
}

func (r *Renderer) fillRow(startX, y, maxX int, style tcell.Style) {
	for x := startX; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// truncateLeft is truncate mirrored: the ellipsis replaces the start of
// text and the end survives.
func (c widthCache) truncateLeft(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if c.measure(text) <= maxWidth {
		return text
	}
	budget := maxWidth - max(c.cells(ellipsis), 1)
	if budget <= 0 {
		return string(ellipsis)
	}

	runes := []rune(text)
	start := len(runes)
	used := 0
	for start > 0 {
		w := c.cells(runes[start-1])
		if used+w > budget {
			break
		}
		start--
		used += w
	}
	return string(ellipsis) + string(runes[start:])
}
