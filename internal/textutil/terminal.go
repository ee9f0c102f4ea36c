// Package textutil prepares user-controlled text (file names, messages) for
// drawing on a terminal.
package textutil

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// SanitizeTerminalText makes text safe to draw on one terminal row. Control
// characters become '?', line breaks and tabs become spaces, and invisible
// format runes (bidi overrides, zero-width joiners) are spelled out as
// ⟪U+XXXX⟫ so a name cannot disguise itself.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, needsSanitizing) < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		case unicode.Is(unicode.Cf, r):
			fmt.Fprintf(&b, "⟪U+%04X⟫", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsSanitizing(r rune) bool {
	return r < 0x20 || r == 0x7f || unicode.Is(unicode.Cf, r)
}

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w <= 0 {
			w = 1
		}
		width += w
	}
	return width
}

// WrapLines splits text on newlines and wraps each line at word boundaries
// so no line is wider than width columns. Words longer than width are cut.
// Each returned line is sanitized.
func WrapLines(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := SanitizeTerminalText(raw)
		if line == "" {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range strings.Fields(line) {
			for DisplayWidth(word) > width {
				if current != "" {
					lines = append(lines, current)
					current = ""
				}
				head, tail := splitAtWidth(word, width)
				lines = append(lines, head)
				word = tail
			}
			switch {
			case current == "":
				current = word
			case DisplayWidth(current)+1+DisplayWidth(word) <= width:
				current += " " + word
			default:
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

func splitAtWidth(word string, width int) (string, string) {
	used := 0
	for i, r := range word {
		w := runewidth.RuneWidth(r)
		if w <= 0 {
			w = 1
		}
		if used+w > width {
			if i == 0 {
				// A single rune wider than the line still has to go somewhere.
				size := len(string(r))
				return word[:size], word[size:]
			}
			return word[:i], word[i:]
		}
		used += w
	}
	return word, ""
}
