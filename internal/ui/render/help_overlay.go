package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rctx/internal/state"
	textutil "github.com/kk-code-lab/rctx/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	hiddenDesc := "Show hidden files"
	if state != nil && state.ShowHidden {
		hiddenDesc = "Hide hidden files"
	}
	ignoredDesc := "Show gitignored files"
	if state != nil && state.ShowIgnored {
		ignoredDesc = "Hide gitignored files"
	}

	navigation := []helpOverlayEntry{
		{keys: "↑/↓", desc: "Move selection"},
		{keys: "→ or ↵", desc: "Enter directory"},
		{keys: "← or ⌫", desc: "Parent directory"},
		{keys: "PgUp/PgDn", desc: "Page up/down"},
		{keys: "Home/End", desc: "First/last entry"},
		{keys: "~", desc: "Return to start directory"},
	}
	view := []helpOverlayEntry{
		{keys: "h", desc: hiddenDesc},
	}
	if state != nil && state.InRepository() {
		navigation = append(navigation, helpOverlayEntry{keys: "G", desc: "Jump to git repository root"})
		view = append(view, helpOverlayEntry{keys: "g", desc: ignoredDesc})
	}

	export := []helpOverlayEntry{
		{keys: "S", desc: "Save collection as Markdown"},
		{keys: "t", desc: "Save directory tree"},
	}
	if state == nil || state.ClipboardAvailable {
		export = append(export,
			helpOverlayEntry{keys: "C", desc: "Copy collection to clipboard"},
			helpOverlayEntry{keys: "c", desc: "Copy directory tree to clipboard"},
		)
	}

	sections := []helpOverlaySection{
		{title: "Navigation", entries: navigation},
		{title: "View", entries: view},
		{
			title: "Collection",
			entries: []helpOverlayEntry{
				{keys: "a", desc: "Add selected file"},
				{keys: "A", desc: "Add all files in this directory"},
				{keys: "d", desc: "Remove selected file"},
				{keys: "D", desc: "Clear collection"},
				{keys: "r", desc: "Refresh collected files from disk"},
			},
		},
		{title: "Export", entries: export},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q / Esc", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 40)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(0, y, w, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	lines := buildHelpOverlayLines(state)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 1 {
		footer := r.truncateTextToWidth(buildFooterHelpText(state), w)
		r.drawTextLine(0, h-1, w, footer, headerStyle)
	}
}
