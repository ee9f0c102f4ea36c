package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rctx/internal/collection"
	statepkg "github.com/kk-code-lab/rctx/internal/state"
	textutil "github.com/kk-code-lab/rctx/internal/textutil"
)

const (
	headerRow  = 0
	summaryRow = 1
	listTopRow = 2
	// Rows below the list: status path and footer.
	listBottomRows = 2

	messageMaxWidth = 60
)

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
	widths widthCache
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		widths: make(widthCache),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	if state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.drawMessage(state, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	if h > summaryRow {
		r.drawSummary(state, w)
	}
	r.drawFileList(state, w, h)
	r.drawStatusLine(state, w, h)
	r.drawMessage(state, w, h)

	r.screen.Show()
}

// ListRowToIndex maps a screen row to a file index, or -1 when the row is
// outside the file list.
func ListRowToIndex(state *statepkg.AppState, y, h int) int {
	if y < listTopRow || y >= h-listBottomRows {
		return -1
	}
	idx := state.ScrollOffset + (y - listTopRow)
	if idx < 0 || idx >= len(state.Files) {
		return -1
	}
	return idx
}

// drawHeader renders the top bar with title and breadcrumb
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerText := "rctx"
	headerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	endX := r.drawTextLine(0, headerRow, w, headerText, headerStyle)
	if endX < w {
		r.screen.SetContent(endX, headerRow, ' ', nil, headerStyle)
		endX++
	}

	crumbs := state.Breadcrumbs()
	if endX < w && len(crumbs) > 0 {
		names := make([]string, len(crumbs))
		for i, c := range crumbs {
			names[i] = textutil.SanitizeTerminalText(c.Name)
		}
		lastIdx := len(names) - 1
		if lastIdx > 0 {
			prefix := strings.Join(names[:lastIdx], " › ") + " › "
			// Keep room for the current directory name.
			room := w - endX - r.measureTextWidth(names[lastIdx])
			if room > 0 {
				prefix = r.fitBreadcrumb(prefix, room)
				endX = r.drawTextLine(endX, headerRow, w-endX, prefix, headerStyle)
			}
		}
		if endX < w {
			last := r.truncateTextToWidth(names[lastIdx], w-endX)
			endX = r.drawTextLine(endX, headerRow, w-endX, last, headerStyle.Bold(true))
		}
	}

	r.fillRow(endX, headerRow, w, headerStyle)
}

// fitBreadcrumb keeps the tail of path, which names the current directory.
func (r *Renderer) fitBreadcrumb(path string, width int) string {
	return r.widths.truncateLeft(path, width)
}

type summarySegment struct {
	text  string
	style tcell.Style
}

func (r *Renderer) summarySegments(state *statepkg.AppState) []summarySegment {
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	label := base.Dim(true)
	on := base.Foreground(r.theme.OnFg)
	off := base.Foreground(r.theme.OffFg)

	segments := []summarySegment{
		{text: fmt.Sprintf(" Files [%d]", len(state.Files)), style: base.Bold(true)},
	}

	if state.InRepository() {
		segments = append(segments,
			summarySegment{text: "  git: ", style: label},
			summarySegment{text: textutil.SanitizeTerminalText(filepath.Base(state.RepoRoot)), style: base.Foreground(r.theme.RepoFg)},
		)
	}

	if count := state.CollectionCount(); count > 0 {
		text := fmt.Sprintf("  Collection: %d files (%s)", count, collection.FormatSize(state.CollectionSize()))
		segments = append(segments, summarySegment{text: text, style: base.Foreground(r.theme.SummaryFg)})
	}

	segments = append(segments, summarySegment{text: "  hidden:", style: label})
	if state.ShowHidden {
		segments = append(segments, summarySegment{text: "ON", style: on})
	} else {
		segments = append(segments, summarySegment{text: "OFF", style: off})
	}

	if state.InRepository() {
		segments = append(segments, summarySegment{text: "  gitignored:", style: label})
		if state.ShowIgnored {
			segments = append(segments, summarySegment{text: "SHOW", style: on})
		} else {
			segments = append(segments, summarySegment{text: "HIDE", style: off})
		}
	}

	return segments
}

// drawSummary renders the line with listing size, repository and collection totals.
func (r *Renderer) drawSummary(state *statepkg.AppState, w int) {
	x := 0
	for _, seg := range r.summarySegments(state) {
		if x >= w {
			break
		}
		x = r.drawStyledStringClipped(x, summaryRow, w, seg.text, seg.style)
	}
	r.fillRow(x, summaryRow, w, tcell.StyleDefault.Background(r.theme.Background))
}

func (r *Renderer) drawFileList(state *statepkg.AppState, w, h int) {
	baseBgStyle := tcell.StyleDefault.Background(r.theme.Background)
	bottomLimit := h - listBottomRows
	if bottomLimit <= listTopRow {
		return
	}

	if len(state.Files) == 0 {
		placeholder := r.truncateTextToWidth("   (empty)", w)
		endX := r.drawTextLine(0, listTopRow, w, placeholder, baseBgStyle.Foreground(r.theme.HiddenFg))
		r.fillRow(endX, listTopRow, w, baseBgStyle)
		return
	}

	visibleLines := bottomLimit - listTopRow
	endIndex := state.ScrollOffset + visibleLines
	if endIndex > len(state.Files) {
		endIndex = len(state.Files)
	}

	displayY := listTopRow
	for idx := state.ScrollOffset; idx < endIndex; idx++ {
		f := state.Files[idx]
		isSelected := idx == state.SelectedIndex
		isCollected := state.IsCollected(f)

		var rowStyle tcell.Style
		switch {
		case isSelected:
			rowStyle = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg).Bold(true)
		case f.IsSymlink:
			rowStyle = baseBgStyle.Foreground(r.theme.SymlinkFg)
		case f.IsDir:
			rowStyle = baseBgStyle.Foreground(r.theme.DirectoryFg)
		case isCollected:
			rowStyle = baseBgStyle.Foreground(r.theme.CollectedFg)
		default:
			rowStyle = baseBgStyle.Foreground(r.theme.FileFg)
		}
		if f.Hidden && !isSelected {
			rowStyle = rowStyle.Foreground(r.theme.HiddenFg)
		}

		prefix := fmt.Sprintf("%s%s ", collectedMarker(isCollected), entryIcon(f))
		nameWidth := w - r.measureTextWidth(prefix)
		displayName := ""
		if nameWidth > 0 {
			displayName = r.truncateTextToWidth(textutil.SanitizeTerminalText(f.Name), nameWidth)
		}

		endX := r.drawTextLine(0, displayY, w, prefix+displayName, rowStyle)
		r.fillRow(endX, displayY, w, rowStyle)
		displayY++
	}

	for y := displayY; y < bottomLimit; y++ {
		r.fillRow(0, y, w, baseBgStyle)
	}
}

func collectedMarker(collected bool) string {
	if collected {
		return " +"
	}
	return "  "
}

// entryIcon: @ for symlinks, / for directories, space for files
func entryIcon(f statepkg.FileEntry) string {
	switch {
	case f.IsSymlink:
		return "@"
	case f.IsDir:
		return "/"
	default:
		return " "
	}
}

// drawStatusLine renders the selected path and the footer hint line.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	pathY := h - 2
	if pathY > summaryRow {
		pathText := textutil.SanitizeTerminalText(state.CurrentFilePath())
		pathText = r.fitBreadcrumb(pathText, w)
		endX := r.drawTextLine(0, pathY, w, pathText, normalStyle.Dim(true))
		r.fillRow(endX, pathY, w, normalStyle)
	}

	helpY := h - 1
	if helpY <= headerRow {
		return
	}
	helpText := textutil.SanitizeTerminalText(buildFooterHelpText(state))
	helpText = r.truncateTextToWidth(helpText, w)
	endX := r.drawTextLine(0, helpY, w, helpText, normalStyle)
	r.fillRow(endX, helpY, w, normalStyle)
}

// drawMessage overlays the active notice as a centered box.
func (r *Renderer) drawMessage(state *statepkg.AppState, w, h int) {
	msg := state.Message
	if msg == nil || w < 6 || h < 3 {
		return
	}

	title := " Success "
	style := tcell.StyleDefault.Background(r.theme.SuccessBg).Foreground(r.theme.SuccessFg)
	if msg.Kind == statepkg.MessageError {
		title = " Notice "
		style = tcell.StyleDefault.Background(r.theme.ErrorBg).Foreground(r.theme.ErrorFg)
	}

	innerWidth := messageMaxWidth
	if innerWidth > w-4 {
		innerWidth = w - 4
	}
	lines := textutil.WrapLines(textutil.SanitizeTerminalText(msg.Text), innerWidth)
	if len(lines) == 0 {
		lines = []string{""}
	}
	if maxLines := h - 2; len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	contentWidth := r.measureTextWidth(title)
	for _, line := range lines {
		if lw := r.measureTextWidth(line); lw > contentWidth {
			contentWidth = lw
		}
	}
	if contentWidth > innerWidth {
		contentWidth = innerWidth
	}

	boxWidth := contentWidth + 4
	boxHeight := len(lines) + 2
	left := (w - boxWidth) / 2
	top := (h - boxHeight) / 2
	if top < 0 {
		top = 0
	}

	for y := top; y < top+boxHeight && y < h; y++ {
		r.fillRow(left, y, left+boxWidth, style)
	}
	titleX := left + (boxWidth-r.measureTextWidth(title))/2
	r.drawTextLine(titleX, top, boxWidth, title, style.Bold(true))

	for i, line := range lines {
		lineX := left + 2 + (contentWidth-r.measureTextWidth(line))/2
		r.drawTextLine(lineX, top+1+i, contentWidth, line, style)
	}
}
