package state

// listChromeRows is the header, summary, status and footer lines around the
// file list.
const listChromeRows = 4

func (s *AppState) visibleLines() int {
	return s.ScreenHeight - listChromeRows
}

// VisibleLines is how many list rows fit on screen.
func (s *AppState) VisibleLines() int {
	if lines := s.visibleLines(); lines > 0 {
		return lines
	}
	return 0
}

func (s *AppState) clampScroll(visibleLines int) {
	maxOffset := len(s.Files) - visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
}

func (s *AppState) updateScrollVisibility() {
	idx := s.SelectedIndex
	visibleLines := s.visibleLines()

	if idx < 0 || visibleLines <= 0 {
		return
	}

	if idx < s.ScrollOffset {
		s.ScrollOffset = idx
	} else if idx >= s.ScrollOffset+visibleLines {
		s.ScrollOffset = idx - visibleLines + 1
	}
	s.clampScroll(visibleLines)
}

func (s *AppState) centerScrollOnSelection() {
	idx := s.SelectedIndex
	visibleLines := s.visibleLines()

	if idx < 0 || visibleLines <= 0 {
		return
	}

	s.ScrollOffset = idx - visibleLines/2
	s.clampScroll(visibleLines)
}
