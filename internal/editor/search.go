package editor

import (
	"bytes"

	"github.com/gdamore/tcell/v2"
)

// searchState is the SEARCH mode's local state. savedHl keeps the
// overlaid row's original highlight bytes so the MATCH overlay can be
// undone before the next step; the saved cursor restores the view when
// the search is cancelled.
type searchState struct {
	query       []byte
	lastMatch   int
	direction   int
	total       int
	current     int
	savedHl     []Highlight
	savedHlLine int
	savedCx     int
	savedCy     int
	savedRowOff int
	savedColOff int
}

// StartSearch enters SEARCH mode.
func (e *Editor) StartSearch() {
	e.setMode(ModeSearch)
	e.showSearchMessage()
}

func (e *Editor) showSearchMessage() {
	if e.search.total > 0 && len(e.search.query) > 0 {
		e.setStickyStatus("Search: %s [%d/%d] (arrows: navigate, Enter: exit, ESC: cancel)",
			e.search.query, e.search.current, e.search.total)
	} else {
		e.setStickyStatus("Search: %s (arrows: navigate, Enter: exit, ESC: cancel)",
			e.search.query)
	}
}

// restoreMatchOverlay puts back the highlight bytes saved before the MATCH
// overlay was painted.
func (e *Editor) restoreMatchOverlay() {
	s := &e.search
	if s.savedHl != nil && s.savedHlLine >= 0 && s.savedHlLine < len(e.rows) {
		row := e.rows[s.savedHlLine]
		if len(row.Highlight) == len(s.savedHl) {
			copy(row.Highlight, s.savedHl)
		}
	}
	s.savedHl = nil
	s.savedHlLine = -1
}

// countMatches recounts query occurrences across all rows for the [k/n]
// display, counting every hit including overlapping ones. Stepping visits
// only the first hit of each row, so rows with several hits make the total
// larger than the number of steps in one cycle.
func (e *Editor) countMatches() {
	s := &e.search
	s.total = 0
	s.current = 0
	if len(s.query) == 0 {
		return
	}
	for _, row := range e.rows {
		for off := 0; ; {
			i := bytes.Index(row.Render[off:], s.query)
			if i < 0 {
				break
			}
			s.total++
			off += i + 1
		}
	}
}

// searchStep runs one incremental search step for the given key: arrows
// pick the direction, anything else restarts from the top with the
// current query. Rows are scanned with wrap-around from the last match.
func (e *Editor) searchStep(key tcell.Key) {
	s := &e.search

	e.restoreMatchOverlay()

	switch key {
	case tcell.KeyEnter, tcell.KeyEscape:
		s.lastMatch = -1
		s.direction = 1
		s.total = 0
		s.current = 0
		return
	case tcell.KeyRight, tcell.KeyDown:
		s.direction = 1
	case tcell.KeyLeft, tcell.KeyUp:
		if s.lastMatch == -1 {
			return
		}
		s.direction = -1
	default:
		s.lastMatch = -1
		s.direction = 1
		e.countMatches()
	}

	if len(s.query) == 0 {
		return
	}

	current := s.lastMatch
	for range e.rows {
		current += s.direction
		if current == -1 {
			current = len(e.rows) - 1
		} else if current == len(e.rows) {
			current = 0
		}
		row := e.rows[current]
		match := bytes.Index(row.Render, s.query)
		if match < 0 {
			continue
		}
		s.lastMatch = current
		e.cy = current
		e.cx = renderIndexToCursorX(row, match)
		// Force the scroll clamp to bring the hit to the top of the view.
		e.rowOffset = len(e.rows)

		s.savedHlLine = current
		s.savedHl = append([]Highlight(nil), row.Highlight...)
		for j := 0; j < len(s.query) && match+j < len(row.Highlight); j++ {
			row.Highlight[match+j] = HLMatch
		}

		if s.total > 0 {
			if s.direction == 1 {
				s.current = s.current%s.total + 1
			} else if s.current-1 > 0 {
				s.current--
			} else {
				s.current = s.total
			}
		}
		break
	}
}

// finishSearch leaves SEARCH mode. A cancelled search restores the cursor
// and viewport saved at entry.
func (e *Editor) finishSearch(cancelled bool) {
	s := &e.search
	e.restoreMatchOverlay()
	if cancelled {
		e.cx, e.cy = s.savedCx, s.savedCy
		e.rowOffset, e.colOffset = s.savedRowOff, s.savedColOff
	}
	e.setMode(ModeNormal)
}
