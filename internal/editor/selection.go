package editor

import "bytes"

// normalized returns the selection corners ordered so that start comes
// before end in (row, col) order.
func (s Selection) normalized() (sx, sy, ex, ey int) {
	sx, sy, ex, ey = s.StartX, s.StartY, s.EndX, s.EndY
	if sy > ey || (sy == ey && sx > ex) {
		sx, ex = ex, sx
		sy, ey = ey, sy
	}
	return
}

// selectionContains reports whether byte column x of row y lies inside the
// half-open selected range.
func (e *Editor) selectionContains(x, y int) bool {
	if !e.selection.Active {
		return false
	}
	sx, sy, ex, ey := e.selection.normalized()
	if y < sy || y > ey {
		return false
	}
	switch {
	case sy == ey:
		return x >= sx && x < ex
	case y == sy:
		return x >= sx
	case y == ey:
		return x < ex
	default:
		return true
	}
}

// selectionText returns the selected bytes with a newline between rows,
// or nil when nothing is selected.
func (e *Editor) selectionText() []byte {
	if !e.selection.Active {
		return nil
	}
	sx, sy, ex, ey := e.selection.normalized()
	if sy >= len(e.rows) || ey >= len(e.rows) {
		return nil
	}

	clamp := func(x, size int) int {
		if x > size {
			return size
		}
		return x
	}

	var buf bytes.Buffer
	if sy == ey {
		row := e.rows[sy]
		from := clamp(sx, len(row.Chars))
		to := clamp(ex, len(row.Chars))
		if to > from {
			buf.Write(row.Chars[from:to])
		}
	} else {
		for y := sy; y <= ey; y++ {
			row := e.rows[y]
			switch y {
			case sy:
				from := clamp(sx, len(row.Chars))
				buf.Write(row.Chars[from:])
				buf.WriteByte('\n')
			case ey:
				to := clamp(ex, len(row.Chars))
				buf.Write(row.Chars[:to])
			default:
				buf.Write(row.Chars)
				buf.WriteByte('\n')
			}
		}
	}
	if buf.Len() == 0 {
		return nil
	}
	return buf.Bytes()
}

// SelectionCopy stashes the selected text in the paste buffer.
func (e *Editor) SelectionCopy() {
	if !e.selection.Active {
		e.setStatus("No selection to copy")
		return
	}
	if text := e.selectionText(); text != nil {
		e.copyBuf = text
		e.setStatus("Selection copied (%d bytes)", len(text))
	}
}

// SelectionDelete removes the selected byte range as a single edit, puts
// the cursor at the selection start and leaves select mode.
func (e *Editor) SelectionDelete() {
	if !e.selection.Active {
		return
	}
	sx, sy, ex, ey := e.selection.normalized()
	start := e.positionFor(sy, sx)
	end := e.positionFor(ey, ex)
	if end > start {
		e.deleteWithUndo(start, end-start)
		e.syncRows()
		e.cy, e.cx = sy, sx
		if e.cy >= len(e.rows) {
			e.cy = len(e.rows) - 1
		}
		if size := len(e.rows[e.cy].Chars); e.cx > size {
			e.cx = size
		}
	}
	e.selection.Active = false
	e.setMode(ModeNormal)
}

// SelectionCut copies then deletes.
func (e *Editor) SelectionCut() {
	if !e.selection.Active {
		e.setStatus("No selection to cut")
		return
	}
	e.SelectionCopy()
	e.SelectionDelete()
	e.setStatus("Selection cut")
}
