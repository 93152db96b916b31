package editor

import "github.com/kobzarvs/me/internal/textutil"

// Row is one line of the display cache. Chars holds the raw bytes without
// the trailing newline; Render is Chars with tabs expanded to the next
// multiple of TabStop; Highlight carries one class per rendered byte.
type Row struct {
	Idx           int
	Chars         []byte
	Render        []byte
	Highlight     []Highlight
	HlOpenComment bool
}

func newRow(idx int, chars []byte) *Row {
	return &Row{Idx: idx, Chars: append([]byte(nil), chars...)}
}

// updateRow rebuilds Render from Chars and re-highlights the row (with
// forward propagation of the open-comment state).
func (e *Editor) updateRow(row *Row) {
	row.Render = expandTabs(row.Chars)
	e.highlightRowAndPropagate(row)
}

// expandTabs produces the rendered bytes: tabs become spaces up to the
// next TabStop multiple, UTF-8 sequences pass through untouched.
func expandTabs(chars []byte) []byte {
	render := make([]byte, 0, len(chars))
	for i := 0; i < len(chars); {
		if chars[i] == '\t' {
			render = append(render, ' ')
			for len(render)%TabStop != 0 {
				render = append(render, ' ')
			}
			i++
			continue
		}
		n := textutil.ByteLen(chars[i])
		for j := 0; j < n && i+j < len(chars); j++ {
			render = append(render, chars[i+j])
		}
		i += n
	}
	return render
}

// nextBoundary returns the byte index after the character at i.
func nextBoundary(chars []byte, i int) int {
	return textutil.Next(chars, i)
}

// prevBoundary returns the byte index of the character before i.
func prevBoundary(chars []byte, i int) int {
	return textutil.Prev(chars, i)
}

// cursorXToRenderX converts a byte column in Chars to a render column,
// accounting for tab expansion and wide characters.
func cursorXToRenderX(row *Row, cursorX int) int {
	renderX := 0
	for pos := 0; pos < len(row.Chars) && pos < cursorX; {
		if row.Chars[pos] == '\t' {
			renderX += (TabStop - 1) - (renderX % TabStop)
			renderX++
			pos++
			continue
		}
		renderX += textutil.Width(row.Chars[pos:])
		pos += textutil.ByteLen(row.Chars[pos])
	}
	return renderX
}

// renderXToCursorX converts a render column back to the byte column of the
// character covering it.
func renderXToCursorX(row *Row, renderX int) int {
	cur := 0
	for pos := 0; pos < len(row.Chars); {
		next := cur
		if row.Chars[pos] == '\t' {
			next += (TabStop - 1) - (cur % TabStop)
			next++
		} else {
			next += textutil.Width(row.Chars[pos:])
		}
		if next > renderX {
			return pos
		}
		cur = next
		if row.Chars[pos] == '\t' {
			pos++
		} else {
			pos += textutil.ByteLen(row.Chars[pos])
		}
	}
	return len(row.Chars)
}

// renderIndexToCursorX maps a byte offset within Render (as produced by a
// substring search) to the byte column in Chars.
func renderIndexToCursorX(row *Row, renderIndex int) int {
	ri := 0
	for pos := 0; pos < len(row.Chars); {
		if ri >= renderIndex {
			return pos
		}
		if row.Chars[pos] == '\t' {
			ri++
			for ri%TabStop != 0 {
				ri++
			}
			pos++
			continue
		}
		n := textutil.ByteLen(row.Chars[pos])
		ri += n
		pos += n
	}
	return len(row.Chars)
}

// insertRowAt places a new row at index at and renumbers the tail.
func (e *Editor) insertRowAt(at int, chars []byte) {
	if at < 0 || at > len(e.rows) {
		return
	}
	row := newRow(at, chars)
	e.rows = append(e.rows, nil)
	copy(e.rows[at+1:], e.rows[at:])
	e.rows[at] = row
	for i := at + 1; i < len(e.rows); i++ {
		e.rows[i].Idx = i
	}
	e.updateRow(row)
}

// removeRowAt deletes the row at index at and renumbers the tail.
func (e *Editor) removeRowAt(at int) {
	if at < 0 || at >= len(e.rows) {
		return
	}
	e.rows = append(e.rows[:at], e.rows[at+1:]...)
	for i := at; i < len(e.rows); i++ {
		e.rows[i].Idx = i
	}
}
