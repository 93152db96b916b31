package editor

import (
	"bytes"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/me/internal/history"
)

// insertWithUndo wraps a gap-buffer insert with exactly one history record.
func (e *Editor) insertWithUndo(pos int, text []byte) bool {
	if !e.gb.Insert(pos, text) {
		e.setStatus("Out of memory, insert failed")
		return false
	}
	e.hist.Push(history.Insert, pos, text)
	return true
}

// deleteWithUndo saves the doomed bytes, records them, then deletes.
func (e *Editor) deleteWithUndo(pos, n int) {
	if n > 0 && pos < e.gb.Len() {
		text := e.gb.Slice(pos, pos+n)
		if len(text) > 0 {
			e.hist.Push(history.Delete, pos, text)
		}
	}
	e.gb.Delete(pos, n)
}

// InsertByte feeds one input byte into the UTF-8 accumulator. Bytes are
// buffered until a full 1-4 byte sequence is complete, which is then
// committed as a single insert so undo operates on whole characters.
func (e *Editor) InsertByte(b byte) {
	if e.pendingLen == 0 {
		switch {
		case b <= 0x7F:
			e.pendingExpects = 1
		case b&0xE0 == 0xC0:
			e.pendingExpects = 2
		case b&0xF0 == 0xE0:
			e.pendingExpects = 3
		case b&0xF8 == 0xF0:
			e.pendingExpects = 4
		default:
			// Malformed lead byte: insert raw, width 1.
			e.insertSequence([]byte{b})
			return
		}
	}
	e.pending[e.pendingLen] = b
	e.pendingLen++
	if e.pendingLen < e.pendingExpects {
		return
	}
	seq := append([]byte(nil), e.pending[:e.pendingLen]...)
	e.pendingLen = 0
	e.pendingExpects = 0
	e.insertSequence(seq)
}

// InsertRune commits one character. Key sources that already decode UTF-8
// (the tcell screen) land here directly.
func (e *Editor) InsertRune(r rune) {
	var buf [4]byte
	n := utf8.EncodeRune(buf[:], r)
	e.insertSequence(buf[:n])
}

// clampToRows pulls a cursor parked on the virtual line past the last row
// back onto real text before an edit lands.
func (e *Editor) clampToRows() {
	if e.cy >= len(e.rows) {
		e.cy = len(e.rows) - 1
		e.cx = len(e.rows[e.cy].Chars)
	}
	if size := len(e.rows[e.cy].Chars); e.cx > size {
		e.cx = size
	}
}

// insertSequence inserts one complete character at the cursor, updating
// the current row in place.
func (e *Editor) insertSequence(seq []byte) {
	e.clampToRows()
	pos := e.positionFor(e.cy, e.cx)
	if !e.insertWithUndo(pos, seq) {
		return
	}
	row := e.rows[e.cy]
	chars := make([]byte, 0, len(row.Chars)+len(seq))
	chars = append(chars, row.Chars[:e.cx]...)
	chars = append(chars, seq...)
	chars = append(chars, row.Chars[e.cx:]...)
	row.Chars = chars
	e.updateRow(row)
	e.cx += len(seq)
}

// InsertNewline splits the current row at the cursor.
func (e *Editor) InsertNewline() {
	e.clampToRows()
	pos := e.positionFor(e.cy, e.cx)
	if !e.insertWithUndo(pos, []byte{'\n'}) {
		return
	}
	if e.cx == 0 {
		e.insertRowAt(e.cy, nil)
	} else {
		row := e.rows[e.cy]
		tail := append([]byte(nil), row.Chars[e.cx:]...)
		row.Chars = row.Chars[:e.cx]
		e.insertRowAt(e.cy+1, tail)
		e.updateRow(row)
	}
	e.cy++
	e.cx = 0
}

// DeleteChar implements backspace: remove the character before the cursor,
// or join with the previous line at column zero.
func (e *Editor) DeleteChar() {
	if e.cy == len(e.rows) {
		return
	}
	if e.cx == 0 && e.cy == 0 {
		return
	}
	row := e.rows[e.cy]
	pos := e.positionFor(e.cy, 0)

	if e.cx > 0 {
		prev := prevBoundary(row.Chars, e.cx)
		n := e.cx - prev
		e.deleteWithUndo(pos+prev, n)
		row.Chars = append(row.Chars[:prev], row.Chars[e.cx:]...)
		e.updateRow(row)
		e.cx = prev
		return
	}

	// Column zero: delete the previous line's newline and join.
	e.deleteWithUndo(pos-1, 1)
	prevRow := e.rows[e.cy-1]
	e.cx = len(prevRow.Chars)
	prevRow.Chars = append(prevRow.Chars, row.Chars...)
	e.removeRowAt(e.cy)
	e.updateRow(prevRow)
	e.cy--
}

// DeleteForward implements the DEL key: step right one character, then
// backspace.
func (e *Editor) DeleteForward() {
	e.moveCursor(tcell.KeyRight)
	e.DeleteChar()
}

// CopyLine replaces the paste buffer with the current line's bytes.
func (e *Editor) CopyLine() {
	if e.cy >= len(e.rows) {
		return
	}
	e.copyBuf = append(e.copyBuf[:0], e.rows[e.cy].Chars...)
	e.setStatus("Text copied")
}

// CutLine copies the current line then deletes it, including the trailing
// newline unless it is the last line.
func (e *Editor) CutLine() {
	if e.cy >= len(e.rows) {
		return
	}
	e.copyBuf = append(e.copyBuf[:0], e.rows[e.cy].Chars...)

	start := e.positionFor(e.cy, 0)
	n := len(e.rows[e.cy].Chars)
	if e.cy < len(e.rows)-1 {
		n++ // include the trailing newline
	} else if e.cy > 0 {
		// Last line: the preceding newline goes instead.
		start--
		n++
	}
	e.deleteWithUndo(start, n)

	if len(e.rows) > 1 {
		e.removeRowAt(e.cy)
		// The next row inherits the previous row's open-comment context.
		if e.cy < len(e.rows) {
			e.updateRow(e.rows[e.cy])
		}
	} else {
		e.rows[0].Chars = nil
		e.updateRow(e.rows[0])
	}
	if e.cy >= len(e.rows) {
		e.cy = len(e.rows) - 1
	}
	e.cx = 0
	e.setStatus("Text cut")
}

// Paste inserts the paste buffer at the cursor. Newlines in the buffer
// always create new rows; the cursor lands at the end of the pasted text.
func (e *Editor) Paste() {
	if len(e.copyBuf) == 0 {
		return
	}
	if e.cy >= len(e.rows) {
		e.cy = len(e.rows) - 1
		e.cx = len(e.rows[e.cy].Chars)
	}
	if size := len(e.rows[e.cy].Chars); e.cx > size {
		e.cx = size
	}
	startX, startY := e.cx, e.cy
	pos := e.positionFor(e.cy, e.cx)

	if !e.insertWithUndo(pos, e.copyBuf) {
		return
	}

	if i := bytes.IndexByte(e.copyBuf, '\n'); i >= 0 {
		lines := bytes.Count(e.copyBuf, []byte{'\n'})
		lastLen := len(e.copyBuf) - bytes.LastIndexByte(e.copyBuf, '\n') - 1
		e.syncRows()
		e.cy = startY + lines
		if e.cy >= len(e.rows) {
			e.cy = len(e.rows) - 1
		}
		e.cx = lastLen
		if size := len(e.rows[e.cy].Chars); e.cx > size {
			e.cx = size
		}
	} else {
		row := e.rows[e.cy]
		chars := make([]byte, 0, len(row.Chars)+len(e.copyBuf))
		chars = append(chars, row.Chars[:startX]...)
		chars = append(chars, e.copyBuf...)
		chars = append(chars, row.Chars[startX:]...)
		row.Chars = chars
		e.updateRow(row)
		e.cx = startX + len(e.copyBuf)
	}
	e.setStatus("Pasted %d bytes", len(e.copyBuf))
}

// KillToEnd cuts from the cursor to the end of the line. At end of line it
// deletes the newline, joining with the next row (an empty line is removed
// this way); at the end of the last row it cuts the whole line.
func (e *Editor) KillToEnd() {
	if e.cy >= len(e.rows) {
		return
	}
	row := e.rows[e.cy]
	switch {
	case e.cx < len(row.Chars):
		n := len(row.Chars) - e.cx
		e.copyBuf = append(e.copyBuf[:0], row.Chars[e.cx:]...)
		pos := e.positionFor(e.cy, e.cx)
		e.deleteWithUndo(pos, n)
		row.Chars = row.Chars[:e.cx]
		e.updateRow(row)
		e.setStatus("Cut to end of line")
	case e.cx == len(row.Chars) && e.cy < len(e.rows)-1:
		pos := e.positionFor(e.cy, len(row.Chars))
		e.deleteWithUndo(pos, 1)
		next := e.rows[e.cy+1]
		row.Chars = append(row.Chars, next.Chars...)
		e.removeRowAt(e.cy + 1)
		e.updateRow(row)
		e.setStatus("Lines joined")
	default:
		e.CutLine()
	}
}

// maybeUnindent backs out one tab before a closing brace, mirroring the
// auto-indent applied after an opening brace.
func (e *Editor) maybeUnindent() {
	if e.cy >= len(e.rows) {
		return
	}
	if e.cx == 0 && e.cy == 0 {
		return
	}
	row := e.rows[e.cy]
	if e.cx > 0 && e.cx <= len(row.Chars) && row.Chars[e.cx-1] == '\t' {
		e.DeleteChar()
	}
}

// insertIndent types the pending auto-indent tabs after a newline.
func (e *Editor) insertIndent() {
	for i := 0; i < e.indentLevel; i++ {
		e.InsertRune('\t')
	}
}
