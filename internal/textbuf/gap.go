// Package textbuf implements the gap buffer that backs the edited text.
// The buffer is a single byte slice split by a gap; local edits move the
// gap to the caret and then cost O(1) until the gap drains.
package textbuf

import "io"

const (
	// InitialSize is the default allocation for an empty buffer.
	InitialSize = 64 * 1024
	// GrowChunk is the headroom added whenever the gap must grow.
	GrowChunk = 4096

	loadChunk = 4096
)

// GapBuffer stores text as [0:gap) ++ [egap:len(buf)). Logical positions
// address the concatenation of the two halves.
type GapBuffer struct {
	buf      []byte
	gap      int // start of gap
	egap     int // end of gap
	modified bool
}

// New returns an empty buffer with the given initial capacity.
func New(capacity int) *GapBuffer {
	if capacity <= 0 {
		capacity = InitialSize
	}
	return &GapBuffer{
		buf:  make([]byte, capacity),
		gap:  0,
		egap: capacity,
	}
}

// Len returns the logical text length, excluding the gap.
func (gb *GapBuffer) Len() int {
	return gb.gap + (len(gb.buf) - gb.egap)
}

// Modified reports whether the buffer changed since the last load/save.
func (gb *GapBuffer) Modified() bool { return gb.modified }

// SetModified overrides the modified flag; Save and Undo use it.
func (gb *GapBuffer) SetModified(m bool) { gb.modified = m }

// index maps a logical position to an index into buf. The boundary
// position gb.gap maps to egap so reads never land inside the gap.
func (gb *GapBuffer) index(pos int) int {
	if pos < gb.gap {
		return pos
	}
	return gb.egap + (pos - gb.gap)
}

// CharAt returns the byte at pos, or -1 when pos is out of range.
func (gb *GapBuffer) CharAt(pos int) int {
	if pos < 0 || pos >= gb.Len() {
		return -1
	}
	return int(gb.buf[gb.index(pos)])
}

// move places the gap start at pos, shifting the shorter side.
func (gb *GapBuffer) move(pos int) {
	dest := gb.index(pos)
	if dest < gb.gap {
		n := gb.gap - dest
		copy(gb.buf[gb.egap-n:gb.egap], gb.buf[dest:gb.gap])
		gb.gap -= n
		gb.egap -= n
	} else if dest > gb.egap {
		n := dest - gb.egap
		copy(gb.buf[gb.gap:], gb.buf[gb.egap:gb.egap+n])
		gb.gap += n
		gb.egap += n
	}
}

// grow ensures the gap holds at least min bytes. Returns false when the
// allocation fails (recovered so the caller can keep the buffer intact).
func (gb *GapBuffer) grow(min int) (ok bool) {
	if gb.egap-gb.gap >= min {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	newSize := gb.Len() + min + GrowChunk
	nbuf := make([]byte, newSize)
	copy(nbuf, gb.buf[:gb.gap])
	tail := len(gb.buf) - gb.egap
	copy(nbuf[newSize-tail:], gb.buf[gb.egap:])
	gb.buf = nbuf
	gb.egap = newSize - tail
	return true
}

// Insert places text at pos. Returns false if the buffer could not grow;
// the text is unchanged in that case.
func (gb *GapBuffer) Insert(pos int, text []byte) bool {
	gb.move(pos)
	if !gb.grow(len(text)) {
		return false
	}
	copy(gb.buf[gb.gap:], text)
	gb.gap += len(text)
	gb.modified = true
	return true
}

// Delete removes up to n bytes starting at pos.
func (gb *GapBuffer) Delete(pos, n int) {
	gb.move(pos)
	if avail := len(gb.buf) - gb.egap; n > avail {
		n = avail
	}
	if n < 0 {
		n = 0
	}
	gb.egap += n
	gb.modified = true
}

// Load clears the buffer and reads r to the end in fixed-size chunks.
// The modified flag is cleared on success.
func (gb *GapBuffer) Load(r io.Reader) error {
	gb.gap = 0
	gb.egap = len(gb.buf)
	chunk := make([]byte, loadChunk)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if !gb.Insert(gb.Len(), chunk[:n]) {
				return io.ErrShortWrite
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	gb.modified = false
	return nil
}

// Bytes returns a copy of the logical text.
func (gb *GapBuffer) Bytes() []byte {
	out := make([]byte, gb.Len())
	copy(out, gb.buf[:gb.gap])
	copy(out[gb.gap:], gb.buf[gb.egap:])
	return out
}

// Slice returns a copy of the logical range [from, to).
func (gb *GapBuffer) Slice(from, to int) []byte {
	if from < 0 {
		from = 0
	}
	if to > gb.Len() {
		to = gb.Len()
	}
	if from >= to {
		return nil
	}
	out := make([]byte, 0, to-from)
	for pos := from; pos < to; pos++ {
		out = append(out, gb.buf[gb.index(pos)])
	}
	return out
}
