package editor

import (
	"testing"

	"github.com/kobzarvs/me/internal/textutil"
)

func TestCursorXToRenderXTabs(t *testing.T) {
	row := newRow(0, []byte("a\tb"))
	row.Render = expandTabs(row.Chars)
	cases := []struct{ cx, want int }{
		{0, 0},
		{1, 1},
		{2, 4},
		{3, 5},
	}
	for _, c := range cases {
		if got := cursorXToRenderX(row, c.cx); got != c.want {
			t.Fatalf("cursorXToRenderX(%d) = %d, want %d", c.cx, got, c.want)
		}
	}
}

func TestCursorXToRenderXWide(t *testing.T) {
	row := newRow(0, []byte("中a"))
	row.Render = expandTabs(row.Chars)
	if got := cursorXToRenderX(row, 3); got != 2 {
		t.Fatalf("after wide char = %d, want 2", got)
	}
	if got := cursorXToRenderX(row, 4); got != 3 {
		t.Fatalf("after ascii = %d, want 3", got)
	}
}

func TestRenderXToCursorXRoundTrip(t *testing.T) {
	row := newRow(0, []byte("a\t中b"))
	row.Render = expandTabs(row.Chars)
	for cx := 0; cx <= len(row.Chars); cx = nextBoundary(row.Chars, cx) {
		rx := cursorXToRenderX(row, cx)
		if got := renderXToCursorX(row, rx); got != cx {
			t.Fatalf("round trip cx=%d rx=%d got=%d", cx, rx, got)
		}
		if cx == len(row.Chars) {
			break
		}
	}
}

func TestRenderIndexToCursorX(t *testing.T) {
	row := newRow(0, []byte("a\tbé"))
	row.Render = expandTabs(row.Chars)
	// Render: "a   bé" — byte offsets: a=0, spaces 1-3, b=4, é=5.
	cases := []struct{ ri, want int }{
		{0, 0},
		{1, 1}, // the first cell of the tab run maps to the tab itself
		{4, 2},
		{5, 3},
	}
	for _, c := range cases {
		if got := renderIndexToCursorX(row, c.ri); got != c.want {
			t.Fatalf("renderIndexToCursorX(%d) = %d, want %d", c.ri, got, c.want)
		}
	}
}

func TestWidthLawPerRow(t *testing.T) {
	// Sum of character widths plus tab padding equals the render size in
	// columns; for pure ASCII render bytes the two coincide.
	row := newRow(0, []byte("ab\tcd"))
	row.Render = expandTabs(row.Chars)
	cols := 0
	for i := 0; i < len(row.Render); {
		n := textutil.ByteLen(row.Render[i])
		w := textutil.Width(row.Render[i:])
		if w == 0 {
			w = 1
		}
		cols += w
		i += n
	}
	if cols != len(row.Render) {
		t.Fatalf("columns %d != render size %d", cols, len(row.Render))
	}
}

func TestInsertRemoveRowRenumbers(t *testing.T) {
	e := newTestEditor("a", "b", "c")
	e.insertRowAt(1, []byte("x"))
	for i, row := range e.rows {
		if row.Idx != i {
			t.Fatalf("row %d idx = %d", i, row.Idx)
		}
	}
	if e.rowText(1) != "x" {
		t.Fatalf("row 1 = %q", e.rowText(1))
	}
	e.removeRowAt(1)
	for i, row := range e.rows {
		if row.Idx != i {
			t.Fatalf("after remove: row %d idx = %d", i, row.Idx)
		}
	}
}
