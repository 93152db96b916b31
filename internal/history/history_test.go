package history

import (
	"fmt"
	"testing"

	"github.com/kobzarvs/me/internal/textbuf"
)

func TestUndoRedoInsert(t *testing.T) {
	gb := textbuf.New(16)
	st := New(0)
	gb.Insert(0, []byte("hi"))
	st.Push(Insert, 0, []byte("hi"))

	if !st.Undo(gb) {
		t.Fatalf("undo failed")
	}
	if got := string(gb.Bytes()); got != "" {
		t.Fatalf("after undo = %q", got)
	}
	if gb.Modified() {
		t.Fatalf("modified = true with empty history behind cursor")
	}
	if !st.Redo(gb) {
		t.Fatalf("redo failed")
	}
	if got := string(gb.Bytes()); got != "hi" {
		t.Fatalf("after redo = %q", got)
	}
}

func TestUndoDelete(t *testing.T) {
	gb := textbuf.New(16)
	st := New(0)
	gb.Insert(0, []byte("abcdef"))
	st.Push(Insert, 0, []byte("abcdef"))
	gb.Delete(2, 3)
	st.Push(Delete, 2, []byte("cde"))

	st.Undo(gb)
	if got := string(gb.Bytes()); got != "abcdef" {
		t.Fatalf("after undo = %q", got)
	}
	if !gb.Modified() {
		t.Fatalf("modified = false, record still behind cursor")
	}
	st.Redo(gb)
	if got := string(gb.Bytes()); got != "abf" {
		t.Fatalf("after redo = %q", got)
	}
}

func TestPushClearsRedo(t *testing.T) {
	gb := textbuf.New(16)
	st := New(0)
	gb.Insert(0, []byte("a"))
	st.Push(Insert, 0, []byte("a"))
	gb.Insert(1, []byte("b"))
	st.Push(Insert, 1, []byte("b"))

	st.Undo(gb) // text "a"
	gb.Insert(1, []byte("c"))
	st.Push(Insert, 1, []byte("c"))

	if st.CanRedo() {
		t.Fatalf("redo queue survived push")
	}
	if st.Len() != 2 {
		t.Fatalf("len = %d, want 2", st.Len())
	}
	st.Undo(gb)
	st.Undo(gb)
	if got := string(gb.Bytes()); got != "" {
		t.Fatalf("after full undo = %q", got)
	}
	if st.Undo(gb) {
		t.Fatalf("undo past the head succeeded")
	}
}

func TestRedoFromFullyUndone(t *testing.T) {
	gb := textbuf.New(16)
	st := New(0)
	gb.Insert(0, []byte("x"))
	st.Push(Insert, 0, []byte("x"))
	st.Undo(gb)
	if st.current != nil {
		t.Fatalf("cursor not nil after full undo")
	}
	if !st.Redo(gb) {
		t.Fatalf("redo from head failed")
	}
	if got := string(gb.Bytes()); got != "x" {
		t.Fatalf("after redo = %q", got)
	}
	if st.Redo(gb) {
		t.Fatalf("redo past the tail succeeded")
	}
}

func TestEvictionKeepsBound(t *testing.T) {
	gb := textbuf.New(256)
	st := New(MaxLevels)
	for i := 0; i < 101; i++ {
		b := []byte{byte('a' + i%26)}
		gb.Insert(gb.Len(), b)
		st.Push(Insert, i, b)
	}
	if st.Len() != MaxLevels {
		t.Fatalf("len = %d, want %d", st.Len(), MaxLevels)
	}
	// 100 undos apply, the 101st finds an evicted record.
	undone := 0
	for st.Undo(gb) {
		undone++
	}
	if undone != MaxLevels {
		t.Fatalf("undone = %d, want %d", undone, MaxLevels)
	}
}

func TestHundredAndOneEditsScenario(t *testing.T) {
	// With a bound above the edit count, every edit undoes back to empty
	// and the next undo reports nothing to undo.
	gb := textbuf.New(256)
	st := New(200)
	for i := 0; i < 101; i++ {
		b := []byte(fmt.Sprintf("%c", 'a'+i%26))
		gb.Insert(gb.Len(), b)
		st.Push(Insert, i, b)
	}
	for i := 0; i < 101; i++ {
		if !st.Undo(gb) {
			t.Fatalf("undo %d failed", i+1)
		}
	}
	if got := string(gb.Bytes()); got != "" {
		t.Fatalf("buffer not empty: %q", got)
	}
	if st.Undo(gb) {
		t.Fatalf("102nd undo succeeded")
	}
}

func TestClear(t *testing.T) {
	gb := textbuf.New(16)
	st := New(0)
	gb.Insert(0, []byte("a"))
	st.Push(Insert, 0, []byte("a"))
	st.Clear()
	if st.Len() != 0 || st.CanUndo() || st.CanRedo() {
		t.Fatalf("clear left state behind")
	}
}
