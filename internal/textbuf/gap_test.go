package textbuf

import (
	"bytes"
	"strings"
	"testing"
)

func TestInsertDelete(t *testing.T) {
	gb := New(16)
	if !gb.Insert(0, []byte("hello")) {
		t.Fatalf("insert failed")
	}
	if got := string(gb.Bytes()); got != "hello" {
		t.Fatalf("text = %q", got)
	}
	if !gb.Insert(5, []byte(" world")) {
		t.Fatalf("insert failed")
	}
	if got := string(gb.Bytes()); got != "hello world" {
		t.Fatalf("text = %q", got)
	}
	gb.Delete(5, 6)
	if got := string(gb.Bytes()); got != "hello" {
		t.Fatalf("after delete = %q", got)
	}
	if !gb.Modified() {
		t.Fatalf("modified = false after edits")
	}
}

func TestInsertMiddleMovesGap(t *testing.T) {
	gb := New(8)
	gb.Insert(0, []byte("abcdef"))
	gb.Insert(3, []byte("XYZ"))
	if got := string(gb.Bytes()); got != "abcXYZdef" {
		t.Fatalf("text = %q", got)
	}
	// Edit far behind the gap to force a backward move.
	gb.Insert(1, []byte("-"))
	if got := string(gb.Bytes()); got != "a-bcXYZdef" {
		t.Fatalf("text = %q", got)
	}
}

func TestCharAt(t *testing.T) {
	gb := New(4)
	gb.Insert(0, []byte("abc"))
	gb.Insert(1, []byte("Z")) // gap now sits after position 1
	want := "aZbc"
	for i := 0; i < len(want); i++ {
		if got := gb.CharAt(i); got != int(want[i]) {
			t.Fatalf("CharAt(%d) = %c, want %c", i, got, want[i])
		}
	}
	if gb.CharAt(-1) != -1 || gb.CharAt(gb.Len()) != -1 {
		t.Fatalf("out of range reads did not return -1")
	}
}

func TestDeleteClampsToEnd(t *testing.T) {
	gb := New(4)
	gb.Insert(0, []byte("abc"))
	gb.Delete(1, 100)
	if got := string(gb.Bytes()); got != "a" {
		t.Fatalf("text = %q", got)
	}
}

func TestGrowPreservesOrder(t *testing.T) {
	gb := New(4)
	long := strings.Repeat("0123456789", 100)
	if !gb.Insert(0, []byte(long)) {
		t.Fatalf("insert failed")
	}
	gb.Insert(500, []byte("|"))
	want := long[:500] + "|" + long[500:]
	if got := string(gb.Bytes()); got != want {
		t.Fatalf("grow lost bytes: len=%d want=%d", len(got), len(want))
	}
}

func TestLoad(t *testing.T) {
	gb := New(8)
	gb.Insert(0, []byte("old content"))
	data := strings.Repeat("line\n", 2000)
	if err := gb.Load(bytes.NewReader([]byte(data))); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := string(gb.Bytes()); got != data {
		t.Fatalf("load mismatch: %d bytes, want %d", len(got), len(data))
	}
	if gb.Modified() {
		t.Fatalf("modified = true after load")
	}
}

func TestSlice(t *testing.T) {
	gb := New(8)
	gb.Insert(0, []byte("abcdef"))
	gb.Insert(3, []byte("-")) // gap in the middle
	if got := string(gb.Slice(2, 5)); got != "c-d" {
		t.Fatalf("slice = %q", got)
	}
	if gb.Slice(4, 2) != nil {
		t.Fatalf("inverted slice not nil")
	}
}

func TestSequentialInsertCost(t *testing.T) {
	// Sequential typing should never move the gap; this is a smoke check
	// that a large run completes and keeps the text intact.
	gb := New(16)
	var want bytes.Buffer
	for i := 0; i < 10000; i++ {
		b := byte('a' + i%26)
		gb.Insert(gb.Len(), []byte{b})
		want.WriteByte(b)
	}
	if !bytes.Equal(gb.Bytes(), want.Bytes()) {
		t.Fatalf("sequential insert corrupted text")
	}
}
