package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestModeTransitions(t *testing.T) {
	e := newTestEditor("text")

	e.HandleKey(key(tcell.KeyCtrlX))
	if e.Mode() != ModeSelect {
		t.Fatalf("Ctrl-X -> %v", e.Mode())
	}
	e.HandleKey(key(tcell.KeyEscape))
	if e.Mode() != ModeNormal {
		t.Fatalf("Esc from select -> %v", e.Mode())
	}

	e.HandleKey(key(tcell.KeyCtrlF))
	if e.Mode() != ModeSearch {
		t.Fatalf("Ctrl-F -> %v", e.Mode())
	}
	e.HandleKey(key(tcell.KeyEscape))
	if e.Mode() != ModeNormal {
		t.Fatalf("Esc from search -> %v", e.Mode())
	}

	e.HandleKey(key(tcell.KeyCtrlUnderscore))
	if e.Mode() != ModeHelp {
		t.Fatalf("Ctrl-? -> %v", e.Mode())
	}
	e.HandleKey(runeKey('x'))
	if e.Mode() != ModeNormal {
		t.Fatalf("any key from help -> %v", e.Mode())
	}
}

func TestHelpRestoresCallerMode(t *testing.T) {
	e := newTestEditor("text")
	e.HandleKey(key(tcell.KeyCtrlX)) // select mode
	e.setMode(ModeHelp)
	e.HandleKey(runeKey('q'))
	if e.Mode() != ModeSelect {
		t.Fatalf("help restored %v, want SELECT", e.Mode())
	}
}

func TestQuitCleanBuffer(t *testing.T) {
	e := newTestEditor("text")
	if e.HandleKey(key(tcell.KeyCtrlQ)) != true {
		t.Fatalf("clean quit not immediate")
	}
}

func TestQuitModifiedNeedsConfirm(t *testing.T) {
	e := newTestEditor()
	typeString(e, "dirty")
	if e.HandleKey(key(tcell.KeyCtrlQ)) {
		t.Fatalf("modified quit without confirmation")
	}
	if e.Mode() != ModeConfirm {
		t.Fatalf("mode = %v, want CONFIRM", e.Mode())
	}
	// Default choice is No: Enter keeps the editor alive.
	if e.HandleKey(key(tcell.KeyEnter)) {
		t.Fatalf("No still quit")
	}
	if e.Mode() != ModeNormal {
		t.Fatalf("mode = %v after No", e.Mode())
	}

	// Again, toggling to Yes quits.
	e.HandleKey(key(tcell.KeyCtrlQ))
	e.HandleKey(key(tcell.KeyRight))
	if !e.HandleKey(key(tcell.KeyEnter)) {
		t.Fatalf("Yes did not quit")
	}
}

func TestConfirmQuickKeys(t *testing.T) {
	e := newTestEditor()
	typeString(e, "dirty")
	e.HandleKey(key(tcell.KeyCtrlQ))
	e.HandleKey(runeKey('y'))
	if !e.confirm.choice {
		t.Fatalf("'y' did not pick Yes")
	}
	e.HandleKey(runeKey('n'))
	if e.confirm.choice {
		t.Fatalf("'n' did not pick No")
	}
	e.HandleKey(key(tcell.KeyEscape))
	if e.Mode() != ModeNormal {
		t.Fatalf("Esc did not cancel confirm")
	}
}

func TestSaveAsPrompt(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	e := newTestEditor()
	typeString(e, "content")
	e.HandleKey(key(tcell.KeyCtrlS))
	if e.Mode() != ModePrompt {
		t.Fatalf("save without name -> %v, want PROMPT", e.Mode())
	}
	typeString(e, "new.txt")
	e.HandleKey(key(tcell.KeyEnter))
	if e.Mode() != ModeNormal {
		t.Fatalf("mode = %v after save", e.Mode())
	}
	data, err := os.ReadFile(filepath.Join(dir, "new.txt"))
	if err != nil {
		t.Fatalf("saved file: %v", err)
	}
	if string(data) != "content\n" {
		t.Fatalf("saved = %q", data)
	}
}

func TestPromptEscAborts(t *testing.T) {
	e := newTestEditor()
	typeString(e, "content")
	e.HandleKey(key(tcell.KeyCtrlS))
	e.HandleKey(key(tcell.KeyEscape))
	if e.Mode() != ModeNormal {
		t.Fatalf("mode = %v", e.Mode())
	}
	if e.statusMsg != "Save aborted" {
		t.Fatalf("status = %q", e.statusMsg)
	}
}

func TestLineNumberToggle(t *testing.T) {
	e := newTestEditor("a")
	if e.gutterWidth() != 0 {
		t.Fatalf("gutter on by default")
	}
	e.HandleKey(key(tcell.KeyCtrlN))
	if e.gutterWidth() != 3 {
		t.Fatalf("gutter = %d, want 3", e.gutterWidth())
	}
	e.HandleKey(key(tcell.KeyCtrlN))
	if e.gutterWidth() != 0 {
		t.Fatalf("gutter did not toggle off")
	}
}
