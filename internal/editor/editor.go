// Package editor implements the text editing core: the gap buffer text
// model with its per-line row cache, reversible edit operations, syntax
// highlighting, incremental search, selection, the file browser and the
// modal key dispatch that ties them together.
package editor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/me/internal/config"
	"github.com/kobzarvs/me/internal/history"
	"github.com/kobzarvs/me/internal/logger"
	"github.com/kobzarvs/me/internal/session"
	"github.com/kobzarvs/me/internal/textbuf"
	"github.com/kobzarvs/me/internal/textutil"
)

// TabStop is the tab expansion width in render columns.
const TabStop = 4

// messageTimeout is how long transient status messages stay visible.
const messageTimeout = 5 * time.Second

type Mode int

const (
	ModeNormal Mode = iota
	ModeSelect
	ModeSearch
	ModePrompt
	ModeConfirm
	ModeHelp
	ModeBrowser
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeSelect:
		return "SELECT"
	case ModeSearch:
		return "SEARCH"
	case ModePrompt:
		return "PROMPT"
	case ModeConfirm:
		return "CONFIRM"
	case ModeHelp:
		return "HELP"
	case ModeBrowser:
		return "BROWSER"
	}
	return "UNKNOWN"
}

// Selection is the marked region. Start is the anchor set when the mark
// was placed; End tracks the cursor.
type Selection struct {
	StartX, StartY int
	EndX, EndY     int
	Active         bool
}

type promptAction int

const (
	promptSaveAs promptAction = iota
	promptSaveAsThenOpen
)

type promptState struct {
	buf    []byte
	action promptAction
	path   string // pending file for promptSaveAsThenOpen
}

type confirmAction int

const (
	confirmQuit confirmAction = iota
	confirmOpen
)

type confirmState struct {
	msg    string
	choice bool
	action confirmAction
	path   string // pending file for confirmOpen
}

type Editor struct {
	gb   *textbuf.GapBuffer
	hist *history.Stack
	rows []*Row

	// Cursor in byte coordinates within rows[cy].Chars, plus the derived
	// render column used for display.
	cx, cy  int
	renderX int

	rowOffset, colOffset   int
	screenRows, screenCols int

	fileName string
	copyBuf  []byte

	selection Selection
	syntax    *config.Language
	langs     config.Languages

	mode     Mode
	prevMode Mode
	search   searchState
	prompt   promptState
	confirm  confirmState
	browser  browserState

	statusMsg     string
	statusMsgTime time.Time
	stickyMsg     bool // search/browser prompts ignore the timeout

	showLineNumbers bool
	clock           bool
	indentLevel     int

	gitBranch       string
	gitBranchSymbol string
	sessions        *session.Manager

	// UTF-8 input accumulation for byte-oriented key sources.
	pending        [4]byte
	pendingLen     int
	pendingExpects int

	quit       bool
	fullRedraw bool

	st styles
}

// New builds an editor with an empty buffer.
func New(cfg config.Config, langs config.Languages) *Editor {
	e := &Editor{
		gb:              textbuf.New(textbuf.InitialSize),
		hist:            history.New(history.MaxLevels),
		langs:           langs,
		showLineNumbers: cfg.Editor.LineNumbers,
		clock:           cfg.Editor.Clock,
		gitBranchSymbol: cfg.Editor.GitBranchSymbol,
		st:              newStyles(cfg.Theme),
	}
	e.rows = []*Row{newRow(0, nil)}
	e.updateRow(e.rows[0])
	return e
}

// SetSessionManager attaches cursor persistence; nil disables it.
func (e *Editor) SetSessionManager(m *session.Manager) { e.sessions = m }

// SetGitBranch sets the branch shown in the status bar.
func (e *Editor) SetGitBranch(branch string) { e.gitBranch = branch }

// FileName returns the path of the open file, or "".
func (e *Editor) FileName() string { return e.fileName }

// Modified reports whether the buffer differs from the file on disk.
func (e *Editor) Modified() bool { return e.gb.Modified() }

// NumRows returns the row count of the cache.
func (e *Editor) NumRows() int { return len(e.rows) }

// Cursor returns the byte-coordinate cursor position.
func (e *Editor) Cursor() (cx, cy int) { return e.cx, e.cy }

// Mode returns the active input mode.
func (e *Editor) Mode() Mode { return e.mode }

// ShouldQuit reports whether a quit was requested and confirmed.
func (e *Editor) ShouldQuit() bool { return e.quit }

// Content returns the buffer's logical text.
func (e *Editor) Content() []byte { return e.gb.Bytes() }

// SetStatus sets a transient status message from outside the editor.
func (e *Editor) SetStatus(format string, args ...interface{}) {
	e.setStatus(format, args...)
}

// setStatus formats a transient status message.
func (e *Editor) setStatus(format string, args ...interface{}) {
	e.statusMsg = fmt.Sprintf(format, args...)
	e.statusMsgTime = time.Now()
	e.stickyMsg = false
}

// setStickyStatus sets a message that stays until replaced, used for the
// search and browser prompts.
func (e *Editor) setStickyStatus(format string, args ...interface{}) {
	e.statusMsg = fmt.Sprintf(format, args...)
	e.statusMsgTime = time.Now()
	e.stickyMsg = true
}

// positionFor maps row/byte-column coordinates to a gap buffer offset:
// the sizes of all preceding rows plus one newline each, plus cx.
func (e *Editor) positionFor(cy, cx int) int {
	pos := 0
	for i := 0; i < cy && i < len(e.rows); i++ {
		pos += len(e.rows[i].Chars) + 1
	}
	return pos + cx
}

// syncRows rebuilds the row cache from the gap buffer, splitting at each
// newline. The cursor is clamped into the new geometry.
func (e *Editor) syncRows() {
	savedY, savedX := e.cy, e.cx

	e.rows = e.rows[:0]
	text := e.gb.Bytes()
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == '\n' {
			e.rows = append(e.rows, newRow(len(e.rows), text[start:i]))
			start = i + 1
			if i == len(text) {
				break
			}
		}
	}
	if len(e.rows) == 0 {
		e.rows = append(e.rows, newRow(0, nil))
	}
	for _, row := range e.rows {
		e.updateRow(row)
	}

	e.cy = savedY
	if e.cy >= len(e.rows) {
		e.cy = len(e.rows) - 1
	}
	e.cx = savedX
	chars := e.rows[e.cy].Chars
	if e.cx > len(chars) {
		e.cx = len(chars)
	}
	// The clamp may land inside a multi-byte character; snap back.
	for e.cx > 0 && e.cx < len(chars) && textutil.IsContinuation(chars[e.cx]) {
		e.cx--
	}
}

// OpenFile loads path into the editor, resetting rows, history and
// viewport. CRLF line endings are normalized to LF before the gap buffer
// is populated so the rows always mirror the buffer byte-for-byte.
func (e *Editor) OpenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	// A trailing newline terminates the last row; it is re-added on save.
	data = bytes.TrimSuffix(data, []byte("\n"))

	e.rememberPosition()

	e.gb = textbuf.New(len(data) + textbuf.GrowChunk)
	if err := e.gb.Load(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.hist.Clear()
	e.fileName = path
	e.cx, e.cy, e.renderX = 0, 0, 0
	e.rowOffset, e.colOffset = 0, 0
	e.selection = Selection{}
	e.selectSyntax()
	e.syncRows()
	e.restorePosition()
	logger.Info("file opened", "path", path, "bytes", len(data), "rows", len(e.rows))
	return nil
}

// rowsToString joins the rows with a newline after every row, which is the
// on-disk representation.
func (e *Editor) rowsToString() []byte {
	var buf bytes.Buffer
	for _, row := range e.rows {
		buf.Write(row.Chars)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Save writes the buffer to the current file name, truncating to the new
// length. On failure the modified flag is left set and no data is lost.
func (e *Editor) Save() {
	if e.fileName == "" {
		e.startPrompt(promptSaveAs, "")
		return
	}
	e.saveTo(e.fileName)
}

func (e *Editor) saveTo(path string) bool {
	buf := e.rowsToString()
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		e.setStatus("Error: %s", err)
		return false
	}
	defer f.Close()
	if err := f.Truncate(int64(len(buf))); err != nil {
		e.setStatus("Error: %s", err)
		return false
	}
	if _, err := f.Write(buf); err != nil {
		e.setStatus("Error: %s", err)
		return false
	}
	e.fileName = path
	e.gb.SetModified(false)
	e.selectSyntax()
	if len(buf) >= 1024 {
		e.setStatus("%d KiB written to disk", len(buf)>>10)
	} else {
		e.setStatus("%d B written to disk", len(buf))
	}
	logger.Info("file saved", "path", path, "bytes", len(buf))
	return true
}

// rememberPosition stores the cursor for the current file in the session.
func (e *Editor) rememberPosition() {
	if e.sessions == nil || e.fileName == "" {
		return
	}
	abs, err := filepath.Abs(e.fileName)
	if err != nil {
		return
	}
	e.sessions.SetFileState(abs, session.FileState{
		CursorX:   e.cx,
		CursorY:   e.cy,
		RowOffset: e.rowOffset,
		ColOffset: e.colOffset,
	})
}

// restorePosition moves the cursor to the session-recorded spot, clamped
// to the file's current size.
func (e *Editor) restorePosition() {
	if e.sessions == nil || e.fileName == "" {
		return
	}
	abs, err := filepath.Abs(e.fileName)
	if err != nil {
		return
	}
	state, ok := e.sessions.GetFileState(abs)
	if !ok {
		return
	}
	e.cy = state.CursorY
	if e.cy >= len(e.rows) {
		e.cy = len(e.rows) - 1
	}
	e.cx = state.CursorX
	if size := len(e.rows[e.cy].Chars); e.cx > size {
		e.cx = size
	}
	e.rowOffset = state.RowOffset
	e.colOffset = state.ColOffset
}

// Shutdown flushes session state before exit.
func (e *Editor) Shutdown() {
	e.rememberPosition()
	if e.sessions != nil {
		e.sessions.Stop()
	}
}

// selectSyntax picks the language descriptor matching the file name and
// re-highlights every row.
func (e *Editor) selectSyntax() {
	e.syntax = e.langs.Match(e.fileName)
	for _, row := range e.rows {
		e.highlightRow(row)
	}
}

// Undo reverts the most recent edit and resynchronizes the rows.
func (e *Editor) Undo() {
	if e.hist.Undo(e.gb) {
		e.syncRows()
		e.setStatus("Undo performed")
	} else {
		e.setStatus("Nothing to undo")
	}
}

// Redo re-applies the most recently undone edit.
func (e *Editor) Redo() {
	if e.hist.Redo(e.gb) {
		e.syncRows()
		e.setStatus("Redo performed")
	} else {
		e.setStatus("Nothing to redo")
	}
}

// moveCursor applies one arrow-key motion in byte coordinates, stepping
// over whole UTF-8 sequences horizontally.
func (e *Editor) moveCursor(key tcell.Key) {
	var row *Row
	if e.cy < len(e.rows) {
		row = e.rows[e.cy]
	}
	switch key {
	case tcell.KeyLeft:
		if e.cx != 0 {
			if row != nil {
				e.cx = prevBoundary(row.Chars, e.cx)
			} else {
				e.cx--
			}
		} else if e.cy > 0 {
			e.cy--
			e.cx = len(e.rows[e.cy].Chars)
		}
	case tcell.KeyRight:
		if row != nil && e.cx < len(row.Chars) {
			e.cx = nextBoundary(row.Chars, e.cx)
		} else if row != nil && e.cx == len(row.Chars) {
			e.cy++
			e.cx = 0
		}
	case tcell.KeyUp:
		if e.cy != 0 {
			e.cy--
		}
	case tcell.KeyDown:
		if e.cy < len(e.rows) {
			e.cy++
		}
	}
	rowLen := 0
	if e.cy < len(e.rows) {
		rowLen = len(e.rows[e.cy].Chars)
	}
	if e.cx > rowLen {
		e.cx = rowLen
	}
}

// pageMove implements PageUp/PageDown: jump the cursor to the window edge
// then move a full screen of rows.
func (e *Editor) pageMove(up bool) {
	if up {
		e.cy = e.rowOffset
	} else {
		e.cy = e.rowOffset + e.screenRows - 1
	}
	key := tcell.KeyDown
	if up {
		key = tcell.KeyUp
	}
	if e.cy > len(e.rows) {
		e.cy = len(e.rows)
	}
	for i := 0; i < e.screenRows; i++ {
		e.moveCursor(key)
	}
}

// TextEquals is a test hook comparing the buffer against want.
func (e *Editor) TextEquals(want string) bool {
	return string(e.gb.Bytes()) == want
}

// rowText is a test/debug helper.
func (e *Editor) rowText(i int) string {
	if i < 0 || i >= len(e.rows) {
		return ""
	}
	return string(e.rows[i].Chars)
}
