package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/me/internal/logger"
)

// HandleKey routes one key event to the active mode's handler. It returns
// true when the editor should exit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	switch e.mode {
	case ModeBrowser:
		e.handleBrowserKey(ev)
	case ModeSelect:
		e.handleSelectKey(ev)
	case ModeSearch:
		e.handleSearchKey(ev)
	case ModePrompt:
		e.handlePromptKey(ev)
	case ModeConfirm:
		e.handleConfirmKey(ev)
	case ModeHelp:
		e.restoreMode()
		e.fullRedraw = true
	default:
		e.handleNormalKey(ev)
	}
	return e.quit
}

// isBackspace folds the two backspace encodings (0x08 and 0x7F) together.
func isBackspace(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2
}

func (e *Editor) handleNormalKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		e.InsertNewline()
		e.insertIndent()
	case tcell.KeyCtrlQ:
		if e.gb.Modified() {
			e.startConfirm(confirmQuit, "File has been modified. Quit without saving?", "")
			return
		}
		e.quit = true
	case tcell.KeyCtrlS:
		e.Save()
	case tcell.KeyCtrlX:
		e.setMode(ModeSelect)
		e.setStatus("Mark set - Move cursor to select, ^C=Copy, ^K=Cut, ESC=Cancel")
	case tcell.KeyCtrlC:
		e.CopyLine()
	case tcell.KeyCtrlK:
		e.KillToEnd()
	case tcell.KeyCtrlV:
		e.Paste()
	case tcell.KeyCtrlZ:
		e.Undo()
	case tcell.KeyCtrlR:
		e.Redo()
	case tcell.KeyCtrlF:
		e.StartSearch()
	case tcell.KeyCtrlN:
		e.showLineNumbers = !e.showLineNumbers
		if e.showLineNumbers {
			e.setStatus("Line numbers enabled")
		} else {
			e.setStatus("Line numbers disabled")
		}
	case tcell.KeyCtrlO:
		e.StartBrowser()
	case tcell.KeyCtrlUnderscore, tcell.KeyF1:
		e.setMode(ModeHelp)
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
		e.moveCursor(ev.Key())
	case tcell.KeyPgUp:
		e.pageMove(true)
	case tcell.KeyPgDn:
		e.pageMove(false)
	case tcell.KeyHome:
		e.cx = 0
	case tcell.KeyEnd:
		if e.cy < len(e.rows) {
			e.cx = len(e.rows[e.cy].Chars)
		}
	case tcell.KeyDelete:
		e.DeleteForward()
	case tcell.KeyEscape:
		// Ignored in normal mode.
	case tcell.KeyTab:
		e.InsertRune('\t')
	case tcell.KeyRune:
		e.handleNormalRune(ev.Rune())
	default:
		if isBackspace(ev) {
			e.DeleteChar()
		}
	}
}

// handleNormalRune types a printable character, maintaining the brace
// auto-indent counter.
func (e *Editor) handleNormalRune(r rune) {
	switch r {
	case '{':
		e.InsertRune(r)
		e.indentLevel++
	case '}':
		e.maybeUnindent()
		e.InsertRune(r)
		if e.indentLevel > 0 {
			e.indentLevel--
		}
	default:
		e.InsertRune(r)
	}
}

func (e *Editor) handleSelectKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.selection.Active = false
		e.setMode(ModeNormal)
		e.setStatus("Mark cancelled")
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
		e.moveCursor(ev.Key())
		e.extendSelection()
	case tcell.KeyHome:
		e.cx = 0
		e.extendSelection()
	case tcell.KeyEnd:
		if e.cy < len(e.rows) {
			e.cx = len(e.rows[e.cy].Chars)
		}
		e.extendSelection()
	case tcell.KeyPgUp:
		e.pageMove(true)
		e.extendSelection()
	case tcell.KeyPgDn:
		e.pageMove(false)
		e.extendSelection()
	case tcell.KeyCtrlC:
		e.SelectionCopy()
		e.setMode(ModeNormal)
		e.setStatus("Copied marked text")
	case tcell.KeyCtrlK:
		e.SelectionCut()
		e.setMode(ModeNormal)
	case tcell.KeyCtrlV:
		// Replace the selection with the paste buffer.
		e.SelectionDelete()
		e.Paste()
		e.setMode(ModeNormal)
	case tcell.KeyDelete:
		e.SelectionDelete()
	default:
		if isBackspace(ev) {
			e.SelectionDelete()
			return
		}
		// Any other key drops back to normal mode and is handled there.
		e.setMode(ModeNormal)
		e.handleNormalKey(ev)
	}
}

// extendSelection keeps the selection end glued to the cursor, clamped to
// the last row.
func (e *Editor) extendSelection() {
	if e.cy >= len(e.rows) {
		e.cy = len(e.rows) - 1
		e.cx = len(e.rows[e.cy].Chars)
	}
	e.selection.EndX = e.cx
	e.selection.EndY = e.cy
}

func (e *Editor) handleSearchKey(ev *tcell.EventKey) {
	s := &e.search
	switch {
	case ev.Key() == tcell.KeyEnter:
		if len(s.query) == 0 {
			return
		}
		e.searchStep(tcell.KeyEnter)
		e.finishSearch(false)
		return
	case ev.Key() == tcell.KeyEscape:
		e.searchStep(tcell.KeyEscape)
		e.finishSearch(true)
		return
	case ev.Key() == tcell.KeyUp, ev.Key() == tcell.KeyDown,
		ev.Key() == tcell.KeyLeft, ev.Key() == tcell.KeyRight:
		e.searchStep(ev.Key())
	case isBackspace(ev):
		if len(s.query) > 0 {
			s.query = s.query[:len(s.query)-1]
		}
		e.searchStep(tcell.KeyRune)
	case ev.Key() == tcell.KeyRune:
		s.query = append(s.query, []byte(string(ev.Rune()))...)
		e.searchStep(tcell.KeyRune)
	default:
		return
	}
	e.showSearchMessage()
}

func (e *Editor) handlePromptKey(ev *tcell.EventKey) {
	p := &e.prompt
	switch {
	case ev.Key() == tcell.KeyEscape:
		e.restoreMode()
		e.setStatus("Save aborted")
	case ev.Key() == tcell.KeyEnter:
		if len(p.buf) == 0 {
			return
		}
		name := string(p.buf)
		action, path := p.action, p.path
		e.restoreMode()
		if e.saveTo(name) && action == promptSaveAsThenOpen {
			e.openFromBrowser(path)
		}
	case isBackspace(ev):
		if len(p.buf) > 0 {
			p.buf = p.buf[:len(p.buf)-1]
		}
		e.showPromptMessage()
	case ev.Key() == tcell.KeyRune:
		p.buf = append(p.buf, []byte(string(ev.Rune()))...)
		e.showPromptMessage()
	}
}

func (e *Editor) handleConfirmKey(ev *tcell.EventKey) {
	c := &e.confirm
	switch {
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlQ:
		e.statusMsg = ""
		e.restoreMode()
	case ev.Key() == tcell.KeyLeft, ev.Key() == tcell.KeyRight:
		c.choice = !c.choice
		e.showConfirmMessage()
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y'):
		c.choice = true
		e.showConfirmMessage()
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'n' || ev.Rune() == 'N'):
		c.choice = false
		e.showConfirmMessage()
	case ev.Key() == tcell.KeyEnter:
		choice, action, path := c.choice, c.action, c.path
		e.statusMsg = ""
		e.restoreMode()
		e.resolveConfirm(choice, action, path)
	}
}

// resolveConfirm applies the answer of a finished CONFIRM dialog.
func (e *Editor) resolveConfirm(choice bool, action confirmAction, path string) {
	switch action {
	case confirmQuit:
		if choice {
			e.quit = true
		}
	case confirmOpen:
		if !choice {
			return // stay in the browser without opening
		}
		if e.fileName == "" {
			e.startPrompt(promptSaveAsThenOpen, path)
			return
		}
		if e.saveTo(e.fileName) {
			e.openFromBrowser(path)
		}
	}
}

func (e *Editor) handleBrowserKey(ev *tcell.EventKey) {
	b := &e.browser
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlQ:
		e.setMode(ModeNormal)
		e.fullRedraw = true
	case tcell.KeyEnter:
		e.openSelected()
	case tcell.KeyUp:
		if b.selected > 0 {
			b.selected--
		}
	case tcell.KeyDown:
		if b.selected < len(b.entries)-1 {
			b.selected++
		}
	case tcell.KeyPgUp:
		b.selected -= e.screenRows - 1
		if b.selected < 0 {
			b.selected = 0
		}
	case tcell.KeyPgDn:
		b.selected += e.screenRows - 1
		if b.selected >= len(b.entries) {
			b.selected = len(b.entries) - 1
		}
	case tcell.KeyHome:
		b.selected = 0
	case tcell.KeyEnd:
		b.selected = len(b.entries) - 1
	case tcell.KeyRune:
		if ev.Rune() == 'h' || ev.Rune() == 'H' {
			b.showHidden = !b.showHidden
			e.loadDirectory(b.dir)
		}
	default:
		logger.Debug("browser: ignored key", "key", ev.Key())
	}
}
