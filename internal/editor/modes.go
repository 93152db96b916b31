package editor

// setMode switches the input mode, tearing down the old mode's local
// state and initializing the new one. PROMPT, CONFIRM and HELP are
// temporary dialogs: they do not overwrite prevMode, so restoreMode
// returns to the mode that opened them.
func (e *Editor) setMode(newMode Mode) {
	if e.mode != ModePrompt && e.mode != ModeConfirm && e.mode != ModeHelp {
		e.prevMode = e.mode
	}

	switch e.mode {
	case ModeSearch:
		e.search = searchState{}
	case ModePrompt:
		e.prompt = promptState{}
	case ModeBrowser:
		// Sub-dialogs return to the browser, so its listing survives them.
		if newMode != ModeBrowser && newMode != ModeConfirm && newMode != ModePrompt {
			e.browser = browserState{}
		}
	}

	e.mode = newMode

	switch newMode {
	case ModeSelect:
		if e.cy >= len(e.rows) {
			e.cy = len(e.rows) - 1
			e.cx = len(e.rows[e.cy].Chars)
		}
		e.selection = Selection{
			StartX: e.cx, StartY: e.cy,
			EndX: e.cx, EndY: e.cy,
			Active: true,
		}
		e.setStatus("-- SELECT MODE -- Use arrows to extend, ESC to cancel")
	case ModeSearch:
		e.search.direction = 1
		e.search.lastMatch = -1
		e.search.savedHlLine = -1
		e.search.savedCx, e.search.savedCy = e.cx, e.cy
		e.search.savedRowOff, e.search.savedColOff = e.rowOffset, e.colOffset
	case ModeHelp:
		e.setStatus("-- HELP -- Press any key to exit")
	case ModeNormal:
		e.selection.Active = false
		e.statusMsg = ""
		e.stickyMsg = false
		e.fullRedraw = true
	}
}

// restoreMode leaves a temporary dialog mode.
func (e *Editor) restoreMode() {
	e.setMode(e.prevMode)
}

// startPrompt opens the PROMPT dialog.
func (e *Editor) startPrompt(action promptAction, path string) {
	e.setMode(ModePrompt)
	e.prompt = promptState{action: action, path: path}
	e.showPromptMessage()
}

func (e *Editor) showPromptMessage() {
	e.setStickyStatus("Save as: %s (ESC to cancel)", e.prompt.buf)
}

// startConfirm opens the CONFIRM dialog; choice defaults to No.
func (e *Editor) startConfirm(action confirmAction, msg, path string) {
	e.setMode(ModeConfirm)
	e.confirm = confirmState{msg: msg, action: action, path: path}
	e.showConfirmMessage()
}

// showConfirmMessage renders the Yes/No toggle into the message bar; the
// selected option is picked out in the message bar's inverse style.
func (e *Editor) showConfirmMessage() {
	if e.confirm.choice {
		e.setStickyStatus("%s   No   [ Yes ]  (ESC: cancel)", e.confirm.msg)
	} else {
		e.setStickyStatus("%s  [ No ]   Yes   (ESC: cancel)", e.confirm.msg)
	}
}
