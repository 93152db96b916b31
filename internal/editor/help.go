package editor

import "github.com/gdamore/tcell/v2"

// keyBinding describes one shortcut for the help screen.
type keyBinding struct {
	key  string
	desc string
}

var keyBindings = []keyBinding{
	{"^Q", "Exit editor"},
	{"^S", "Save file"},
	{"^F", "Search text"},
	{"^O", "Open file browser"},
	{"^X", "Start marking text"},
	{"^C", "Copy line/marked text"},
	{"^K", "Cut to end of line/marked text"},
	{"^V", "Paste/uncut"},
	{"^Z", "Undo last action"},
	{"^R", "Redo last undo"},
	{"^N", "Toggle line numbers"},
	{"^?", "Show help"},
}

var modeDescriptions = []keyBinding{
	{"NORMAL", "Default editing mode"},
	{"SELECT", "Text selection mode (Ctrl-X)"},
	{"SEARCH", "Search mode (Ctrl-F)"},
	{"PROMPT", "Generic prompt mode"},
	{"CONFIRM", "Confirmation dialog mode"},
	{"HELP", "Help screen mode"},
	{"BROWSER", "File browser mode"},
}

// drawHelp paints the help screen over the row area.
func (e *Editor) drawHelp(s tcell.Screen, w int) {
	put := func(y int, text string, style tcell.Style) {
		x := 0
		for _, r := range text {
			if x >= w {
				break
			}
			s.SetContent(x, y, r, nil, style)
			x++
		}
	}

	y := 0
	put(y, " Key Bindings", e.st.normal.Bold(true))
	y++
	for _, kb := range keyBindings {
		if y >= e.screenRows {
			return
		}
		put(y, "   "+kb.key+" - "+kb.desc, e.st.normal)
		y++
	}
	y++
	if y < e.screenRows {
		put(y, " Editor Modes", e.st.normal.Bold(true))
		y++
	}
	for _, md := range modeDescriptions {
		if y >= e.screenRows {
			return
		}
		put(y, "   "+md.key+" - "+md.desc, e.st.normal)
		y++
	}
}
