package editor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/me/internal/config"
	"github.com/kobzarvs/me/internal/textutil"
)

// styles maps the highlight classes and chrome onto tcell styles.
type styles struct {
	normal     tcell.Style
	match      tcell.Style
	comment    tcell.Style
	keyword1   tcell.Style
	keyword2   tcell.Style
	keyword3   tcell.Style
	str        tcell.Style
	number     tcell.Style
	status     tcell.Style
	message    tcell.Style
	lineNumber tcell.Style
	browserDir tcell.Style
	browserSrc tcell.Style
}

func newStyles(t config.Theme) styles {
	fg := parseColor(t.Foreground, tcell.ColorWhite)
	bg := parseColor(t.Background, tcell.ColorDefault)
	base := tcell.StyleDefault.Foreground(fg).Background(bg)
	return styles{
		normal:   base,
		match:    base.Background(parseColor(t.SearchMatchBackground, tcell.ColorYellow)),
		comment:  base.Foreground(parseColor(t.SyntaxComment, tcell.ColorTeal)),
		keyword1: base.Foreground(parseColor(t.SyntaxKeyword, tcell.ColorYellow)),
		keyword2: base.Foreground(parseColor(t.SyntaxType, tcell.ColorGreen)),
		keyword3: base.Foreground(parseColor(t.SyntaxPreproc, tcell.ColorTeal)),
		str:      base.Foreground(parseColor(t.SyntaxString, tcell.ColorRed)),
		number:   base.Foreground(parseColor(t.SyntaxNumber, tcell.ColorMaroon)),
		status: tcell.StyleDefault.
			Foreground(parseColor(t.StatuslineForeground, tcell.ColorWhite)).
			Background(parseColor(t.StatuslineBackground, tcell.ColorGray)),
		message: tcell.StyleDefault.
			Foreground(parseColor(t.MessageForeground, tcell.ColorYellow)).
			Background(parseColor(t.MessageBackground, tcell.ColorNavy)),
		lineNumber: base.Foreground(parseColor(t.LineNumberForeground, tcell.ColorGray)),
		browserDir: base.Foreground(parseColor(t.BrowserDirForeground, tcell.ColorBlue)),
		browserSrc: base.Foreground(parseColor(t.BrowserSrcForeground, tcell.ColorGreen)),
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

func (e *Editor) styleFor(hl Highlight) tcell.Style {
	switch hl {
	case HLMatch:
		return e.st.match
	case HLSLComment, HLMLComment:
		return e.st.comment
	case HLKeyword1:
		return e.st.keyword1
	case HLKeyword2:
		return e.st.keyword2
	case HLKeyword3:
		return e.st.keyword3
	case HLString:
		return e.st.str
	case HLNumber:
		return e.st.number
	}
	return e.st.normal
}

// gutterWidth returns the line-number gutter width: digits of the row
// count plus two columns of padding, or 0 when the gutter is off.
func (e *Editor) gutterWidth() int {
	if !e.showLineNumbers || len(e.rows) == 0 {
		return 0
	}
	width := 1
	for n := len(e.rows); n >= 10; n /= 10 {
		width++
	}
	return width + 2
}

// scroll recomputes renderX from the cursor and clamps the viewport so
// the cursor is visible.
func (e *Editor) scroll() {
	e.renderX = 0
	if e.cy < len(e.rows) {
		e.renderX = cursorXToRenderX(e.rows[e.cy], e.cx)
	}
	if e.cy < e.rowOffset {
		e.rowOffset = e.cy
	}
	if e.cy >= e.rowOffset+e.screenRows {
		e.rowOffset = e.cy - e.screenRows + 1
	}
	available := e.screenCols - e.gutterWidth()
	if e.renderX < e.colOffset {
		e.colOffset = e.renderX
	}
	if e.renderX >= e.colOffset+available {
		e.colOffset = e.renderX - available + 1
	}
}

// Render composes one frame into the screen and flushes it with a single
// Show. Mode-specific screens (browser, help) take over the row area; the
// status and message bars always occupy the bottom two lines.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	e.screenCols = w
	e.screenRows = h - 2
	if e.screenRows < 0 {
		e.screenRows = 0
	}

	if e.fullRedraw {
		s.Clear()
		e.fullRedraw = false
	}
	s.SetStyle(e.st.normal)
	s.Fill(' ', e.st.normal)

	switch e.mode {
	case ModeBrowser:
		e.drawBrowser(s, w)
		e.drawMessageBar(s, w, h-1)
		s.HideCursor()
		s.Show()
		return
	case ModeHelp:
		e.drawHelp(s, w)
		e.drawStatusBar(s, w, h-2)
		e.drawMessageBar(s, w, h-1)
		s.HideCursor()
		s.Show()
		return
	}

	e.scroll()
	gutter := e.gutterWidth()
	for y := 0; y < e.screenRows; y++ {
		e.drawRow(s, y, w, gutter)
	}
	if h >= 2 {
		e.drawStatusBar(s, w, h-2)
	}
	e.drawMessageBar(s, w, h-1)

	cx := gutter + e.renderX - e.colOffset
	cy := e.cy - e.rowOffset
	if cx >= w {
		cx = w - 1
	}
	if cy < 0 || cy >= e.screenRows {
		s.HideCursor()
	} else {
		s.ShowCursor(cx, cy)
	}
	s.Show()
}

// drawRow paints one visible line: gutter, then the render slice starting
// at colOffset with per-byte highlight styles. Control bytes 0x00-0x1A show
// as one cell holding their caret letter (@, A..Z), other control bytes as
// ?, in reverse video; selected cells and search matches are reversed as
// well.
func (e *Editor) drawRow(s tcell.Screen, y, w, gutter int) {
	fileRow := y + e.rowOffset

	if gutter > 0 {
		if fileRow < len(e.rows) {
			num := fmt.Sprintf("%*d ", gutter-1, fileRow+1)
			for i, r := range num {
				if i >= gutter || i >= w {
					break
				}
				s.SetContent(i, y, r, nil, e.st.lineNumber)
			}
		}
	}

	if fileRow >= len(e.rows) {
		s.SetContent(gutter, y, '~', nil, e.st.lineNumber)
		return
	}

	row := e.rows[fileRow]
	x := gutter
	renderCol := 0
	for i := 0; i < len(row.Render); {
		c := row.Render[i]
		width := 1
		n := 1
		var r rune
		if c < 0x80 {
			r = rune(c)
		} else {
			n = textutil.ByteLen(c)
			if i+n > len(row.Render) {
				n = len(row.Render) - i
			}
			if cp := textutil.Decode(row.Render[i:]); cp >= 0 {
				r = rune(cp)
				width = textutil.Width(row.Render[i:])
			} else {
				r = '?'
			}
		}
		if width == 0 {
			// Zero-width characters (combining marks) still take one cell.
			width = 1
		}

		if renderCol+width <= e.colOffset {
			renderCol += width
			i += n
			continue
		}
		if x >= w {
			break
		}

		style := e.styleFor(row.Highlight[i])
		if c < 0x20 || c == 0x7F {
			sym := '?'
			if c <= 26 {
				sym = rune('@' + c)
			}
			s.SetContent(x, y, sym, nil, style.Reverse(true))
			x++
			renderCol++
			i++
			continue
		}
		if e.selectionContains(renderIndexToCursorX(row, i), fileRow) {
			style = style.Reverse(true)
		}
		if row.Highlight[i] == HLMatch {
			style = e.st.normal.Reverse(true)
		}
		s.SetContent(x, y, r, nil, style)
		x += width
		renderCol += width
		i += n
	}
}

// drawStatusBar paints the mode tag, file name, modified marker and the
// line/column counters (plus branch and clock) on the status line.
func (e *Editor) drawStatusBar(s tcell.Screen, w, y int) {
	name := e.fileName
	if name == "" {
		name = "< New >"
	}
	modified := ""
	if e.gb.Modified() {
		modified = "(modified)"
	}
	left := fmt.Sprintf(" [%s] File: %.20s %s", e.mode, name, modified)

	colSize := 0
	if e.cy < len(e.rows) {
		colSize = len(e.rows[e.cy].Chars)
	}
	curRow := e.cy + 1
	if curRow > len(e.rows) {
		curRow = len(e.rows)
	}
	right := fmt.Sprintf("%d/%d lines  %d/%d cols", curRow, len(e.rows), e.cx+1, colSize)
	if e.gitBranch != "" {
		right = formatGitBranch(e.gitBranchSymbol, e.gitBranch) + "  " + right
	}
	if e.clock {
		now := time.Now()
		right += fmt.Sprintf(" [ %2d:%2d:%2d ]", now.Hour(), now.Minute(), now.Second())
	}

	for x, r := range composeStatusLine(left, right, w) {
		s.SetContent(x, y, r, nil, e.st.status)
	}
}

// drawMessageBar paints the transient status message; regular messages
// expire after five seconds, sticky prompts stay. The confirm dialog's
// selected option renders in inverse video.
func (e *Editor) drawMessageBar(s tcell.Screen, w, y int) {
	msg := e.statusMsg
	if !e.stickyMsg && time.Since(e.statusMsgTime) >= messageTimeout {
		msg = ""
	}

	// The [ Yes ] / [ No ] bracket group is emphasized in CONFIRM mode.
	inverseFrom, inverseTo := -1, -1
	if e.mode == ModeConfirm {
		if i := strings.Index(msg, "["); i >= 0 {
			if j := strings.Index(msg[i:], "]"); j >= 0 {
				inverseFrom, inverseTo = i, i+j+1
			}
		}
	}

	x := 0
	for i, r := range msg {
		if x >= w {
			break
		}
		style := e.st.message
		if inverseFrom >= 0 && i >= inverseFrom && i < inverseTo {
			style = style.Reverse(true)
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		s.SetContent(x, y, ' ', nil, e.st.message)
	}
}

// drawBrowser paints the full-screen directory listing with a title bar,
// the tagged entries and a browser status line.
func (e *Editor) drawBrowser(s tcell.Screen, w int) {
	b := &e.browser
	_, h := s.Size()
	visible := h - 3 // title + status + message

	title := fmt.Sprintf("=== File Browser: %s ===", b.dir)
	x := 0
	for _, r := range title {
		if x >= w {
			break
		}
		s.SetContent(x, 0, r, nil, e.st.normal.Reverse(true))
		x++
	}
	for ; x < w; x++ {
		s.SetContent(x, 0, ' ', nil, e.st.normal.Reverse(true))
	}

	if b.selected < b.offset {
		b.offset = b.selected
	}
	if b.selected >= b.offset+visible {
		b.offset = b.selected - visible + 1
	}

	for i := 0; i < visible; i++ {
		y := i + 1
		idx := i + b.offset
		if idx >= len(b.entries) {
			s.SetContent(0, y, '~', nil, e.st.lineNumber)
			continue
		}
		entry := b.entries[idx]
		style := e.st.normal
		if entry.isDir {
			style = e.st.browserDir
		} else if isSourceFile(entry) {
			style = e.st.browserSrc
		}
		if idx == b.selected {
			style = style.Reverse(true)
		}
		line := "  " + fileTypeTag(entry) + entry.name
		x := 0
		for _, r := range line {
			if x >= w {
				break
			}
			s.SetContent(x, y, r, nil, style)
			x++
		}
		if idx == b.selected {
			for ; x < w; x++ {
				s.SetContent(x, y, ' ', nil, style)
			}
		}
	}

	left := fmt.Sprintf(" [%s] %s", e.mode, b.dir)
	right := fmt.Sprintf("%d/%d files", b.selected+1, len(b.entries))
	if e.clock {
		now := time.Now()
		right += fmt.Sprintf(" [ %2d:%2d:%2d ]", now.Hour(), now.Minute(), now.Second())
	}
	for x, r := range composeStatusLine(left, right, w) {
		s.SetContent(x, h-2, r, nil, e.st.status)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for len(line)+len(rightRunes) < width {
		line = append(line, ' ')
	}
	line = append(line, rightRunes...)
	return line
}

func formatGitBranch(symbol, branch string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = "git:"
	}
	if strings.HasSuffix(symbol, ":") {
		return symbol + branch
	}
	return symbol + " " + branch
}
