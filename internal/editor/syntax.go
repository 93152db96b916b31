package editor

import "bytes"

// Highlight classifies one rendered byte.
type Highlight byte

const (
	HLNormal Highlight = iota
	HLMatch
	HLSLComment
	HLMLComment
	HLKeyword1
	HLKeyword2
	HLKeyword3
	HLString
	HLNumber
)

// isSeparator reports whether c can delimit a keyword token.
func isSeparator(c byte) bool {
	if c == 0 {
		return true
	}
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return bytes.IndexByte([]byte(",.()+-/*=~%<>[]:;"), c) >= 0
}

// isNumberPart reports whether c may continue a numeric literal (hex
// digits, the 0x prefix, decimal point, h/H suffix).
func isNumberPart(c byte) bool {
	switch c {
	case '.', 'x', 'X', 'h', 'H':
		return true
	}
	return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// highlightRow classifies every rendered byte of row. The multi-line
// comment state is seeded from the previous row's HlOpenComment and the
// new open state is stored back; the caller decides whether to propagate.
// Returns true when HlOpenComment changed.
func (e *Editor) highlightRow(row *Row) bool {
	if len(row.Highlight) != len(row.Render) {
		row.Highlight = make([]Highlight, len(row.Render))
	}
	for i := range row.Highlight {
		row.Highlight[i] = HLNormal
	}
	if e.syntax == nil {
		changed := row.HlOpenComment
		row.HlOpenComment = false
		return changed
	}

	scs := []byte(e.syntax.SLCommentStart)
	mcs := []byte(e.syntax.MLCommentStart)
	mce := []byte(e.syntax.MLCommentEnd)

	prevSep := true
	inString := byte(0)
	inComment := row.Idx > 0 && e.rows[row.Idx-1].HlOpenComment

	render := row.Render
	i := 0
	for i < len(render) {
		c := render[i]
		prevHL := HLNormal
		if i > 0 {
			prevHL = row.Highlight[i-1]
		}

		if len(scs) > 0 && inString == 0 && !inComment {
			if bytes.HasPrefix(render[i:], scs) {
				for j := i; j < len(render); j++ {
					row.Highlight[j] = HLSLComment
				}
				break
			}
		}

		if len(mcs) > 0 && len(mce) > 0 && inString == 0 {
			if inComment {
				row.Highlight[i] = HLMLComment
				if bytes.HasPrefix(render[i:], mce) {
					for j := 0; j < len(mce); j++ {
						row.Highlight[i+j] = HLMLComment
					}
					i += len(mce)
					inComment = false
					prevSep = true
					continue
				}
				i++
				continue
			} else if bytes.HasPrefix(render[i:], mcs) {
				for j := 0; j < len(mcs); j++ {
					row.Highlight[i+j] = HLMLComment
				}
				i += len(mcs)
				inComment = true
				continue
			}
		}

		if e.syntax.HighlightStrings {
			if inString != 0 {
				row.Highlight[i] = HLString
				if c == '\\' && i+1 < len(render) {
					row.Highlight[i+1] = HLString
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				inString = c
				row.Highlight[i] = HLString
				i++
				continue
			}
		}

		if e.syntax.HighlightNumbers {
			if (isDigit(c) && (prevSep || prevHL == HLNumber)) ||
				(isNumberPart(c) && prevHL == HLNumber) {
				row.Highlight[i] = HLNumber
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			matched := false
			for _, kw := range e.syntax.Keywords {
				k := kw
				hl := HLKeyword1
				if len(k) > 0 && k[len(k)-1] == '|' {
					k = k[:len(k)-1]
					hl = HLKeyword2
				} else if len(k) > 0 && k[0] == '#' {
					hl = HLKeyword3
				}
				if len(k) == 0 || !bytes.HasPrefix(render[i:], []byte(k)) {
					continue
				}
				// End of row counts as a separator.
				end := i + len(k)
				if end < len(render) && !isSeparator(render[end]) {
					continue
				}
				for j := i; j < end; j++ {
					row.Highlight[j] = hl
				}
				i = end
				matched = true
				break
			}
			if matched {
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
		i++
	}

	changed := row.HlOpenComment != inComment
	row.HlOpenComment = inComment
	return changed
}

// highlightRowAndPropagate runs highlightRow and, while the open-comment
// flag keeps changing, walks forward re-highlighting the following rows.
// The walk stops at the first row whose flag stabilizes, which happens no
// later than the last row.
func (e *Editor) highlightRowAndPropagate(row *Row) {
	changed := e.highlightRow(row)
	for idx := row.Idx + 1; changed && idx < len(e.rows); idx++ {
		changed = e.highlightRow(e.rows[idx])
	}
}
