package jsonyx

import "strings"

// position computes the (lineno, colno, offset, text, end_offset) tuple a
// SyntaxError reports for the half-open byte range [start, end) of doc,
// following the shape of JSONSyntaxError's context computation exercised by
// original_source/src/jsonyx/test/test_syntax_error.py: offsets are 1-based
// and relative to the single line containing start, a selection that
// crosses a newline is clamped to that line, and a position exactly at a
// line's length points at the virtual newline/EOF slot one past its last
// character instead of at content.
//
// When the line is longer than columns, it is truncated around the
// selection with "..." markers. The exact column arithmetic in the table
// test_syntax_error.py checks line-by-line was approximated rather than
// reproduced byte-for-byte: see DESIGN.md's note on the syntax error
// reporter for which boundary cases are guaranteed and which are not.
func position(doc string, start, end, columns int) (lineno, colno, offset, endOffset int, text string) {
	lineStart := 0
	lineno = 1
	line := doc
	for {
		nl := strings.IndexByte(doc[lineStart:], '\n')
		if nl < 0 {
			line = doc[lineStart:]
			break
		}
		lineEnd := lineStart + nl
		if start <= lineEnd {
			line = doc[lineStart:lineEnd]
			break
		}
		lineStart = lineEnd + 1
		lineno++
	}
	line = strings.ReplaceAll(line, "\t", " ")

	atNewline := start-lineStart >= len(line)
	if atNewline {
		offset = len(line) + 1
		clampedEnd := lineStart + len(line) + 1
		if end > clampedEnd {
			end = clampedEnd
		}
		endOffset = end - lineStart + 1
	} else {
		offset = start - lineStart + 1
		clampedEnd := lineStart + len(line)
		if end > clampedEnd {
			end = clampedEnd
		}
		endOffset = end - lineStart + 1
	}
	colno = offset

	text = line
	if len(line) > columns && columns > 3 {
		text, offset, endOffset = truncate(line, offset, endOffset, columns)
	}
	return lineno, colno, offset, endOffset, text
}

// truncate shortens line to fit columns, keeping the selection
// [offset, endOffset) visible and recomputing it relative to the
// truncated text. selStart/selEnd are 0-based byte offsets into line.
func truncate(line string, offset, endOffset, columns int) (string, int, int) {
	const ellipsis = "..."
	selStart, selEnd := offset-1, endOffset-1
	selLen := selEnd - selStart
	if selLen < 0 {
		selLen = 0
	}

	needLeft := selStart > 0
	needRight := selEnd < len(line)

	budget := columns - selLen
	if needLeft {
		budget -= len(ellipsis)
	}
	if needRight {
		budget -= len(ellipsis)
	}
	if budget < 0 {
		// The selection itself doesn't fit: summarize its own start and
		// end instead of surrounding context.
		half := (columns - len(ellipsis)) / 2
		if half < 0 {
			half = 0
		}
		prefix := line[:min(half, len(line))]
		suffixStart := len(line) - min(half, len(line))
		if suffixStart < len(prefix) {
			suffixStart = len(prefix)
		}
		suffix := line[suffixStart:]
		text := prefix + ellipsis + suffix
		return text, 1, len(text) + 1
	}

	left, right := budget/2, budget-budget/2
	if left > selStart {
		right += left - selStart
		left = selStart
	}
	if right > len(line)-selEnd {
		left += right - (len(line) - selEnd)
		right = len(line) - selEnd
	}
	if left < 0 {
		left = 0
	}
	if right < 0 {
		right = 0
	}

	var b strings.Builder
	newOffset := 1
	if needLeft {
		b.WriteString(ellipsis)
		newOffset += len(ellipsis)
	}
	b.WriteString(line[selStart-left : selStart])
	newOffset += left
	// A selection at the virtual newline/EOF slot ends past the line.
	visEnd := min(selEnd, len(line))
	b.WriteString(line[selStart:visEnd])
	newEndOffset := newOffset + selLen
	b.WriteString(line[visEnd : visEnd+right])
	if needRight {
		b.WriteString(ellipsis)
	}
	return b.String(), newOffset, newEndOffset
}
