package jsonyx

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// defaultColumns is used when the COLUMNS environment variable is unset or
// unparsable, matching a conservative terminal width.
const defaultColumns = 80

// SyntaxError reports a malformed JSONYX document. It always carries a
// (Offset, EndOffset) byte-range pair into the line containing the error,
// following original_source/src/jsonyx/__init__.py's JSONSyntaxError.
type SyntaxError struct {
	Msg        string
	Filename   string
	Doc        string
	Lineno     int
	Colno      int
	Offset     int
	EndOffset  int
	Text       string
}

// NewSyntaxError builds a SyntaxError for the half-open byte range
// [start, end) of doc. The excerpt width is the COLUMNS environment
// variable, or defaultColumns when that is unset, less four columns for
// the rendered indent.
func NewSyntaxError(msg, filename, doc string, start, end int) *SyntaxError {
	columns := terminalColumns()
	lineno, colno, offset, endOffset, text := position(doc, start, end, columns)
	return &SyntaxError{
		Msg: msg, Filename: filename, Doc: doc,
		Lineno: lineno, Colno: colno,
		Offset: offset, EndOffset: endOffset, Text: text,
	}
}

func terminalColumns() int {
	if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 4 {
			return n - 4 // four leading indent spaces in the rendered frame
		}
	}
	return defaultColumns - 4
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: line %d column %d (char %d)", e.Msg, e.Lineno, e.Colno, e.Offset)
}

// Format renders e the way format_syntax_error renders a JSONSyntaxError:
// a file/line/column header, the offending line, and a caret underline.
func (e *SyntaxError) Format() string {
	selLen := e.EndOffset - e.Offset
	if selLen < 0 {
		selLen = 0
	}
	caret := strings.Repeat(" ", e.Offset-1) + strings.Repeat("^", selLen)
	return fmt.Sprintf(
		"  File %q, line %d, column %d\n    %s\n    %s\njsonyx.SyntaxError: %s",
		e.Filename, e.Lineno, e.Colno, e.Text, caret, e.Msg,
	)
}

// ValueError reports that a well-formed value could not be serialized,
// e.g. a signaling-NaN Decimal reaching the encoder.
type ValueError struct {
	Msg string
}

func (e *ValueError) Error() string { return e.Msg }
