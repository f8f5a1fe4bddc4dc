package inspect

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// The table layout is fixed so output can be diffed against fixtures:
// right-aligned offset and length columns, a hex column holding eight
// "xx " groups per row, and a text column prefixed by the caller's
// indentation. Hex runs longer than one row wrap onto continuation rows
// with blank offset/length columns.
const (
	columnDelimiter   = " | "
	charsPerHexByte   = 3
	hexBytesPerRow    = 8
	hexColumnWidth    = hexBytesPerRow * charsPerHexByte
	numberColumnWidth = 9
	titleColumnWidth  = 24
)

// noOffset marks a row without offset/length columns (structural rows,
// comments, closing delimiters).
const noOffset = -1

type tableWriter struct {
	w   io.Writer
	st  *styles
	buf bytes.Buffer // scratch; each row is assembled here then written whole
}

func newTableWriter(w io.Writer, st *styles) *tableWriter {
	return &tableWriter{w: w, st: st}
}

// writeHeader prints the decorative rule, the column titles, and a second
// rule, using the same fixed widths as the rows.
func (t *tableWriter) writeHeader() error {
	rule := strings.Repeat("-", 2*titleColumnWidth+2*numberColumnWidth+3*len(columnDelimiter))

	b := &t.buf
	b.Reset()
	b.WriteString(rule)
	b.WriteByte('\n')
	b.WriteString(t.st.title.Sprint(center("Offset", numberColumnWidth)))
	b.WriteString(columnDelimiter)
	b.WriteString(t.st.title.Sprint(center("Length", numberColumnWidth)))
	b.WriteString(columnDelimiter)
	b.WriteString(t.st.title.Sprint(center("Binary Ion", titleColumnWidth)))
	b.WriteString(columnDelimiter)
	b.WriteString(t.st.title.Sprint(center("Text Ion", titleColumnWidth)))
	b.WriteByte('\n')
	b.WriteString(rule)
	b.WriteByte('\n')

	if _, err := t.w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	return nil
}

// writeRow emits one logical row. offset and length may be noOffset. hex
// must contain only single-byte characters (hex digits and spaces); text
// may carry ANSI color codes since it is the final column.
func (t *tableWriter) writeRow(offset, length int, indentation, hex, text string) error {
	b := &t.buf
	b.Reset()

	writeNumberColumn(b, offset)
	b.WriteString(columnDelimiter)
	writeNumberColumn(b, length)
	b.WriteString(columnDelimiter)

	first := hex
	if len(first) > hexColumnWidth {
		first = hex[:hexColumnWidth]
	}
	b.WriteString(first)
	pad(b, hexColumnWidth-len(first))
	b.WriteString(columnDelimiter)
	b.WriteByte(' ')
	b.WriteString(indentation)
	b.WriteString(text)
	b.WriteByte('\n')

	// Continuation rows for the remaining hex, if any.
	for written := hexColumnWidth; written < len(hex); written += hexColumnWidth {
		writeNumberColumn(b, noOffset)
		b.WriteString(columnDelimiter)
		writeNumberColumn(b, noOffset)
		b.WriteString(columnDelimiter)
		chunk := hex[written:]
		if len(chunk) > hexColumnWidth {
			chunk = chunk[:hexColumnWidth]
		}
		b.WriteString(chunk)
		pad(b, hexColumnWidth-len(chunk))
		b.WriteString(columnDelimiter)
		b.WriteByte('\n')
	}

	if _, err := t.w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("writing table row: %w", err)
	}
	return nil
}

func writeNumberColumn(b *bytes.Buffer, n int) {
	if n < 0 {
		pad(b, numberColumnWidth)
		return
	}
	fmt.Fprintf(b, "%*d", numberColumnWidth, n)
}

func pad(b *bytes.Buffer, n int) {
	for i := 0; i < n; i++ {
		b.WriteByte(' ')
	}
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
