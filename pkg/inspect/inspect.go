// Package inspect renders binary Ion as a side-by-side table of raw hex
// and equivalent text Ion for human-friendly debugging. It walks a
// low-level cursor depth-first, accounts for the exact byte range of each
// syntactic element, and applies a skip/limit byte window that suppresses
// user values while still surfacing structural context.
package inspect

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"

	"github.com/ionspect/ionspect/pkg/ionbin"
)

// Options is the byte window for one inspection run.
type Options struct {
	// SkipBytes suppresses user values that end at or before this many
	// bytes into the stream. A value straddling the boundary is shown
	// whole. System values (version markers, symbol tables) are always
	// shown.
	SkipBytes int

	// LimitBytes stops the run once a value begins more than this many
	// bytes past SkipBytes. Zero means unbounded.
	LimitBytes int
}

// Two spaces per nesting level. The implicit top level is not indented.
const levelIndentation = "  "

const (
	versionMarkerHex  = "e0 01 00 ea"
	versionMarkerText = "// Ion 1.0 Version Marker"
	// Structural rows carry no hex payload, just a filler marker.
	structuralHex = "..."
)

// styles groups the color formatters used in the table. All of them
// degrade to plain text when color.NoColor is set.
type styles struct {
	title   *color.Color
	comment *color.Color
}

func newStyles() *styles {
	return &styles{
		title:   color.New(color.Bold, color.FgHiWhite),
		comment: color.New(color.Faint),
	}
}

// Inspect renders data, which must be a complete binary Ion stream, as a
// table on w. The byte window in opts restricts which user values appear.
func Inspect(data []byte, w io.Writer, opts Options) error {
	if opts.SkipBytes < 0 {
		return fmt.Errorf("skip bytes must not be negative, got %d", opts.SkipBytes)
	}
	if opts.LimitBytes < 0 {
		return fmt.Errorf("limit bytes must not be negative, got %d", opts.LimitBytes)
	}
	limit := opts.LimitBytes
	if limit == 0 {
		limit = math.MaxInt
	}

	st := newStyles()
	in := &inspector{
		cur:        ionbin.NewCursor(data),
		table:      newTableWriter(w, st),
		st:         st,
		skipBytes:  opts.SkipBytes,
		limitBytes: limit,
	}
	if err := in.table.writeHeader(); err != nil {
		return err
	}
	return in.inspectLevel()
}

// inspector holds the traversal state for one run. The hex, text, and
// comment buffers are scratch space reused across rows; every use resets
// them first.
type inspector struct {
	cur        *ionbin.Cursor
	table      *tableWriter
	st         *styles
	scalars    scalarRenderer
	skipBytes  int
	limitBytes int

	indent     []byte
	hexBuf     []byte
	textBuf    []byte
	commentBuf []byte
}

// inspectLevel displays every value at the cursor's current depth,
// recursing into containers. Bytes of values suppressed by the skip
// window are tallied per level and reported in one comment row when the
// first visible value of the level is reached.
func (in *inspector) inspectLevel() error {
	in.increaseIndentation()
	bytesSkipped := 0

	for {
		item, err := in.cur.Next()
		if err != nil {
			return err
		}
		switch item {
		case ionbin.ItemNone:
			in.decreaseIndentation()
			return nil
		case ionbin.ItemVersionMarker:
			if err := in.writeVersionMarker(); err != nil {
				return err
			}
			continue
		case ionbin.ItemSymbolTableAppend:
			if err := in.writeSymbolTableAppend(); err != nil {
				return err
			}
			continue
		case ionbin.ItemSymbolTableReset:
			if err := in.writeSymbolTableReset(); err != nil {
				return err
			}
			continue
		}

		span := in.cur.ValueSpan()
		if span.End <= in.skipBytes {
			bytesSkipped += span.Len()
			continue
		}

		bytesProcessed := span.Start - in.skipBytes
		if bytesProcessed < 0 {
			bytesProcessed = 0
		}
		if bytesProcessed >= in.limitBytes {
			message := "// --limit-bytes reached, ending."
			if in.cur.Depth() > 0 {
				message = "// --limit-bytes reached, stepping out."
			}
			err := in.table.writeRow(noOffset, noOffset, string(in.indent),
				structuralHex, in.st.comment.Sprint(message))
			if err != nil {
				return err
			}
			in.decreaseIndentation()
			return nil
		}

		if bytesSkipped > 0 {
			in.textBuf = in.textBuf[:0]
			in.textBuf = fmt.Appendf(in.textBuf, "// Skipped %d bytes of user-level data", bytesSkipped)
			err := in.table.writeRow(noOffset, noOffset, string(in.indent),
				structuralHex, in.st.comment.Sprint(string(in.textBuf)))
			if err != nil {
				return err
			}
			bytesSkipped = 0
		}

		if err := in.writeFieldIfPresent(); err != nil {
			return err
		}
		if err := in.writeAnnotationsIfPresent(); err != nil {
			return err
		}
		// The value itself or, for a container, its opening delimiter.
		if err := in.writeValue(); err != nil {
			return err
		}

		if typ := in.cur.Type(); typ.IsContainer() && !in.cur.IsNull() {
			closing := closingDelimiter(typ)
			if err := in.cur.StepIn(); err != nil {
				return err
			}
			if err := in.inspectLevel(); err != nil {
				return err
			}
			if err := in.cur.StepOut(); err != nil {
				return err
			}
			err := in.table.writeRow(noOffset, noOffset, string(in.indent), "", closing)
			if err != nil {
				return err
			}
		}
	}
}

func (in *inspector) increaseIndentation() {
	if in.cur.Depth() > 0 {
		in.indent = append(in.indent, levelIndentation...)
	}
}

func (in *inspector) decreaseIndentation() {
	if in.cur.Depth() > 0 && len(in.indent) >= len(levelIndentation) {
		in.indent = in.indent[:len(in.indent)-len(levelIndentation)]
	}
}

// writeFieldIfPresent emits the field name row when the enclosing
// container is a struct.
func (in *inspector) writeFieldIfPresent() error {
	id, ok := in.cur.FieldID()
	if !ok {
		return nil
	}
	in.hexBuf = appendHex(in.hexBuf[:0], in.cur.RawFieldIDBytes())

	in.textBuf = in.textBuf[:0]
	in.textBuf = fmt.Appendf(in.textBuf, "'%s':", in.cur.FieldName())
	in.commentBuf = in.commentBuf[:0]
	in.commentBuf = fmt.Appendf(in.commentBuf, " // $%d:", id)
	in.textBuf = append(in.textBuf, in.st.comment.Sprint(string(in.commentBuf))...)

	return in.table.writeRow(in.cur.FieldIDOffset(), in.cur.FieldIDLength(),
		string(in.indent), string(in.hexBuf), string(in.textBuf))
}

// writeAnnotationsIfPresent emits the annotations row when the value has
// one or more annotations.
func (in *inspector) writeAnnotationsIfPresent() error {
	ids := in.cur.AnnotationIDs()
	if len(ids) == 0 {
		return nil
	}
	in.hexBuf = appendHex(in.hexBuf[:0], in.cur.RawAnnotationsBytes())

	in.textBuf = in.textBuf[:0]
	in.textBuf = append(in.textBuf, '\'')
	for i, text := range in.cur.Annotations() {
		if i > 0 {
			in.textBuf = append(in.textBuf, "'::'"...)
		}
		in.textBuf = append(in.textBuf, text...)
	}
	in.textBuf = append(in.textBuf, "'::"...)

	in.commentBuf = in.commentBuf[:0]
	in.commentBuf = append(in.commentBuf, " // $"...)
	for i, id := range ids {
		if i > 0 {
			in.commentBuf = append(in.commentBuf, "::$"...)
		}
		in.commentBuf = fmt.Appendf(in.commentBuf, "%d", id)
	}
	in.commentBuf = append(in.commentBuf, "::"...)
	in.textBuf = append(in.textBuf, in.st.comment.Sprint(string(in.commentBuf))...)

	return in.table.writeRow(in.cur.AnnotationsOffset(), in.cur.AnnotationsLength(),
		string(in.indent), string(in.hexBuf), string(in.textBuf))
}

// writeValue emits the value row: full header+body hex and serialized
// text for scalars, header-only hex and the opening delimiter for
// containers. The reported length always spans the complete value.
func (in *inspector) writeValue() error {
	typ := in.cur.Type()
	isContainer := typ.IsContainer() && !in.cur.IsNull()

	in.textBuf = in.textBuf[:0]
	if isContainer {
		in.textBuf = append(in.textBuf, openingDelimiter(typ)...)
	} else {
		text, comment, err := in.scalars.render(in.cur)
		if err != nil {
			return err
		}
		in.textBuf = append(in.textBuf, text...)
		// Text Ion accepts trailing commas, so every value in a
		// container gets one, including the last.
		if in.cur.Depth() > 0 {
			in.textBuf = append(in.textBuf, ',')
		}
		if comment != "" {
			in.textBuf = append(in.textBuf, in.st.comment.Sprint(comment)...)
		}
	}

	in.hexBuf = appendHex(in.hexBuf[:0], in.cur.RawHeaderBytes())
	if !isContainer {
		// Containers defer their body hex to the nested values.
		in.hexBuf = append(in.hexBuf, ' ')
		in.hexBuf = appendHex(in.hexBuf, in.cur.RawValueBytes())
	}

	const typeDescriptorSize = 1
	length := typeDescriptorSize + in.cur.HeaderLength() + in.cur.ValueLength()
	return in.table.writeRow(in.cur.HeaderOffset(), length,
		string(in.indent), string(in.hexBuf), string(in.textBuf))
}

func openingDelimiter(t ionbin.Type) string {
	switch t {
	case ionbin.ListType:
		return "["
	case ionbin.SexpType:
		return "("
	default:
		return "{"
	}
}

func closingDelimiter(t ionbin.Type) string {
	switch t {
	case ionbin.ListType:
		return "]"
	case ionbin.SexpType:
		return ")"
	default:
		return "}"
	}
}

// appendHex appends src as space-separated two-digit hex groups.
func appendHex(dst []byte, src []byte) []byte {
	const digits = "0123456789abcdef"
	for i, b := range src {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = append(dst, digits[b>>4], digits[b&0x0F])
	}
	return dst
}
