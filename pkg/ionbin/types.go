// Package ionbin implements a low-level pull cursor over binary Ion 1.0
// data. Unlike a general-purpose Ion reader, the cursor reports the exact
// byte offset and length of every syntactic part it decodes (field name,
// annotation wrapper, value header, value body), which is what a hex
// inspector needs to line binary up against text.
package ionbin

import "fmt"

// Type identifies the Ion type of the value the cursor is parked on.
type Type int

const (
	NoType Type = iota
	NullType
	BoolType
	IntType
	FloatType
	DecimalType
	TimestampType
	SymbolType
	StringType
	ClobType
	BlobType
	ListType
	SexpType
	StructType
)

var typeNames = map[Type]string{
	NoType:        "none",
	NullType:      "null",
	BoolType:      "bool",
	IntType:       "int",
	FloatType:     "float",
	DecimalType:   "decimal",
	TimestampType: "timestamp",
	SymbolType:    "symbol",
	StringType:    "string",
	ClobType:      "clob",
	BlobType:      "blob",
	ListType:      "list",
	SexpType:      "sexp",
	StructType:    "struct",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// IsContainer reports whether values of this type hold nested values.
func (t Type) IsContainer() bool {
	return t == ListType || t == SexpType || t == StructType
}

// Item is what a call to Cursor.Next produced. Structural items (version
// markers and symbol table changes) are returned inline rather than
// delivered through a callback so that the caller's error handling stays
// linear.
type Item int

const (
	// ItemNone means there are no more values at the current depth.
	ItemNone Item = iota
	// ItemValue means the cursor is parked on a user-level value.
	ItemValue
	// ItemVersionMarker means an Ion 1.0 version marker was consumed.
	// The symbol table has been reset to the system table.
	ItemVersionMarker
	// ItemSymbolTableAppend means a local symbol table struct extended
	// the current table. Cursor.AppendStart reports the first new id.
	ItemSymbolTableAppend
	// ItemSymbolTableReset means a local symbol table struct replaced
	// the current table.
	ItemSymbolTableReset
)

// SyntaxError describes malformed binary Ion at a specific offset.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

func syntaxError(offset int, format string, args ...interface{}) error {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// Span is a half-open byte range [Start, End) in the source buffer.
type Span struct {
	Start int
	End   int
}

// Len is the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}
