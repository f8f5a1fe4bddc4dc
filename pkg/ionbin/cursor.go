package ionbin

// A Cursor walks binary Ion strictly forward, one value at a time. It
// never looks ahead of the value it is parked on, and it keeps the local
// symbol table current by consuming symbol table structs and version
// markers itself, surfacing them to the caller as structural items.

var versionMarker = []byte{0xE0, 0x01, 0x00, 0xEA}

// VersionMarker is the fixed four-octet signature that begins every
// binary Ion 1.0 stream.
func VersionMarker() []byte {
	marker := make([]byte, len(versionMarker))
	copy(marker, versionMarker)
	return marker
}

// HasVersionMarker reports whether data begins with the Ion 1.0 binary
// version marker.
func HasVersionMarker(data []byte) bool {
	if len(data) < len(versionMarker) {
		return false
	}
	for i, b := range versionMarker {
		if data[i] != b {
			return false
		}
	}
	return true
}

type level struct {
	end      int
	isStruct bool
}

// Cursor is a pull-based reader over a complete binary Ion buffer.
type Cursor struct {
	data   []byte
	pos    int
	levels []level
	symtab *SymbolTable

	// starting id of the most recent symbol table append
	appendStart int

	// state of the value the cursor is parked on
	typ          Type
	isNull       bool
	fieldSID     int // -1 when the enclosing container is not a struct
	fieldName    string
	fieldID      Span
	annotSIDs    []int
	annotTexts   []string
	annot        Span
	headerOffset int
	headerLen    int // extra length octets following the type descriptor
	body         Span
}

// NewCursor returns a cursor positioned before the first value of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{
		data:     data,
		fieldSID: -1,
		symtab:   NewSymbolTable(),
	}
}

// Depth is the current container nesting depth; zero at the top level.
func (c *Cursor) Depth() int {
	return len(c.levels)
}

// SymbolTable exposes the cursor's current symbol table for read access.
func (c *Cursor) SymbolTable() *SymbolTable {
	return c.symtab
}

// AppendStart is the first symbol id added by the most recent
// ItemSymbolTableAppend.
func (c *Cursor) AppendStart() int {
	return c.appendStart
}

func (c *Cursor) levelEnd() int {
	if len(c.levels) == 0 {
		return len(c.data)
	}
	return c.levels[len(c.levels)-1].end
}

func (c *Cursor) inStruct() bool {
	return len(c.levels) > 0 && c.levels[len(c.levels)-1].isStruct
}

func (c *Cursor) clearValue() {
	c.typ = NoType
	c.isNull = false
	c.fieldSID = -1
	c.fieldName = ""
	c.fieldID = Span{}
	c.annotSIDs = c.annotSIDs[:0]
	c.annotTexts = c.annotTexts[:0]
	c.annot = Span{}
	c.headerOffset = 0
	c.headerLen = 0
	c.body = Span{}
}

// Next advances to the next item at the current depth. It returns
// ItemNone when the current container (or the stream) is exhausted.
// Version markers and local symbol tables are consumed here and reported
// as structural items; they never appear as values.
func (c *Cursor) Next() (Item, error) {
	for {
		c.clearValue()
		end := c.levelEnd()
		if c.pos >= end {
			return ItemNone, nil
		}

		if len(c.levels) == 0 && c.data[c.pos] == 0xE0 {
			return c.readVersionMarker()
		}

		fieldStart := c.pos
		fieldSID := -1
		fieldLen := 0
		if c.inStruct() {
			sid, n, err := readVarUInt(c.data, c.pos)
			if err != nil {
				return ItemNone, err
			}
			fieldSID, fieldLen = sid, n
			c.pos += n
		}

		if c.pos >= end {
			return ItemNone, syntaxError(c.pos, "truncated value")
		}

		// NOP padding carries no value. A field name paired with NOP
		// padding inside a struct is discarded with it.
		if td := c.data[c.pos]; td>>4 == 0x0 && td&0x0F != 0x0F {
			if err := c.skipNopPad(end); err != nil {
				return ItemNone, err
			}
			continue
		}

		if c.data[c.pos]>>4 == 0xE {
			if err := c.parseAnnotationWrapper(end); err != nil {
				return ItemNone, err
			}
		} else if err := c.parseValueHeader(end); err != nil {
			return ItemNone, err
		}

		if fieldSID >= 0 {
			name, ok := c.symtab.TextFor(fieldSID)
			if !ok {
				return ItemNone, syntaxError(fieldStart, "field name $%d is not in the symbol table", fieldSID)
			}
			c.fieldSID = fieldSID
			c.fieldName = name
			c.fieldID = Span{Start: fieldStart, End: fieldStart + fieldLen}
		}

		// A top-level struct annotated $ion_symbol_table is a system
		// value. Apply it and report the change instead of the value.
		if len(c.levels) == 0 && c.typ == StructType && !c.isNull &&
			len(c.annotSIDs) > 0 && c.annotSIDs[0] == symbolIonSymbolTable {
			return c.processSymbolTable()
		}

		c.pos = c.body.End
		return ItemValue, nil
	}
}

func (c *Cursor) readVersionMarker() (Item, error) {
	if c.pos+len(versionMarker) > len(c.data) {
		return ItemNone, syntaxError(c.pos, "truncated version marker")
	}
	for i, b := range versionMarker {
		if c.data[c.pos+i] != b {
			return ItemNone, syntaxError(c.pos, "unsupported version marker %02x %02x %02x %02x",
				c.data[c.pos], c.data[c.pos+1], c.data[c.pos+2], c.data[c.pos+3])
		}
	}
	c.pos += len(versionMarker)
	c.symtab.Reset()
	return ItemVersionMarker, nil
}

func (c *Cursor) skipNopPad(end int) error {
	start := c.pos
	td := c.data[c.pos]
	length := int(td & 0x0F)
	c.pos++
	if length == 14 {
		n, consumed, err := readVarUInt(c.data, c.pos)
		if err != nil {
			return err
		}
		length = n
		c.pos += consumed
	}
	if c.pos+length > end {
		return syntaxError(start, "NOP pad runs past the enclosing container")
	}
	c.pos += length
	return nil
}

// parseValueHeader decodes the type descriptor (and any length octets) at
// c.pos, leaving c.pos at the start of the value body.
func (c *Cursor) parseValueHeader(end int) error {
	c.headerOffset = c.pos
	td := c.data[c.pos]
	code := td >> 4
	l := int(td & 0x0F)
	c.pos++
	c.headerLen = 0

	var bodyLen int
	switch code {
	case 0x0:
		// Only null.null reaches here; NOP pads were consumed earlier.
		c.typ = NullType
		c.isNull = true
	case 0x1:
		c.typ = BoolType
		switch l {
		case 0, 1:
		case 15:
			c.isNull = true
		default:
			return syntaxError(c.headerOffset, "invalid boolean encoding %#02x", td)
		}
	case 0x2, 0x3:
		c.typ = IntType
	case 0x4:
		c.typ = FloatType
	case 0x5:
		c.typ = DecimalType
	case 0x6:
		c.typ = TimestampType
	case 0x7:
		c.typ = SymbolType
	case 0x8:
		c.typ = StringType
	case 0x9:
		c.typ = ClobType
	case 0xA:
		c.typ = BlobType
	case 0xB:
		c.typ = ListType
	case 0xC:
		c.typ = SexpType
	case 0xD:
		c.typ = StructType
	case 0xE:
		return syntaxError(c.headerOffset, "annotations cannot wrap annotations")
	default:
		return syntaxError(c.headerOffset, "reserved type descriptor %#02x", td)
	}

	switch {
	case l == 15:
		c.isNull = true
	case c.typ == NullType || c.typ == BoolType:
		// No body; L is the value (bool) or 15 (null).
	case c.typ == StructType && l == 1:
		// Sorted struct: the length is always a VarUInt.
		n, consumed, err := readVarUInt(c.data, c.pos)
		if err != nil {
			return err
		}
		bodyLen = n
		c.headerLen = consumed
		c.pos += consumed
	case l == 14:
		n, consumed, err := readVarUInt(c.data, c.pos)
		if err != nil {
			return err
		}
		bodyLen = n
		c.headerLen = consumed
		c.pos += consumed
	default:
		bodyLen = l
	}

	c.body = Span{Start: c.pos, End: c.pos + bodyLen}
	if c.body.End > end {
		return syntaxError(c.headerOffset, "%s value runs past the enclosing container", c.typ)
	}
	return nil
}

// parseAnnotationWrapper decodes an annotation wrapper and the value it
// wraps. The annotation span covers the wrapper header and the symbol
// ids; the header span belongs to the wrapped value.
func (c *Cursor) parseAnnotationWrapper(end int) error {
	start := c.pos
	td := c.data[c.pos]
	l := int(td & 0x0F)
	c.pos++
	if l == 15 {
		return syntaxError(start, "null annotation wrapper")
	}
	wrapLen := l
	if l == 14 {
		n, consumed, err := readVarUInt(c.data, c.pos)
		if err != nil {
			return err
		}
		wrapLen = n
		c.pos += consumed
	}
	wrapEnd := c.pos + wrapLen
	if wrapEnd > end {
		return syntaxError(start, "annotation wrapper runs past the enclosing container")
	}

	annotLen, consumed, err := readVarUInt(c.data, c.pos)
	if err != nil {
		return err
	}
	c.pos += consumed
	sidEnd := c.pos + annotLen
	if annotLen == 0 || sidEnd >= wrapEnd {
		return syntaxError(start, "annotation wrapper without a wrapped value")
	}
	for c.pos < sidEnd {
		sid, n, err := readVarUInt(c.data, c.pos)
		if err != nil {
			return err
		}
		if c.pos+n > sidEnd {
			return syntaxError(c.pos, "annotation symbol id crosses the annotation list boundary")
		}
		text, ok := c.symtab.TextFor(sid)
		if !ok {
			return syntaxError(c.pos, "annotation $%d is not in the symbol table", sid)
		}
		c.annotSIDs = append(c.annotSIDs, sid)
		c.annotTexts = append(c.annotTexts, text)
		c.pos += n
	}
	c.annot = Span{Start: start, End: c.pos}

	if inner := c.data[c.pos]; inner>>4 == 0x0 && inner&0x0F != 0x0F {
		return syntaxError(c.pos, "annotations cannot wrap NOP padding")
	}
	if err := c.parseValueHeader(wrapEnd); err != nil {
		return err
	}
	if c.body.End != wrapEnd {
		return syntaxError(start, "annotation wrapper length does not match its value")
	}
	return nil
}

// processSymbolTable consumes the local symbol table struct the cursor is
// parked on, applies it, and reports whether it appended to or replaced
// the current table.
func (c *Cursor) processSymbolTable() (Item, error) {
	structBody := c.body
	c.levels = append(c.levels, level{end: structBody.End, isStruct: true})
	c.pos = structBody.Start

	isAppend := false
	var pending []symbol
	for {
		item, err := c.Next()
		if err != nil {
			return ItemNone, err
		}
		if item == ItemNone {
			break
		}
		switch c.fieldSID {
		case symbolImports:
			switch {
			case c.typ == SymbolType && !c.isNull:
				sid, err := c.ReadSymbolID()
				if err != nil {
					return ItemNone, err
				}
				isAppend = sid == symbolIonSymbolTable
			case c.typ == ListType && !c.isNull:
				return ItemNone, syntaxError(c.headerOffset, "shared symbol table imports are not supported")
			}
		case symbolSymbols:
			if c.typ != ListType || c.isNull {
				continue
			}
			if err := c.StepIn(); err != nil {
				return ItemNone, err
			}
			for {
				item, err := c.Next()
				if err != nil {
					return ItemNone, err
				}
				if item == ItemNone {
					break
				}
				if c.typ == StringType && !c.isNull {
					text, err := c.ReadString()
					if err != nil {
						return ItemNone, err
					}
					pending = append(pending, symbol{text: text, known: true})
				} else {
					// Non-string entries still claim a symbol id.
					pending = append(pending, symbol{})
				}
			}
			if err := c.StepOut(); err != nil {
				return ItemNone, err
			}
		}
	}
	c.levels = c.levels[:len(c.levels)-1]
	c.pos = structBody.End
	c.clearValue()

	item := ItemSymbolTableReset
	if isAppend {
		item = ItemSymbolTableAppend
	} else {
		c.symtab.Reset()
	}
	c.appendStart = c.symtab.Len()
	for _, s := range pending {
		c.symtab.append(s.text, s.known)
	}
	return item, nil
}

// StepIn positions the cursor before the first child of the container it
// is parked on.
func (c *Cursor) StepIn() error {
	if !c.typ.IsContainer() {
		return syntaxError(c.headerOffset, "cannot step in to a %s", c.typ)
	}
	if c.isNull {
		return syntaxError(c.headerOffset, "cannot step in to a null %s", c.typ)
	}
	c.levels = append(c.levels, level{end: c.body.End, isStruct: c.typ == StructType})
	c.pos = c.body.Start
	c.clearValue()
	return nil
}

// StepOut positions the cursor after the container it stepped in to,
// regardless of how many of its children were visited.
func (c *Cursor) StepOut() error {
	if len(c.levels) == 0 {
		return syntaxError(c.pos, "cannot step out at the top level")
	}
	top := c.levels[len(c.levels)-1]
	c.levels = c.levels[:len(c.levels)-1]
	c.pos = top.end
	c.clearValue()
	return nil
}

// Type is the Ion type of the current value, or NoType when the cursor is
// not parked on a value.
func (c *Cursor) Type() Type {
	return c.typ
}

// IsNull reports whether the current value is a typed null.
func (c *Cursor) IsNull() bool {
	return c.isNull
}

// FieldID returns the symbol id of the current value's field name. ok is
// false when the enclosing container is not a struct.
func (c *Cursor) FieldID() (int, bool) {
	return c.fieldSID, c.fieldSID >= 0
}

// FieldName is the resolved field name text; empty when FieldID is absent.
func (c *Cursor) FieldName() string {
	return c.fieldName
}

// FieldIDOffset is the offset of the field name's first octet.
func (c *Cursor) FieldIDOffset() int {
	return c.fieldID.Start
}

// FieldIDLength is the octet length of the field name; zero when absent.
func (c *Cursor) FieldIDLength() int {
	return c.fieldID.Len()
}

// AnnotationIDs are the symbol ids of the current value's annotations, in
// stream order. Empty when the value is unannotated.
func (c *Cursor) AnnotationIDs() []int {
	return c.annotSIDs
}

// Annotations are the resolved annotation texts, parallel to AnnotationIDs.
func (c *Cursor) Annotations() []string {
	return c.annotTexts
}

// AnnotationsOffset is the offset of the annotation wrapper's first octet.
func (c *Cursor) AnnotationsOffset() int {
	return c.annot.Start
}

// AnnotationsLength is the octet length of the annotation wrapper header
// and its symbol ids; zero when the value is unannotated.
func (c *Cursor) AnnotationsLength() int {
	return c.annot.Len()
}

// HeaderOffset is the offset of the current value's type descriptor.
func (c *Cursor) HeaderOffset() int {
	return c.headerOffset
}

// HeaderLength is the number of length octets following the type
// descriptor; the descriptor itself is not counted.
func (c *Cursor) HeaderLength() int {
	return c.headerLen
}

// ValueLength is the octet length of the current value's body. For
// containers this includes all nested content.
func (c *Cursor) ValueLength() int {
	return c.body.Len()
}

// ValueSpan is the full byte range of the current value: from the first
// octet of its field name or annotations (when present) through the end
// of its body.
func (c *Cursor) ValueSpan() Span {
	start := c.headerOffset
	if c.annot.Len() > 0 {
		start = c.annot.Start
	}
	if c.fieldID.Len() > 0 {
		start = c.fieldID.Start
	}
	return Span{Start: start, End: c.body.End}
}

// RawFieldIDBytes is the encoded field name; nil when absent.
func (c *Cursor) RawFieldIDBytes() []byte {
	if c.fieldID.Len() == 0 {
		return nil
	}
	return c.data[c.fieldID.Start:c.fieldID.End]
}

// RawAnnotationsBytes is the encoded annotation wrapper header and symbol
// ids; nil when the value is unannotated.
func (c *Cursor) RawAnnotationsBytes() []byte {
	if c.annot.Len() == 0 {
		return nil
	}
	return c.data[c.annot.Start:c.annot.End]
}

// RawHeaderBytes is the type descriptor plus any length octets.
func (c *Cursor) RawHeaderBytes() []byte {
	return c.data[c.headerOffset:c.body.Start]
}

// RawValueBytes is the encoded value body.
func (c *Cursor) RawValueBytes() []byte {
	return c.data[c.body.Start:c.body.End]
}
