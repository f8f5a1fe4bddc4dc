package ionbin

import (
	"encoding/binary"
	"math"
	"math/big"
	"unicode/utf8"
)

// Typed reads for the scalar value the cursor is parked on. Each read
// decodes from the recorded body span; none of them move the cursor.

// Decimal is an arbitrary-precision decimal: Coefficient * 10^Exponent.
// NegativeZero distinguishes -0d0 and friends, which a big.Int cannot.
type Decimal struct {
	Coefficient  *big.Int
	Exponent     int
	NegativeZero bool
}

// TimestampPrecision says how many components of a Timestamp were present
// in the encoding.
type TimestampPrecision int

const (
	PrecisionYear TimestampPrecision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionMinute
	PrecisionSecond
	PrecisionFractional
)

// Timestamp is a decoded timestamp. The date/time components are in UTC;
// OffsetMinutes is the local offset to apply for display. UnknownOffset
// marks the distinguished negative-zero offset encoding.
type Timestamp struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Nanoseconds          int
	FractionDigits       int
	OffsetMinutes        int
	UnknownOffset        bool
	Precision            TimestampPrecision
}

func (c *Cursor) scalarBody(want Type) ([]byte, error) {
	if c.typ != want {
		return nil, syntaxError(c.headerOffset, "cannot read a %s as a %s", c.typ, want)
	}
	if c.isNull {
		return nil, syntaxError(c.headerOffset, "cannot read a null.%s", c.typ)
	}
	return c.data[c.body.Start:c.body.End], nil
}

// ReadBool reads the current boolean value.
func (c *Cursor) ReadBool() (bool, error) {
	if _, err := c.scalarBody(BoolType); err != nil {
		return false, err
	}
	return c.data[c.headerOffset]&0x0F == 1, nil
}

// ReadBigInt reads the current integer value at full precision.
func (c *Cursor) ReadBigInt() (*big.Int, error) {
	body, err := c.scalarBody(IntType)
	if err != nil {
		return nil, err
	}
	value := readBigUInt(body)
	if c.data[c.headerOffset]>>4 == 0x3 {
		if value.Sign() == 0 {
			return nil, syntaxError(c.headerOffset, "negative integer with zero magnitude")
		}
		value.Neg(value)
	}
	return value, nil
}

// ReadFloat reads the current float value.
func (c *Cursor) ReadFloat() (float64, error) {
	body, err := c.scalarBody(FloatType)
	if err != nil {
		return 0, err
	}
	switch len(body) {
	case 0:
		return 0, nil
	case 4:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(body))), nil
	case 8:
		return math.Float64frombits(binary.BigEndian.Uint64(body)), nil
	default:
		return 0, syntaxError(c.headerOffset, "float body must be 0, 4, or 8 octets, got %d", len(body))
	}
}

// ReadDecimal reads the current decimal value.
func (c *Cursor) ReadDecimal() (Decimal, error) {
	body, err := c.scalarBody(DecimalType)
	if err != nil {
		return Decimal{}, err
	}
	if len(body) == 0 {
		return Decimal{Coefficient: new(big.Int)}, nil
	}
	exponent, _, n, err := readVarInt(body, 0)
	if err != nil {
		return Decimal{}, err
	}
	coefficient, negZero := readInt(body[n:])
	return Decimal{
		Coefficient:  coefficient,
		Exponent:     exponent,
		NegativeZero: negZero,
	}, nil
}

// ReadTimestamp reads the current timestamp value.
func (c *Cursor) ReadTimestamp() (Timestamp, error) {
	body, err := c.scalarBody(TimestampType)
	if err != nil {
		return Timestamp{}, err
	}
	offset, offsetNegZero, n, err := readVarInt(body, 0)
	if err != nil {
		return Timestamp{}, err
	}
	ts := Timestamp{
		Month:         1,
		Day:           1,
		OffsetMinutes: offset,
		UnknownOffset: offsetNegZero,
		Precision:     PrecisionYear,
	}
	pos := n

	next := func() (int, bool, error) {
		if pos >= len(body) {
			return 0, false, nil
		}
		v, n, err := readVarUInt(body, pos)
		if err != nil {
			return 0, false, err
		}
		pos += n
		return v, true, nil
	}

	year, ok, err := next()
	if err != nil {
		return Timestamp{}, err
	}
	if !ok {
		return Timestamp{}, syntaxError(c.headerOffset, "timestamp without a year")
	}
	ts.Year = year

	fields := []struct {
		dst       *int
		precision TimestampPrecision
	}{
		{&ts.Month, PrecisionMonth},
		{&ts.Day, PrecisionDay},
		{&ts.Hour, PrecisionMinute},
		{&ts.Minute, PrecisionMinute},
		{&ts.Second, PrecisionSecond},
	}
	for _, f := range fields {
		v, ok, err := next()
		if err != nil {
			return Timestamp{}, err
		}
		if !ok {
			if f.dst == &ts.Minute && ts.Precision == PrecisionMinute {
				return Timestamp{}, syntaxError(c.headerOffset, "timestamp hour without a minute")
			}
			return ts, nil
		}
		*f.dst = v
		ts.Precision = f.precision
	}

	if pos < len(body) {
		fracExp, _, n, err := readVarInt(body, pos)
		if err != nil {
			return Timestamp{}, err
		}
		pos += n
		coefficient, _ := readInt(body[pos:])
		if coefficient.Sign() < 0 || fracExp > 0 {
			return Timestamp{}, syntaxError(c.headerOffset, "invalid timestamp fraction")
		}
		digits := -fracExp
		if digits > 9 || !coefficient.IsInt64() {
			return Timestamp{}, syntaxError(c.headerOffset, "timestamp fraction precision beyond nanoseconds")
		}
		if digits > 0 || coefficient.Sign() != 0 {
			ns := coefficient.Int64()
			for i := digits; i < 9; i++ {
				ns *= 10
			}
			if ns >= int64(1e9) {
				return Timestamp{}, syntaxError(c.headerOffset, "timestamp fraction is not less than one second")
			}
			ts.Nanoseconds = int(ns)
			ts.FractionDigits = digits
			ts.Precision = PrecisionFractional
		}
	}
	return ts, nil
}

// ReadSymbolID reads the current symbol value's id. Resolution against
// the symbol table is the caller's concern.
func (c *Cursor) ReadSymbolID() (int, error) {
	body, err := c.scalarBody(SymbolType)
	if err != nil {
		return 0, err
	}
	id, err := readUInt(body)
	if err != nil {
		return 0, syntaxError(c.headerOffset, "invalid symbol id: %v", err)
	}
	return id, nil
}

// ReadString reads the current string value, validating its UTF-8.
func (c *Cursor) ReadString() (string, error) {
	body, err := c.scalarBody(StringType)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(body) {
		return "", syntaxError(c.headerOffset, "string body is not valid UTF-8")
	}
	return string(body), nil
}

// ReadLob reads the current clob or blob body.
func (c *Cursor) ReadLob() ([]byte, error) {
	if c.typ != ClobType && c.typ != BlobType {
		return nil, syntaxError(c.headerOffset, "cannot read a %s as a lob", c.typ)
	}
	if c.isNull {
		return nil, syntaxError(c.headerOffset, "cannot read a null.%s", c.typ)
	}
	return c.data[c.body.Start:c.body.End], nil
}
