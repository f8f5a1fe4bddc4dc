package inspect

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/amazon-ion/ion-go/ion"

	"github.com/ionspect/ionspect/pkg/ionbin"
)

// scalarRenderer converts one decoded scalar into its canonical text Ion
// form using the ion-go text writer. The output buffer is reused across
// values; each call starts from a clean slate.
type scalarRenderer struct {
	buf bytes.Buffer
}

// render returns the text form of the scalar the cursor is parked on and,
// for symbol values, a comment carrying the numeric symbol id.
func (r *scalarRenderer) render(cur *ionbin.Cursor) (text, comment string, err error) {
	r.buf.Reset()
	w := ion.NewTextWriter(&r.buf)

	switch {
	case cur.Type() == ionbin.NullType:
		err = w.WriteNull()
	case cur.IsNull():
		err = w.WriteNullType(ionType(cur.Type()))
	default:
		switch cur.Type() {
		case ionbin.BoolType:
			v, readErr := cur.ReadBool()
			if readErr != nil {
				return "", "", readErr
			}
			err = w.WriteBool(v)
		case ionbin.IntType:
			v, readErr := cur.ReadBigInt()
			if readErr != nil {
				return "", "", readErr
			}
			err = w.WriteBigInt(v)
		case ionbin.FloatType:
			v, readErr := cur.ReadFloat()
			if readErr != nil {
				return "", "", readErr
			}
			err = w.WriteFloat(v)
		case ionbin.DecimalType:
			v, readErr := cur.ReadDecimal()
			if readErr != nil {
				return "", "", readErr
			}
			dec, parseErr := ion.ParseDecimal(decimalText(v))
			if parseErr != nil {
				return "", "", fmt.Errorf("rebuilding decimal: %w", parseErr)
			}
			err = w.WriteDecimal(dec)
		case ionbin.TimestampType:
			v, readErr := cur.ReadTimestamp()
			if readErr != nil {
				return "", "", readErr
			}
			err = w.WriteTimestamp(ionTimestamp(v))
		case ionbin.SymbolType:
			sid, readErr := cur.ReadSymbolID()
			if readErr != nil {
				return "", "", readErr
			}
			resolved, ok := cur.SymbolTable().TextFor(sid)
			if !ok {
				return "", "", fmt.Errorf("symbol $%d is not in the symbol table", sid)
			}
			comment = fmt.Sprintf(" // $%d", sid)
			err = w.WriteSymbolFromString(resolved)
		case ionbin.StringType:
			v, readErr := cur.ReadString()
			if readErr != nil {
				return "", "", readErr
			}
			err = w.WriteString(v)
		case ionbin.ClobType:
			v, readErr := cur.ReadLob()
			if readErr != nil {
				return "", "", readErr
			}
			err = w.WriteClob(v)
		case ionbin.BlobType:
			v, readErr := cur.ReadLob()
			if readErr != nil {
				return "", "", readErr
			}
			err = w.WriteBlob(v)
		default:
			return "", "", fmt.Errorf("cannot render a %s as a scalar", cur.Type())
		}
	}
	if err != nil {
		return "", "", fmt.Errorf("serializing %s: %w", cur.Type(), err)
	}
	if err := w.Finish(); err != nil {
		return "", "", fmt.Errorf("serializing %s: %w", cur.Type(), err)
	}
	return strings.TrimSpace(r.buf.String()), comment, nil
}

var ionTypes = map[ionbin.Type]ion.Type{
	ionbin.NullType:      ion.NullType,
	ionbin.BoolType:      ion.BoolType,
	ionbin.IntType:       ion.IntType,
	ionbin.FloatType:     ion.FloatType,
	ionbin.DecimalType:   ion.DecimalType,
	ionbin.TimestampType: ion.TimestampType,
	ionbin.SymbolType:    ion.SymbolType,
	ionbin.StringType:    ion.StringType,
	ionbin.ClobType:      ion.ClobType,
	ionbin.BlobType:      ion.BlobType,
	ionbin.ListType:      ion.ListType,
	ionbin.SexpType:      ion.SexpType,
	ionbin.StructType:    ion.StructType,
}

func ionType(t ionbin.Type) ion.Type {
	if mapped, ok := ionTypes[t]; ok {
		return mapped
	}
	return ion.NoType
}

// decimalText renders a decoded decimal in coefficient/exponent notation,
// which ion.ParseDecimal normalizes to the canonical text form.
func decimalText(d ionbin.Decimal) string {
	coefficient := d.Coefficient.String()
	if d.NegativeZero {
		coefficient = "-" + coefficient
	}
	return fmt.Sprintf("%sd%d", coefficient, d.Exponent)
}

func ionTimestamp(ts ionbin.Timestamp) ion.Timestamp {
	loc := time.UTC
	kind := ion.TimezoneUTC
	switch {
	case ts.UnknownOffset:
		kind = ion.TimezoneUnspecified
	case ts.OffsetMinutes != 0:
		loc = time.FixedZone("", ts.OffsetMinutes*60)
		kind = ion.TimezoneLocal
	}
	// Binary timestamps store their components in UTC; the offset is
	// applied for display only.
	t := time.Date(ts.Year, time.Month(ts.Month), ts.Day,
		ts.Hour, ts.Minute, ts.Second, ts.Nanoseconds, time.UTC).In(loc)

	switch ts.Precision {
	case ionbin.PrecisionYear:
		return ion.NewDateTimestamp(t, ion.TimestampPrecisionYear)
	case ionbin.PrecisionMonth:
		return ion.NewDateTimestamp(t, ion.TimestampPrecisionMonth)
	case ionbin.PrecisionDay:
		return ion.NewDateTimestamp(t, ion.TimestampPrecisionDay)
	case ionbin.PrecisionMinute:
		return ion.NewTimestamp(t, ion.TimestampPrecisionMinute, kind)
	case ionbin.PrecisionSecond:
		return ion.NewTimestamp(t, ion.TimestampPrecisionSecond, kind)
	default:
		return ion.NewTimestampWithFractionalSeconds(t,
			ion.TimestampPrecisionNanosecond, kind, uint8(ts.FractionDigits))
	}
}
