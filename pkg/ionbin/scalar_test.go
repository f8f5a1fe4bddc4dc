package ionbin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parkedOn returns a cursor parked on the first value of data.
func parkedOn(t *testing.T, data []byte) *Cursor {
	t.Helper()
	c := NewCursor(data)
	requireNext(t, c, ItemValue)
	return c
}

func TestReadBool(t *testing.T) {
	c := parkedOn(t, []byte{0x11})
	v, err := c.ReadBool()
	require.NoError(t, err)
	assert.True(t, v)

	c = parkedOn(t, []byte{0x10})
	v, err = c.ReadBool()
	require.NoError(t, err)
	assert.False(t, v)

	c = parkedOn(t, []byte{0x1F})
	assert.True(t, c.IsNull())
	_, err = c.ReadBool()
	assert.Error(t, err)
}

func TestReadBigInt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"zero", []byte{0x20}, "0"},
		{"positive", []byte{0x21, 0x07}, "7"},
		{"negative", []byte{0x31, 0x07}, "-7"},
		{"beyond int64", withHeader(0x2, []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0}), "18446744073709551616"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := parkedOn(t, tt.data)
			v, err := c.ReadBigInt()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}

	// Negative zero has no integer encoding.
	c := parkedOn(t, []byte{0x30})
	_, err := c.ReadBigInt()
	assert.Error(t, err)
}

func TestReadFloat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want float64
	}{
		{"zero", []byte{0x40}, 0},
		{"float32", []byte{0x44, 0x40, 0x20, 0x00, 0x00}, 2.5},
		{"float64", []byte{0x48, 0x40, 0x04, 0, 0, 0, 0, 0, 0}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := parkedOn(t, tt.data)
			v, err := c.ReadFloat()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}

	c := parkedOn(t, []byte{0x41, 0x00})
	_, err := c.ReadFloat()
	assert.Error(t, err)
}

func TestReadDecimal(t *testing.T) {
	c := parkedOn(t, []byte{0x50})
	v, err := c.ReadDecimal()
	require.NoError(t, err)
	assert.Equal(t, "0", v.Coefficient.String())
	assert.Equal(t, 0, v.Exponent)
	assert.False(t, v.NegativeZero)

	// 12.3 as 123 * 10^-1
	c = parkedOn(t, []byte{0x52, 0xC1, 0x7B})
	v, err = c.ReadDecimal()
	require.NoError(t, err)
	assert.Equal(t, "123", v.Coefficient.String())
	assert.Equal(t, -1, v.Exponent)

	c = parkedOn(t, []byte{0x52, 0x81, 0x85})
	v, err = c.ReadDecimal()
	require.NoError(t, err)
	assert.Equal(t, "-5", v.Coefficient.String())
	assert.Equal(t, 1, v.Exponent)

	c = parkedOn(t, []byte{0x52, 0x80, 0x80})
	v, err = c.ReadDecimal()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Coefficient.Sign())
	assert.True(t, v.NegativeZero)
}

func TestReadTimestamp(t *testing.T) {
	// 2011-02-20T19:30:59+00:00
	second := []byte{0x80, 0x0F, 0xDB, 0x82, 0x94, 0x93, 0x9E, 0xBB}

	c := parkedOn(t, withHeader(0x6, second))
	ts, err := c.ReadTimestamp()
	require.NoError(t, err)
	assert.Equal(t, 2011, ts.Year)
	assert.Equal(t, 2, ts.Month)
	assert.Equal(t, 20, ts.Day)
	assert.Equal(t, 19, ts.Hour)
	assert.Equal(t, 30, ts.Minute)
	assert.Equal(t, 59, ts.Second)
	assert.Equal(t, 0, ts.OffsetMinutes)
	assert.False(t, ts.UnknownOffset)
	assert.Equal(t, PrecisionSecond, ts.Precision)

	t.Run("year precision with unknown offset", func(t *testing.T) {
		c := parkedOn(t, []byte{0x63, 0xC0, 0x0F, 0xDB})
		ts, err := c.ReadTimestamp()
		require.NoError(t, err)
		assert.Equal(t, 2011, ts.Year)
		assert.Equal(t, 1, ts.Month)
		assert.Equal(t, 1, ts.Day)
		assert.True(t, ts.UnknownOffset)
		assert.Equal(t, PrecisionYear, ts.Precision)
	})

	t.Run("positive offset", func(t *testing.T) {
		c := parkedOn(t, []byte{0x67, 0xBC, 0x0F, 0xDB, 0x82, 0x94, 0x93, 0x9E})
		ts, err := c.ReadTimestamp()
		require.NoError(t, err)
		assert.Equal(t, 60, ts.OffsetMinutes)
		assert.Equal(t, PrecisionMinute, ts.Precision)
	})

	t.Run("fractional seconds", func(t *testing.T) {
		// .500 as 500 * 10^-3
		c := parkedOn(t, withHeader(0x6, append(second, 0xC3, 0x01, 0xF4)))
		ts, err := c.ReadTimestamp()
		require.NoError(t, err)
		assert.Equal(t, 500000000, ts.Nanoseconds)
		assert.Equal(t, 3, ts.FractionDigits)
		assert.Equal(t, PrecisionFractional, ts.Precision)
	})

	t.Run("hour without minute", func(t *testing.T) {
		c := parkedOn(t, []byte{0x66, 0x80, 0x0F, 0xDB, 0x82, 0x94, 0x93})
		_, err := c.ReadTimestamp()
		assert.Error(t, err)
	})

	t.Run("sub-nanosecond fraction", func(t *testing.T) {
		c := parkedOn(t, withHeader(0x6, append(second, 0xCA, 0x01)))
		_, err := c.ReadTimestamp()
		assert.Error(t, err)
	})
}

func TestReadSymbolID(t *testing.T) {
	c := parkedOn(t, []byte{0x71, 0x0A})
	sid, err := c.ReadSymbolID()
	require.NoError(t, err)
	assert.Equal(t, 10, sid)

	c = parkedOn(t, []byte{0x70})
	sid, err = c.ReadSymbolID()
	require.NoError(t, err)
	assert.Equal(t, 0, sid)
}

func TestReadString(t *testing.T) {
	c := parkedOn(t, ionString("hello"))
	v, err := c.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	c = parkedOn(t, []byte{0x81, 0xFF})
	_, err = c.ReadString()
	assert.Error(t, err)
}

func TestReadLob(t *testing.T) {
	c := parkedOn(t, withHeader(0x9, []byte("hi")))
	v, err := c.ReadLob()
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), v)

	c = parkedOn(t, withHeader(0xA, []byte{1, 2, 3}))
	v, err = c.ReadLob()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, v)

	c = parkedOn(t, []byte{0x9F})
	_, err = c.ReadLob()
	assert.Error(t, err)
}

func TestScalarTypeMismatch(t *testing.T) {
	c := parkedOn(t, []byte{0x21, 0x07})
	_, err := c.ReadBool()
	assert.Error(t, err)
	_, err = c.ReadString()
	assert.Error(t, err)
	_, err = c.ReadLob()
	assert.Error(t, err)

	c = parkedOn(t, []byte{0x2F})
	_, err = c.ReadBigInt()
	assert.Error(t, err)
}
