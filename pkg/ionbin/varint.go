package ionbin

import "math/big"

// Variable-length integer primitives from the Ion 1.0 binary encoding.
// VarUInt and VarInt are big-endian sequences of 7-bit groups where the
// high bit of the final octet is set. VarInt additionally carries a sign
// bit in bit 6 of the first octet. UInt and Int are fixed-width
// big-endian fields whose width comes from the enclosing header; Int is
// signed-magnitude with the sign in the high bit of the first octet.

const maxVarIntOctets = 9 // more than enough for any length or symbol id this tool handles

// readVarUInt decodes a VarUInt starting at data[pos]. It returns the
// value and the number of octets consumed.
func readVarUInt(data []byte, pos int) (int, int, error) {
	var value int
	for i := 0; ; i++ {
		if pos+i >= len(data) {
			return 0, 0, syntaxError(pos, "truncated VarUInt")
		}
		if i >= maxVarIntOctets {
			return 0, 0, syntaxError(pos, "VarUInt exceeds %d octets", maxVarIntOctets)
		}
		b := data[pos+i]
		value = value<<7 | int(b&0x7F)
		if b&0x80 != 0 {
			return value, i + 1, nil
		}
	}
}

// readVarInt decodes a VarInt starting at data[pos]. negZero reports the
// distinguished "negative zero" encoding, which timestamps use to mark an
// unknown local offset.
func readVarInt(data []byte, pos int) (value int, negZero bool, n int, err error) {
	if pos >= len(data) {
		return 0, false, 0, syntaxError(pos, "truncated VarInt")
	}
	first := data[pos]
	negative := first&0x40 != 0
	value = int(first & 0x3F)
	n = 1
	for first&0x80 == 0 {
		if pos+n >= len(data) {
			return 0, false, 0, syntaxError(pos, "truncated VarInt")
		}
		if n >= maxVarIntOctets {
			return 0, false, 0, syntaxError(pos, "VarInt exceeds %d octets", maxVarIntOctets)
		}
		b := data[pos+n]
		value = value<<7 | int(b&0x7F)
		n++
		if b&0x80 != 0 {
			break
		}
	}
	if negative {
		if value == 0 {
			return 0, true, n, nil
		}
		value = -value
	}
	return value, false, n, nil
}

// readUInt decodes a fixed-width big-endian unsigned field. The result
// must fit in an int.
func readUInt(data []byte) (int, error) {
	if len(data) > 8 {
		return 0, syntaxError(0, "UInt field of %d octets is too large", len(data))
	}
	var value uint64
	for _, b := range data {
		value = value<<8 | uint64(b)
	}
	if value > uint64(int(^uint(0)>>1)) {
		return 0, syntaxError(0, "UInt field overflows int")
	}
	return int(value), nil
}

// readBigUInt decodes a fixed-width big-endian unsigned field of any width.
func readBigUInt(data []byte) *big.Int {
	return new(big.Int).SetBytes(data)
}

// readInt decodes a fixed-width signed-magnitude field. negZero reports a
// sign bit over a zero magnitude.
func readInt(data []byte) (value *big.Int, negZero bool) {
	if len(data) == 0 {
		return new(big.Int), false
	}
	negative := data[0]&0x80 != 0
	magnitude := make([]byte, len(data))
	copy(magnitude, data)
	magnitude[0] &= 0x7F
	value = new(big.Int).SetBytes(magnitude)
	if negative {
		if value.Sign() == 0 {
			return value, true
		}
		value.Neg(value)
	}
	return value, false
}
