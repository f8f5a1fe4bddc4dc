package ionbin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTable_System(t *testing.T) {
	st := NewSymbolTable()

	assert.Equal(t, SystemLen(), st.Len())

	text, ok := st.TextFor(1)
	assert.True(t, ok)
	assert.Equal(t, "$ion", text)

	text, ok = st.TextFor(3)
	assert.True(t, ok)
	assert.Equal(t, "$ion_symbol_table", text)

	text, ok = st.TextFor(9)
	assert.True(t, ok)
	assert.Equal(t, "$ion_shared_symbol_table", text)
}

func TestSymbolTable_Unresolvable(t *testing.T) {
	st := NewSymbolTable()

	_, ok := st.TextFor(0)
	assert.False(t, ok, "$0 has no text")

	_, ok = st.TextFor(-1)
	assert.False(t, ok)

	_, ok = st.TextFor(st.Len())
	assert.False(t, ok, "ids past the end of the table do not resolve")
}

func TestSymbolTable_Append(t *testing.T) {
	st := NewSymbolTable()
	st.append("foo", true)
	st.append("", false)

	text, ok := st.TextFor(10)
	assert.True(t, ok)
	assert.Equal(t, "foo", text)

	_, ok = st.TextFor(11)
	assert.False(t, ok, "symbols with unknown text do not resolve")

	assert.Equal(t, SystemLen()+2, st.Len())
}

func TestSymbolTable_Tail(t *testing.T) {
	st := NewSymbolTable()
	st.append("foo", true)
	st.append("bar", true)

	assert.Equal(t, []string{"foo", "bar"}, st.Tail(SystemLen()))
	assert.Equal(t, []string{"bar"}, st.Tail(SystemLen()+1))
	assert.Nil(t, st.Tail(st.Len()))
}

func TestSymbolTable_Reset(t *testing.T) {
	st := NewSymbolTable()
	st.append("foo", true)

	st.Reset()
	assert.Equal(t, SystemLen(), st.Len())
	_, ok := st.TextFor(10)
	assert.False(t, ok)
}
