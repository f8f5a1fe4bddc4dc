package ionspect

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	err := Inspect([]byte{0xE0, 0x01, 0x00, 0xEA, 0x21, 0x07}, &buf, Options{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "// Ion 1.0 Version Marker")
	assert.Contains(t, buf.String(), "21 07")
}

func TestHasVersionMarker(t *testing.T) {
	assert.True(t, HasVersionMarker([]byte{0xE0, 0x01, 0x00, 0xEA}))
	assert.False(t, HasVersionMarker([]byte{0xE0, 0x01, 0x00}))
	assert.False(t, HasVersionMarker([]byte("{}")))
}
