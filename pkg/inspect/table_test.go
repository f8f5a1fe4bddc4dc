package inspect

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestTableWriter_Header(t *testing.T) {
	var buf bytes.Buffer
	tw := newTableWriter(&buf, newStyles())
	require.NoError(t, tw.writeHeader())

	rule := strings.Repeat("-", 75)
	want := rule + "\n" +
		" Offset  " + " | " + " Length  " + " | " +
		"       Binary Ion       " + " | " + "        Text Ion        " + "\n" +
		rule + "\n"
	assert.Equal(t, want, buf.String())
}

func TestTableWriter_Row(t *testing.T) {
	var buf bytes.Buffer
	tw := newTableWriter(&buf, newStyles())

	require.NoError(t, tw.writeRow(4, 2, "", "21 07", "7"))
	want := "        4" + " | " + "        2" + " | " +
		"21 07" + strings.Repeat(" ", 19) + " | " + " 7\n"
	assert.Equal(t, want, buf.String())
}

func TestTableWriter_RowWithoutNumbers(t *testing.T) {
	var buf bytes.Buffer
	tw := newTableWriter(&buf, newStyles())

	require.NoError(t, tw.writeRow(noOffset, noOffset, "  ", "", "]"))
	want := strings.Repeat(" ", 9) + " | " + strings.Repeat(" ", 9) + " | " +
		strings.Repeat(" ", 24) + " | " + "   ]\n"
	assert.Equal(t, want, buf.String())
}

func TestTableWriter_HexWrapsOntoContinuationRows(t *testing.T) {
	var buf bytes.Buffer
	tw := newTableWriter(&buf, newStyles())

	hex := "01 02 03 04 05 06 07 08 09 0a"
	require.NoError(t, tw.writeRow(100, 10, "", hex, `"x"`))

	blank := strings.Repeat(" ", 9)
	want := "      100" + " | " + "       10" + " | " +
		"01 02 03 04 05 06 07 08 " + " | " + " \"x\"\n" +
		blank + " | " + blank + " | " +
		"09 0a" + strings.Repeat(" ", 19) + " | " + "\n"
	assert.Equal(t, want, buf.String())
}

func TestCenter(t *testing.T) {
	assert.Equal(t, " ab  ", center("ab", 5))
	assert.Equal(t, "abc", center("abc", 3))
	assert.Equal(t, "abcd", center("abcd", 2))
}
