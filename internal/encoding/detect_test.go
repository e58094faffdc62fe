package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavoapp/centavo/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestUTF8Passthrough(t *testing.T) {
	input := "\"Date\",\"Category\",\"Type\",\"Amount\",\"Description\"\n\"2024-08-02\",\"Food\",\"expense\",\"12.50\",\"Café com pão\"\n"

	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestUTF8BOMStripped(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Category\n")...)

	assert.Equal(t, "Date,Category\n", decode(t, input))
}

func TestWindows1252(t *testing.T) {
	// "Café" with 0xE9 for é, as saved by older spreadsheet exports.
	input := []byte{'C', 'a', 'f', 0xE9, ',', '1', '2', '.', '5', '0', '\n'}

	assert.Equal(t, "Café,12.50\n", decode(t, input))
}

func TestUTF16LEBOM(t *testing.T) {
	text := "Date,Amount\n"
	input := []byte{0xFF, 0xFE}

	for _, r := range text {
		input = append(input, byte(r), 0x00)
	}

	assert.Equal(t, text, decode(t, input))
}

func TestEmptyInput(t *testing.T) {
	assert.Equal(t, "", decode(t, nil))
}
