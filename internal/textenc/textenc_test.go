package textenc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pondo-ph/pondo/internal/textenc"
)

func TestUTF8String_Passthrough(t *testing.T) {
	input := "expense ₱1,234.56"
	assert.Equal(t, input, textenc.UTF8String([]byte(input)))
}

func TestUTF8String_StripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("income 500")...)
	assert.Equal(t, "income 500", textenc.UTF8String(input))
}

func TestUTF8String_Windows1252(t *testing.T) {
	// "café 12.50" with é encoded as 0xE9.
	input := []byte{'c', 'a', 'f', 0xE9, ' ', '1', '2', '.', '5', '0'}
	assert.Equal(t, "café 12.50", textenc.UTF8String(input))
}

func TestUTF8String_Empty(t *testing.T) {
	assert.Equal(t, "", textenc.UTF8String(nil))
}
