package pdfcpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeContentTextSimpleTj(t *testing.T) {
	stream := "BT /F1 12 Tf 72 712 Td (Hello world) Tj ET"
	assert.Equal(t, "Hello world", decodeContentText(stream))
}

func TestDecodeContentTextMultipleRuns(t *testing.T) {
	stream := "BT (first) Tj 0 -14 Td (second) Tj ET"
	assert.Equal(t, "first second", decodeContentText(stream))
}

func TestDecodeContentTextTJArrayJoinsWithoutSeparator(t *testing.T) {
	// Kerning numbers inside a TJ array split one word across literals.
	stream := "BT [(Hel) -20 (lo) 4 ( world)] TJ ET"
	assert.Equal(t, "Hello world", decodeContentText(stream))
}

func TestDecodeContentTextQuoteOperators(t *testing.T) {
	assert.Equal(t, "next line", decodeContentText("(next line) '"))
	assert.Equal(t, "spaced", decodeContentText(`2 1 (spaced) "`))
}

func TestDecodeContentTextEscapes(t *testing.T) {
	stream := `BT (paren \( inside \) and backslash \\ done) Tj ET`
	assert.Equal(t, `paren ( inside ) and backslash \ done`, decodeContentText(stream))
}

func TestDecodeContentTextOctalEscape(t *testing.T) {
	stream := `BT (\101\102\103) Tj ET`
	assert.Equal(t, "ABC", decodeContentText(stream))
}

func TestDecodeContentTextBalancedParens(t *testing.T) {
	stream := "BT (outer (inner) tail) Tj ET"
	assert.Equal(t, "outer (inner) tail", decodeContentText(stream))
}

func TestDecodeContentTextIgnoresNonTextLiterals(t *testing.T) {
	// A literal not consumed by a text-showing operator must not leak.
	stream := "(not shown) Do BT (shown) Tj ET"
	assert.Equal(t, "shown", decodeContentText(stream))
}

func TestDecodeContentTextIgnoresComments(t *testing.T) {
	stream := "% (commented) Tj\nBT (real) Tj ET"
	assert.Equal(t, "real", decodeContentText(stream))
}

func TestDecodeContentTextEmptyStream(t *testing.T) {
	assert.Equal(t, "", decodeContentText(""))
	assert.Equal(t, "", decodeContentText("q 1 0 0 1 0 0 cm Q"))
}

func TestPageNumberFromName(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"page_3.txt", 3, true},
		{"Content_page_12.txt", 12, true},
		{"report_Content_page_7.txt", 7, true},
		{"page_0.txt", 0, false},
		{"notes.txt", 0, false},
		{"page_x.txt", 0, false},
	}

	for _, tt := range tests {
		got, ok := pageNumberFromName(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.name)
		}
	}
}
