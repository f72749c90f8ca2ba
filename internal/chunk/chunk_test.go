package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyText(t *testing.T) {
	assert.Nil(t, Split("", 100))
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	chunks := Split("hello world", 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestSplitExactBoundary(t *testing.T) {
	text := strings.Repeat("a", 10)

	chunks := Split(text, 10)
	require.Len(t, chunks, 1)

	chunks = Split(text+"b", 10)
	require.Len(t, chunks, 2)
	assert.Equal(t, text, chunks[0])
	assert.Equal(t, "b", chunks[1])
}

func TestSplitLossless(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
	}{
		{"ascii", strings.Repeat("Hello world. ", 1000), 300},
		{"cjk", strings.Repeat("文档摘要服务", 500), 7},
		{"mixed", strings.Repeat("naïve café 日本 🙂 ", 200), 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.text, tt.size)
			assert.Equal(t, tt.text, strings.Join(chunks, ""))

			for i, c := range chunks {
				n := utf8.RuneCountInString(c)
				assert.LessOrEqual(t, n, tt.size)
				if i < len(chunks)-1 {
					assert.Equal(t, tt.size, n)
				}
				assert.True(t, utf8.ValidString(c))
			}
		})
	}
}

func TestSplitChunkCount(t *testing.T) {
	text := strings.Repeat("x", 25)

	assert.Len(t, Split(text, 10), 3)
	assert.Len(t, Split(text, 25), 1)
	assert.Len(t, Split(text, 24), 2)
	assert.Len(t, Split(text, 1), 25)
}

func TestSplitNonPositiveSize(t *testing.T) {
	chunks := Split("some text", 0)
	require.Len(t, chunks, 1)
	assert.Equal(t, "some text", chunks[0])
}
