// Package chunk partitions extracted text into model-sized windows.
package chunk

// Split cuts text into consecutive windows of at most size runes, in
// order and without overlap. Concatenating the result reproduces text
// exactly. Splitting on runes rather than bytes keeps multi-byte
// characters intact at window boundaries.
func Split(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
