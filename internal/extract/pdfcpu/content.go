package pdfcpu

import (
	"strings"
)

// decodeContentText pulls the text shown by a page content stream.
// String literals are only emitted when consumed by a text-showing
// operator (Tj, ', ", or a TJ array), so operands of unrelated
// operators are ignored.
func decodeContentText(content string) string {
	var (
		out       []string
		pending   []string
		inArray   bool
		arrayLits []string
	)

	flush := func(op string) {
		switch op {
		case "Tj", "'", "\"":
			if len(pending) > 0 {
				out = append(out, pending[len(pending)-1])
			}
		case "TJ":
			// Array elements belong to one logical run. Numbers in the
			// array are kerning adjustments, not separators.
			if len(arrayLits) > 0 {
				out = append(out, strings.Join(arrayLits, ""))
			}
		}
		pending = pending[:0]
		arrayLits = arrayLits[:0]
	}

	i := 0
	for i < len(content) {
		c := content[i]
		switch {
		case c == '(':
			lit, next := readStringLiteral(content, i)
			if inArray {
				arrayLits = append(arrayLits, lit)
			} else {
				pending = append(pending, lit)
			}
			i = next
		case c == '[':
			inArray = true
			arrayLits = arrayLits[:0]
			i++
		case c == ']':
			inArray = false
			i++
		case c == '\'' || c == '"':
			flush(string(c))
			i++
		case c == '%':
			// Comment runs to end of line.
			for i < len(content) && content[i] != '\n' && content[i] != '\r' {
				i++
			}
		case isOperatorByte(c):
			start := i
			for i < len(content) && isOperatorByte(content[i]) {
				i++
			}
			flush(content[start:i])
		default:
			i++
		}
	}

	return strings.Join(out, " ")
}

// readStringLiteral decodes a PDF string literal starting at the opening
// parenthesis. It returns the decoded text and the index just past the
// closing parenthesis. Balanced unescaped parentheses are legal inside
// literals.
func readStringLiteral(s string, start int) (string, int) {
	var sb strings.Builder
	depth := 1
	i := start + 1
	for i < len(s) && depth > 0 {
		c := s[i]
		switch c {
		case '\\':
			if i+1 >= len(s) {
				return sb.String(), i + 1
			}
			i++
			switch esc := s[i]; esc {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case '(', ')', '\\':
				sb.WriteByte(esc)
			case '\n':
				// Line continuation, emits nothing.
			case '\r':
				if i+1 < len(s) && s[i+1] == '\n' {
					i++
				}
			default:
				if esc >= '0' && esc <= '7' {
					val := int(esc - '0')
					for n := 0; n < 2 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; n++ {
						i++
						val = val*8 + int(s[i]-'0')
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(esc)
				}
			}
			i++
		case '(':
			depth++
			sb.WriteByte(c)
			i++
		case ')':
			depth--
			if depth > 0 {
				sb.WriteByte(c)
			}
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), i
}

func isOperatorByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '*'
}
