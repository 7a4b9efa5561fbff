package xmlcore

import "bytes"

// stripBOM removes a UTF-8, UTF-16-BE, or UTF-16-LE byte-order mark found at
// offset 0.
func stripBOM(data []byte) []byte {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return data[3:]
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return data[2:]
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return data[2:]
	default:
		return data
	}
}

// countTags performs the lexer/counter pre-pass: an upper bound on the
// number of tags the main parse will materialize, and validation that
// CDATA sections and comments are terminated. It does not validate element
// nesting; that is the main parser's job.
func countTags(data []byte, flags ParseFlag) (int, error) {
	n := 0
	i := 0
	sawContentSinceTag := false
	for i < len(data) {
		c := data[i]
		if c != '<' {
			// Accumulate into a single content run; counted once when the
			// run ends (matching the main parser's coalescing behavior).
			if !sawContentSinceTag && flags&StripContent == 0 {
				sawContentSinceTag = true
			}
			i++
			continue
		}
		if sawContentSinceTag {
			n++
			sawContentSinceTag = false
		}
		switch {
		case bytes.HasPrefix(data[i:], []byte("<![CDATA[")):
			end := bytes.Index(data[i+9:], []byte("]]>"))
			if end < 0 {
				return 0, newErr("countTags", KindInvalidData, "unterminated CDATA section")
			}
			n++
			i += 9 + end + 3
		case bytes.HasPrefix(data[i:], []byte("<!--")):
			end := bytes.Index(data[i+4:], []byte("-->"))
			if end < 0 {
				return 0, newErr("countTags", KindInvalidData, "unterminated comment")
			}
			if flags&IncludeComments != 0 {
				n++
			}
			i += 4 + end + 3
		case bytes.HasPrefix(data[i:], []byte("<!DOCTYPE")) || bytes.HasPrefix(data[i:], []byte("<!doctype")):
			end := findDoctypeEnd(data, i)
			if end < 0 {
				return 0, newErr("countTags", KindInvalidData, "unterminated DOCTYPE")
			}
			if flags&StripHeaders == 0 {
				n++
			}
			i = end + 1
		case bytes.HasPrefix(data[i:], []byte("<?")):
			end := bytes.Index(data[i+2:], []byte("?>"))
			if end < 0 {
				return 0, newErr("countTags", KindInvalidData, "unterminated processing instruction")
			}
			if flags&StripHeaders == 0 {
				n++
			}
			i += 2 + end + 2
		case bytes.HasPrefix(data[i:], []byte("</")):
			end := bytes.IndexByte(data[i:], '>')
			if end < 0 {
				return 0, newErr("countTags", KindInvalidData, "unterminated end tag")
			}
			i += end + 1
		default:
			end := findTagEnd(data, i)
			if end < 0 {
				return 0, newErr("countTags", KindInvalidData, "unterminated start tag")
			}
			n++
			i = end + 1
		}
	}
	if sawContentSinceTag {
		n++
	}
	return n, nil
}

// findTagEnd returns the index of the '>' that closes the start tag
// beginning at data[start] == '<', respecting quoted attribute values.
func findTagEnd(data []byte, start int) int {
	inQuote := byte(0)
	for i := start + 1; i < len(data); i++ {
		c := data[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			inQuote = c
		case '>':
			return i
		}
	}
	return -1
}

// findDoctypeEnd returns the index of the '>' that closes the DOCTYPE
// declaration beginning at data[start], accounting for a bracketed internal
// subset that may itself contain '>' characters.
func findDoctypeEnd(data []byte, start int) int {
	depth := 0
	for i := start; i < len(data); i++ {
		switch data[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '>':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
