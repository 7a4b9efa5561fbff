package xmlcore

import (
	"strconv"
	"strings"
)

// escapeText converts literal characters to entity references for element
// content (no double-quote escaping).
func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeAttrib converts literal characters to entity references for
// attribute values, additionally escaping double quotes.
func escapeAttrib(s string) string {
	if !strings.ContainsAny(s, "&<>\"") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// unescape decodes &amp; &lt; &gt; &quot; &apos; and numeric decimal/hex
// character references into UTF-8. Unknown entity references are left
// verbatim.
func unescape(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			b.WriteByte(c)
			i++
			continue
		}
		ref := s[i+1 : i+end]
		if decoded, ok := decodeEntityRef(ref); ok {
			b.WriteString(decoded)
			i += end + 1
			continue
		}
		// Unknown reference: left verbatim, including the ampersand.
		b.WriteByte(c)
		i++
	}
	return b.String()
}

func decodeEntityRef(ref string) (string, bool) {
	switch ref {
	case "amp":
		return "&", true
	case "lt":
		return "<", true
	case "gt":
		return ">", true
	case "quot":
		return "\"", true
	case "apos":
		return "'", true
	}
	if strings.HasPrefix(ref, "#x") || strings.HasPrefix(ref, "#X") {
		if n, err := strconv.ParseInt(ref[2:], 16, 32); err == nil {
			return string(rune(n)), true
		}
		return "", false
	}
	if strings.HasPrefix(ref, "#") {
		if n, err := strconv.ParseInt(ref[1:], 10, 32); err == nil {
			return string(rune(n)), true
		}
		return "", false
	}
	return "", false
}
