package xmlcore

import "strings"

// Serialize renders the full document back to XML text. Serialize followed
// by Parse on the result reproduces a tree equivalent to the original,
// modulo whitespace-only content dropped by a prior parse without
// ALL_CONTENT and comments/instructions dropped by flags that suppressed
// them on the way in; nothing the tree still holds is lost on the way out.
func Serialize(d *Document, flags SerializeFlag) ([]byte, error) {
	var b strings.Builder
	for _, t := range d.tags {
		writeTag(&b, d, t, flags, 0)
	}
	return []byte(b.String()), nil
}

// SerializeTag renders a single subtree rooted at t. With IncludeSiblings
// set, t's siblings that follow it in document order are appended after it.
func SerializeTag(d *Document, t *Tag, flags SerializeFlag) ([]byte, error) {
	var b strings.Builder
	writeTag(&b, d, t, flags, 0)
	if flags&IncludeSiblings != 0 {
		container, idx := d.containerOf(t)
		if idx >= 0 {
			for _, sib := range (*container)[idx+1:] {
				writeTag(&b, d, sib, flags, 0)
			}
		}
	}
	return []byte(b.String()), nil
}

func writeTag(b *strings.Builder, d *Document, t *Tag, flags SerializeFlag, depth int) {
	indent := func() {
		if flags&Readable != 0 {
			b.WriteString(strings.Repeat("  ", depth))
		}
	}
	newline := func() {
		if flags&Readable != 0 {
			b.WriteByte('\n')
		}
	}

	switch t.Kind() {
	case KindCDATANode:
		indent()
		if flags&StripCDATA != 0 {
			b.WriteString(escapeText(t.Text()))
		} else {
			b.WriteString("<![CDATA[")
			b.WriteString(t.Text())
			b.WriteString("]]>")
		}
		newline()
		return
	case KindCommentNode:
		indent()
		b.WriteString("<!--")
		b.WriteString(t.Text())
		b.WriteString("-->")
		newline()
		return
	case KindInstructionNode:
		if flags&SerializeStripHeaders != 0 {
			return
		}
		indent()
		if t.attribs[0].Name == "!DOCTYPE" {
			b.WriteString("<!DOCTYPE ")
			b.WriteString(t.attribs[0].Value)
			b.WriteString(">")
		} else {
			b.WriteString("<?")
			b.WriteString(t.Text())
			b.WriteString("?>")
		}
		newline()
		return
	case KindContentNode:
		indent()
		b.WriteString(escapeText(t.Text()))
		newline()
		return
	}

	// Element.
	indent()
	b.WriteByte('<')
	b.WriteString(t.Name())
	for _, a := range t.attribs[1:] {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escapeAttrib(a.Value))
		b.WriteByte('"')
	}
	if len(t.children) == 0 {
		b.WriteString("/>")
		newline()
		return
	}
	b.WriteByte('>')
	if flags&Readable != 0 {
		b.WriteByte('\n')
	}
	for _, c := range t.children {
		writeTag(b, d, c, flags, depth+1)
	}
	indent()
	b.WriteString("</")
	b.WriteString(t.Name())
	b.WriteByte('>')
	newline()
}
