package xmlcore

import (
	"bytes"
	"log"
	"strings"
)

// defaultSentinelPrefix is the lead-comment marker recognized but never
// interpreted by the parser.
const defaultSentinelPrefix = "$FLUID"

// Parse decodes data into a new Document honoring flags. WellFormed demands
// strict nesting (several top-level elements are still accepted); without it, an unbalanced
// document is tolerated by truncating to its last well-formed state and
// logging a non-fatal diagnostic. Empty data fails with ErrNoData unless
// New is set, in which case Parse returns an empty, rootless Document.
func Parse(data []byte, flags ParseFlag) (*Document, error) {
	if flags&ParseHTML != 0 && flags&New == 0 {
		return nil, newErr("Parse", KindSyntax, "PARSE_HTML requires NEW")
	}

	data = stripBOM(data)
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		if flags&New == 0 {
			return nil, newErr("Parse", KindNoData, "no source data")
		}
		return newEmptyDocument(flags), nil
	}
	if trimmed[0] != '<' {
		return nil, newErr("Parse", KindInvalidData, "source does not begin with a tag")
	}

	if _, err := countTags(data, flags); err != nil {
		return nil, err
	}

	d := newEmptyDocument(flags)
	p := &parseState{doc: d, data: data, flags: flags, lineNo: 1}
	if err := p.run(); err != nil {
		if e, ok := err.(*Error); ok && e.Line == 0 {
			e.Line = p.lineNo
		}
		d.parseErr = err
		d.errorMsg = err.Error()
		if flags&WellFormed != 0 {
			return nil, err
		}
	}

	for _, t := range d.tags {
		d.register(t, nil)
	}
	if len(p.unclosed) > 0 && flags&WellFormed == 0 {
		log.Printf("xmlcore: parse: %d unclosed element(s) truncated to last well-formed state", len(p.unclosed))
	}
	return d, nil
}

type parseState struct {
	doc      *Document
	data     []byte
	flags    ParseFlag
	pos      int
	lineNo   int
	stack    []*Tag
	unclosed []*Tag
	sawFirst bool
}

func (p *parseState) advanceLines(s []byte) {
	p.lineNo += bytes.Count(s, []byte("\n"))
}

func (p *parseState) appendTag(t *Tag) {
	if len(p.stack) == 0 {
		t.hasParent = false
		p.doc.tags = append(p.doc.tags, t)
	} else {
		parent := p.stack[len(p.stack)-1]
		t.hasParent = true
		t.parentID = parent.id
		t.branch = parent.branch + 1
		parent.children = append(parent.children, t)
	}
}

func (p *parseState) run() error {
	data := p.data
	for p.pos < len(data) {
		c := data[p.pos]
		if c != '<' {
			end := bytes.IndexByte(data[p.pos:], '<')
			if end < 0 {
				end = len(data) - p.pos
			}
			raw := string(data[p.pos : p.pos+end])
			p.emitContent(raw)
			p.advanceLines(data[p.pos : p.pos+end])
			p.pos += end
			continue
		}
		switch {
		case bytes.HasPrefix(data[p.pos:], []byte("<![CDATA[")):
			if err := p.readCDATA(); err != nil {
				return err
			}
		case bytes.HasPrefix(data[p.pos:], []byte("<!--")):
			if err := p.readComment(); err != nil {
				return err
			}
		case bytes.HasPrefix(data[p.pos:], []byte("<!DOCTYPE")), bytes.HasPrefix(data[p.pos:], []byte("<!doctype")):
			if err := p.readDoctype(); err != nil {
				return err
			}
		case bytes.HasPrefix(data[p.pos:], []byte("<?")):
			if err := p.readPI(); err != nil {
				return err
			}
		case bytes.HasPrefix(data[p.pos:], []byte("</")):
			if err := p.readEndTag(); err != nil {
				return err
			}
		default:
			if err := p.readStartTag(); err != nil {
				return err
			}
		}
	}
	if len(p.stack) > 0 {
		p.unclosed = append(p.unclosed, p.stack...)
		if p.flags&WellFormed != 0 {
			return newErr("Parse", KindUnbalancedXML, "%d element(s) never closed", len(p.stack))
		}
	}
	return nil
}

func (p *parseState) emitContent(raw string) {
	if p.flags&StripContent != 0 {
		return
	}
	text := raw
	if p.flags&AllContent == 0 {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
	}
	if p.flags&NoEscape == 0 {
		text = unescape(text)
	}
	t := &Tag{
		id:      p.doc.allocID(),
		lineNo:  p.lineNo,
		flags:   FlagContent,
		attribs: []Attrib{{Value: text}},
	}
	p.appendTag(t)
}

func (p *parseState) readCDATA() error {
	start := p.pos
	end := bytes.Index(p.data[start+9:], []byte("]]>"))
	if end < 0 {
		return newErr("Parse", KindInvalidData, "unterminated CDATA section")
	}
	raw := string(p.data[start+9 : start+9+end])
	line := p.lineNo
	p.advanceLines(p.data[start : start+9+end+3])
	p.pos = start + 9 + end + 3
	if p.flags&StripContent != 0 {
		return nil
	}
	t := &Tag{
		id:      p.doc.allocID(),
		lineNo:  line,
		flags:   FlagContent | FlagCDATA,
		attribs: []Attrib{{Value: raw}},
	}
	p.appendTag(t)
	return nil
}

func (p *parseState) readComment() error {
	start := p.pos
	end := bytes.Index(p.data[start+4:], []byte("-->"))
	if end < 0 {
		return newErr("Parse", KindInvalidData, "unterminated comment")
	}
	raw := string(p.data[start+4 : start+4+end])
	line := p.lineNo
	p.advanceLines(p.data[start : start+4+end+3])
	p.pos = start + 4 + end + 3

	if !p.sawFirst {
		p.sawFirst = true
		if strings.HasPrefix(strings.TrimSpace(raw), defaultSentinelPrefix) {
			p.doc.hasSentinel = true
		}
	}

	if p.flags&IncludeComments == 0 {
		return nil
	}
	t := &Tag{
		id:      p.doc.allocID(),
		lineNo:  line,
		flags:   FlagContent | FlagComment,
		attribs: []Attrib{{Value: strings.TrimSpace(raw)}},
	}
	p.appendTag(t)
	return nil
}

func (p *parseState) readPI() error {
	start := p.pos
	end := bytes.Index(p.data[start+2:], []byte("?>"))
	if end < 0 {
		return newErr("Parse", KindInvalidData, "unterminated processing instruction")
	}
	raw := string(p.data[start+2 : start+2+end])
	line := p.lineNo
	p.advanceLines(p.data[start : start+2+end+2])
	p.pos = start + 2 + end + 2

	p.sawFirst = true
	if p.flags&StripHeaders != 0 {
		return nil
	}
	t := &Tag{
		id:      p.doc.allocID(),
		lineNo:  line,
		flags:   FlagContent | FlagInstruction,
		attribs: []Attrib{{Value: strings.TrimSpace(raw)}},
	}
	p.appendTag(t)
	return nil
}

func (p *parseState) readDoctype() error {
	start := p.pos
	end := findDoctypeEnd(p.data, start)
	if end < 0 {
		return newErr("Parse", KindInvalidData, "unterminated DOCTYPE declaration")
	}
	raw := string(p.data[start+9 : end])
	line := p.lineNo
	p.advanceLines(p.data[start : end+1])
	p.pos = end + 1
	p.sawFirst = true

	decl := parseDoctypeDecl(raw)
	p.doc.doctype = decl.name
	p.doc.publicID = decl.publicID
	p.doc.systemID = decl.systemID
	if p.flags&ParseEntity != 0 {
		for k, v := range decl.entities {
			p.doc.entities[k] = v
		}
		for k, v := range decl.paramEntities {
			p.doc.parameterEntities[k] = v
		}
		for k, v := range decl.notations {
			p.doc.notations[k] = v
		}
	}

	if p.flags&StripHeaders != 0 {
		return nil
	}
	t := &Tag{
		id:      p.doc.allocID(),
		lineNo:  line,
		flags:   FlagContent | FlagInstruction,
		attribs: []Attrib{{Name: "!DOCTYPE", Value: strings.TrimSpace(raw)}},
	}
	p.appendTag(t)
	return nil
}

func (p *parseState) readEndTag() error {
	start := p.pos
	end := bytes.IndexByte(p.data[start:], '>')
	if end < 0 {
		return newErr("Parse", KindInvalidData, "unterminated end tag")
	}
	name := strings.TrimSpace(string(p.data[start+2 : start+end]))
	name = foldName(name, p.flags)
	p.advanceLines(p.data[start : start+end+1])
	p.pos = start + end + 1

	if len(p.stack) == 0 {
		if p.flags&WellFormed != 0 {
			return newErr("Parse", KindUnbalancedXML, "end tag </%s> with no open element", name)
		}
		return nil
	}
	top := p.stack[len(p.stack)-1]
	if top.Name() != name {
		if p.flags&WellFormed != 0 {
			return newErr("Parse", KindUnbalancedXML, "end tag </%s> does not match open element <%s>", name, top.Name())
		}
		// Tolerant mode: pop until we find a matching ancestor, or give up
		// and pop just the top as a best-effort recovery.
		for i := len(p.stack) - 1; i >= 0; i-- {
			if p.stack[i].Name() == name {
				p.stack = p.stack[:i]
				return nil
			}
		}
		p.stack = p.stack[:len(p.stack)-1]
		return nil
	}
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

func (p *parseState) readStartTag() error {
	start := p.pos
	end := findTagEnd(p.data, start)
	if end < 0 {
		return newErr("Parse", KindInvalidData, "unterminated start tag")
	}
	inner := p.data[start+1 : end]
	line := p.lineNo
	p.advanceLines(p.data[start : end+1])
	p.pos = end + 1
	p.sawFirst = true

	selfClose := len(inner) > 0 && inner[len(inner)-1] == '/'
	if selfClose {
		inner = inner[:len(inner)-1]
	}
	name, attrs, err := parseStartTagBody(inner)
	if err != nil {
		return err
	}
	name = foldName(name, p.flags)
	for i := range attrs {
		attrs[i].Name = foldName(attrs[i].Name, p.flags)
		if p.flags&NoEscape == 0 {
			attrs[i].Value = unescape(attrs[i].Value)
		}
	}

	t := &Tag{
		id:      p.doc.allocID(),
		lineNo:  line,
		attribs: append([]Attrib{{Name: name}}, attrs...),
	}
	p.internNamespace(t)
	p.appendTag(t)
	if !selfClose {
		p.stack = append(p.stack, t)
	}
	return nil
}

// internNamespace resolves t's effective xmlns declaration (its own prefix
// or default binding, or the nearest ancestor's) against the tags still
// open on the parser stack and interns the URI into the document's
// namespace table, matching the nesting a fully-registered tree would
// resolve via Document.ResolvePrefix.
func (p *parseState) internNamespace(t *Tag) {
	prefix := ""
	if name := t.Name(); strings.Contains(name, ":") {
		prefix = name[:strings.IndexByte(name, ':')]
	}
	attrName := "xmlns"
	if prefix != "" {
		attrName = "xmlns:" + prefix
	}

	if v, ok := t.Attrib(attrName); ok {
		t.namespaceID = p.doc.nsTable.Intern(v)
		t.hasNS = true
		return
	}
	for i := len(p.stack) - 1; i >= 0; i-- {
		if v, ok := p.stack[i].Attrib(attrName); ok {
			t.namespaceID = p.doc.nsTable.Intern(v)
			t.hasNS = true
			return
		}
	}
}

func foldName(s string, flags ParseFlag) string {
	switch {
	case flags&LowerCase != 0:
		return strings.ToLower(s)
	case flags&UpperCase != 0:
		return strings.ToUpper(s)
	default:
		return s
	}
}

// parseStartTagBody splits the bytes between '<' and the closing '>' (or
// '/') of a start tag into its element name and attribute list.
func parseStartTagBody(inner []byte) (string, []Attrib, error) {
	i := 0
	for i < len(inner) && !isSpace(inner[i]) {
		i++
	}
	name := string(inner[:i])
	if name == "" {
		return "", nil, newErr("Parse", KindSyntax, "start tag with empty element name")
	}

	var attrs []Attrib
	for i < len(inner) {
		for i < len(inner) && isSpace(inner[i]) {
			i++
		}
		if i >= len(inner) {
			break
		}
		nameStart := i
		for i < len(inner) && inner[i] != '=' && !isSpace(inner[i]) {
			i++
		}
		attrName := string(inner[nameStart:i])
		for i < len(inner) && isSpace(inner[i]) {
			i++
		}
		if i >= len(inner) || inner[i] != '=' {
			if attrName != "" {
				attrs = append(attrs, Attrib{Name: attrName, Value: ""})
			}
			continue
		}
		i++ // consume '='
		for i < len(inner) && isSpace(inner[i]) {
			i++
		}
		var val string
		if i < len(inner) && (inner[i] == '"' || inner[i] == '\'') {
			quote := inner[i]
			i++
			valStart := i
			for i < len(inner) && inner[i] != quote {
				i++
			}
			val = string(inner[valStart:i])
			if i < len(inner) {
				i++ // consume closing quote
			}
		} else {
			valStart := i
			for i < len(inner) && !isSpace(inner[i]) {
				i++
			}
			val = string(inner[valStart:i])
		}
		attrs = append(attrs, Attrib{Name: attrName, Value: val})
	}
	return name, attrs, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
