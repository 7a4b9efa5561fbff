package xmlcore

import "strings"

// doctypeDecl is the result of parsing the text between "<!DOCTYPE" and the
// closing '>' of a DOCTYPE declaration.
type doctypeDecl struct {
	name          string
	publicID      string
	systemID      string
	entities      map[string]string
	paramEntities map[string]string
	notations     map[string]string
}

func parseDoctypeDecl(raw string) doctypeDecl {
	decl := doctypeDecl{
		entities:      make(map[string]string),
		paramEntities: make(map[string]string),
		notations:     make(map[string]string),
	}

	header := raw
	var subset string
	if open := strings.IndexByte(raw, '['); open >= 0 {
		header = raw[:open]
		if close := strings.LastIndexByte(raw, ']'); close > open {
			subset = raw[open+1 : close]
		}
	}

	tok := tokenizeQuoted(header)
	if len(tok) > 0 {
		decl.name = tok[0]
	}
	for i := 1; i < len(tok); i++ {
		switch strings.ToUpper(tok[i]) {
		case "PUBLIC":
			if i+2 < len(tok) {
				decl.publicID = tok[i+1]
				decl.systemID = tok[i+2]
			}
		case "SYSTEM":
			if i+1 < len(tok) {
				decl.systemID = tok[i+1]
			}
		}
	}

	for _, d := range splitDecls(subset) {
		parseInternalSubsetDecl(d, &decl)
	}
	return decl
}

// splitDecls breaks an internal subset into individual "<!...>" markup
// declarations, ignoring surrounding whitespace and comments.
func splitDecls(subset string) []string {
	var out []string
	i := 0
	for i < len(subset) {
		if subset[i] != '<' {
			i++
			continue
		}
		if strings.HasPrefix(subset[i:], "<!--") {
			end := strings.Index(subset[i+4:], "-->")
			if end < 0 {
				break
			}
			i += 4 + end + 3
			continue
		}
		end := strings.IndexByte(subset[i:], '>')
		if end < 0 {
			break
		}
		out = append(out, subset[i+1:i+end])
		i += end + 1
	}
	return out
}

func parseInternalSubsetDecl(d string, decl *doctypeDecl) {
	d = strings.TrimSpace(d)
	switch {
	case strings.HasPrefix(d, "!ENTITY"):
		tok := tokenizeQuoted(strings.TrimSpace(d[len("!ENTITY"):]))
		if len(tok) == 0 {
			return
		}
		if tok[0] == "%" {
			if len(tok) >= 3 {
				decl.paramEntities[tok[1]] = resolveEntityValue(tok[2:])
			}
			return
		}
		if len(tok) >= 2 {
			decl.entities[tok[0]] = resolveEntityValue(tok[1:])
		}
	case strings.HasPrefix(d, "!NOTATION"):
		tok := tokenizeQuoted(strings.TrimSpace(d[len("!NOTATION"):]))
		if len(tok) < 3 {
			return
		}
		name := tok[0]
		switch strings.ToUpper(tok[1]) {
		case "PUBLIC":
			if len(tok) >= 4 {
				decl.notations[name] = tok[2] + " " + tok[3]
			} else {
				decl.notations[name] = tok[2]
			}
		case "SYSTEM":
			decl.notations[name] = tok[2]
		}
	}
}

// resolveEntityValue extracts an entity's replacement text from the tokens
// following its name: either a single quoted literal, or a SYSTEM/PUBLIC
// external identifier (stored as-is; xmlcore does not fetch external
// entities).
func resolveEntityValue(tok []string) string {
	if len(tok) == 0 {
		return ""
	}
	switch strings.ToUpper(tok[0]) {
	case "SYSTEM":
		if len(tok) >= 2 {
			return tok[1]
		}
	case "PUBLIC":
		if len(tok) >= 3 {
			return tok[2]
		}
	default:
		return tok[0]
	}
	return ""
}

// tokenizeQuoted splits s on whitespace, treating '...'- and "..."-quoted
// runs as single tokens (quotes stripped) even if they contain whitespace.
func tokenizeQuoted(s string) []string {
	var out []string
	i := 0
	for i < len(s) {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			break
		}
		if s[i] == '"' || s[i] == '\'' {
			quote := s[i]
			i++
			start := i
			for i < len(s) && s[i] != quote {
				i++
			}
			out = append(out, s[start:i])
			if i < len(s) {
				i++
			}
			continue
		}
		start := i
		for i < len(s) && !isSpace(s[i]) {
			i++
		}
		out = append(out, s[start:i])
	}
	return out
}
