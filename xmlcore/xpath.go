package xmlcore

import (
	"strconv"
	"strings"
	"sync"
)

// Visitor is called once per match during QueryAll. Returning false stops
// enumeration early. attrName is non-empty when the compiled path ended in
// an @attr selector.
type Visitor func(t *Tag, attrName string) bool

// PathFunc is a custom named predicate usable as a bracketed path step, e.g.
// "item[isNumeric()]", registered with RegisterPathFunction.
type PathFunc func(t *Tag) bool

var (
	pathFuncMu    sync.RWMutex
	pathFunctions = map[string]PathFunc{
		"isNumeric": func(t *Tag) bool {
			s := contentOf(t)
			if s == "" {
				return false
			}
			_, err := strconv.ParseFloat(s, 64)
			return err == nil
		},
		"isAlpha": func(t *Tag) bool {
			s := contentOf(t)
			if s == "" {
				return false
			}
			for _, r := range s {
				if !(('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')) {
					return false
				}
			}
			return true
		},
	}
)

// RegisterPathFunction installs a named predicate usable in bracketed path
// steps. Registration is process-global, matching the scope of the
// teacher's query-function registry; callers should register once at
// startup rather than per-document.
func RegisterPathFunction(name string, fn PathFunc) {
	pathFuncMu.Lock()
	defer pathFuncMu.Unlock()
	pathFunctions[name] = fn
}

func lookupPathFunction(name string) (PathFunc, bool) {
	pathFuncMu.RLock()
	defer pathFuncMu.RUnlock()
	fn, ok := pathFunctions[name]
	return fn, ok
}

type pathStep struct {
	flat         bool
	name         string
	posIndex     int
	directIndex  int
	hasAttrPred  bool
	attrName     string
	attrHasValue bool
	attrValue    string
	hasContentPred bool
	contentValue string
	funcName     string
}

type compiledPath struct {
	steps     []pathStep
	finalAttr string
}

// compilePath parses a location path such as "/root//item[2]" or
// "/config/value/@default" into an executable step sequence. Each step
// takes at most one predicate.
func compilePath(path string) (*compiledPath, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, newErr("compilePath", KindStringFormat, "empty path")
	}
	if !strings.HasPrefix(path, "/") {
		return nil, newErr("compilePath", KindStringFormat, "path %q does not start with /", path)
	}

	flatLeading := false
	switch {
	case strings.HasPrefix(path, "//"):
		flatLeading = true
		path = path[2:]
	case strings.HasPrefix(path, "/"):
		path = path[1:]
	}

	rawParts := strings.Split(path, "/")
	cp := &compiledPath{}
	flatNext := flatLeading
	for i, raw := range rawParts {
		if raw == "" {
			flatNext = true
			continue
		}
		isLast := i == len(rawParts)-1
		if isLast && strings.HasPrefix(raw, "@") && !strings.Contains(raw, "[") {
			cp.finalAttr = raw[1:]
			continue
		}
		step, err := compileSegment(raw)
		if err != nil {
			return nil, err
		}
		step.flat = flatNext
		cp.steps = append(cp.steps, step)
		flatNext = false
	}
	return cp, nil
}

// maxTagNameLen bounds a compiled step's name, matching the resolver's
// fixed-size name buffer.
const maxTagNameLen = 120

func compileSegment(seg string) (pathStep, error) {
	step := pathStep{}
	open := strings.IndexByte(seg, '[')
	name := seg
	pred := ""
	if open >= 0 {
		if !strings.HasSuffix(seg, "]") {
			return step, newErr("compilePath", KindSyntax, "malformed predicate in %q", seg)
		}
		name = seg[:open]
		pred = seg[open+1 : len(seg)-1]
	}
	if len(name) >= maxTagNameLen {
		return step, newErr("compilePath", KindBufferOverflow, "tag name %q exceeds %d bytes", name, maxTagNameLen)
	}
	step.name = name

	if pred == "" {
		return step, nil
	}

	switch {
	case strings.HasPrefix(pred, "#"):
		n, err := strconv.Atoi(pred[1:])
		if err != nil {
			return step, newErr("compilePath", KindSyntax, "bad direct index %q", pred)
		}
		step.directIndex = n
	case strings.HasPrefix(pred, "@"):
		rest := pred[1:]
		if eq := strings.IndexByte(rest, '='); eq >= 0 {
			lit := rest[eq+1:]
			if err := checkQuoteBalance(lit); err != nil {
				return step, err
			}
			step.hasAttrPred = true
			step.attrHasValue = true
			step.attrName = rest[:eq]
			step.attrValue = unescapePredicateLiteral(trimQuotes(lit))
		} else {
			step.hasAttrPred = true
			step.attrName = rest
		}
	case strings.HasPrefix(pred, "="):
		lit := pred[1:]
		if err := checkQuoteBalance(lit); err != nil {
			return step, err
		}
		step.hasContentPred = true
		step.contentValue = unescapePredicateLiteral(trimQuotes(lit))
	case strings.HasSuffix(pred, "()"):
		step.funcName = pred[:len(pred)-2]
	default:
		n, err := strconv.Atoi(pred)
		if err != nil {
			return step, newErr("compilePath", KindSyntax, "bad predicate %q", pred)
		}
		step.posIndex = n
	}
	return step, nil
}

// checkQuoteBalance rejects a predicate literal that opens a quote but
// never closes it with the same quote character.
func checkQuoteBalance(s string) error {
	if len(s) == 0 {
		return nil
	}
	if s[0] == '\'' || s[0] == '"' {
		if len(s) < 2 || s[len(s)-1] != s[0] {
			return newErr("compilePath", KindSearch, "mismatched quote in predicate literal %q", s)
		}
	}
	return nil
}

func trimQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// unescapePredicateLiteral undoes the backslash-escapes a predicate literal
// may use to embed a literal quote or asterisk: \' and \*. Predicates then
// compare the unescaped literal for exact equality; an unescaped * is not
// treated as a wildcard.
func unescapePredicateLiteral(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\'' || s[i+1] == '*') {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func contentOf(t *Tag) string {
	if t.IsContentLike() {
		return t.Text()
	}
	var b strings.Builder
	for _, c := range t.children {
		if c.Kind() == KindContentNode {
			b.WriteString(c.Text())
		}
	}
	return strings.TrimSpace(b.String())
}

func matchName(t *Tag, name string) bool {
	if t.IsContentLike() {
		return false
	}
	if name == "*" {
		return true
	}
	return t.Name() == name
}

func matchPredicate(t *Tag, step pathStep) bool {
	switch {
	case step.hasAttrPred:
		v, ok := t.Attrib(step.attrName)
		if !ok {
			return false
		}
		if !step.attrHasValue {
			return true
		}
		return v == step.attrValue
	case step.hasContentPred:
		return contentOf(t) == step.contentValue
	case step.funcName != "":
		fn, ok := lookupPathFunction(step.funcName)
		if !ok {
			return false
		}
		return fn(t)
	default:
		return true
	}
}

func childrenOf(d *Document, scope *Tag) []*Tag {
	if scope == nil {
		return d.tags
	}
	return scope.children
}

func descendantsOf(d *Document, scope *Tag) []*Tag {
	var out []*Tag
	var walk func(t *Tag)
	walk = func(t *Tag) {
		for _, c := range t.children {
			out = append(out, c)
			walk(c)
		}
	}
	if scope == nil {
		for _, t := range d.tags {
			out = append(out, t)
			walk(t)
		}
	} else {
		walk(scope)
	}
	return out
}

// applyStep resolves one path step against one scope, honoring per-scope
// positional and direct-index subscripts.
func applyStep(d *Document, scope *Tag, step pathStep) []*Tag {
	pool := childrenOf(d, scope)
	if step.flat {
		pool = descendantsOf(d, scope)
	}

	if step.directIndex > 0 {
		if step.directIndex-1 < len(pool) {
			return pool[step.directIndex-1 : step.directIndex]
		}
		return nil
	}

	var matched []*Tag
	for _, t := range pool {
		if matchName(t, step.name) && matchPredicate(t, step) {
			matched = append(matched, t)
		}
	}
	if step.posIndex > 0 {
		if step.posIndex-1 < len(matched) {
			return matched[step.posIndex-1 : step.posIndex]
		}
		return nil
	}
	return matched
}

func resolveScopes(d *Document, start []*Tag, steps []pathStep) []*Tag {
	scopes := start
	for _, step := range steps {
		var next []*Tag
		for _, s := range scopes {
			next = append(next, applyStep(d, s, step)...)
		}
		scopes = next
		if len(scopes) == 0 {
			return nil
		}
	}
	return scopes
}

// Query resolves path against the document root and returns the first
// match. The matched tag (and attribute name, for an @attr-terminated
// path) become the document's cursor, retrievable via Document.Cursor
// until the next Query or mutation. For an @attr-terminated path, only tags
// that carry that attribute match.
func (d *Document) Query(path string) (*Tag, string, error) {
	return d.QueryFrom(nil, path)
}

// QueryFrom resolves path relative to ctx (nil for the document root).
func (d *Document) QueryFrom(ctx *Tag, path string) (*Tag, string, error) {
	cp, err := compilePath(path)
	if err != nil {
		return nil, "", err
	}
	matches := resolveScopes(d, []*Tag{ctx}, cp.steps)
	if cp.finalAttr != "" {
		var withAttr []*Tag
		for _, m := range matches {
			if _, ok := m.Attrib(cp.finalAttr); ok {
				withAttr = append(withAttr, m)
			}
		}
		matches = withAttr
	}
	if len(matches) == 0 {
		return nil, "", newErr("Query", KindSearch, "no match for %q", path)
	}
	d.cursor = matches[0]
	d.attrib = cp.finalAttr
	return matches[0], cp.finalAttr, nil
}

// QueryAll resolves path against the document root and invokes visit for
// every match in document order. After each callback the document's
// modification counter is re-checked; if a mutation occurred, enumeration
// stops and QueryAll returns ErrOutOfRange to signal iterator invalidation.
func (d *Document) QueryAll(path string, visit Visitor) error {
	return d.QueryAllFrom(nil, path, visit)
}

// QueryAllFrom resolves path relative to ctx (nil for the document root).
func (d *Document) QueryAllFrom(ctx *Tag, path string, visit Visitor) error {
	cp, err := compilePath(path)
	if err != nil {
		return err
	}
	matches := resolveScopes(d, []*Tag{ctx}, cp.steps)
	gen := d.modifiedCtr
	for _, m := range matches {
		if !visit(m, cp.finalAttr) {
			return nil
		}
		if d.modifiedCtr != gen {
			return newErr("QueryAll", KindOutOfRange, "document mutated during enumeration")
		}
	}
	return nil
}
