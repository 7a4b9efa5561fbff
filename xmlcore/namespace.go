package xmlcore

import (
	"net/url"
	"strings"
)

// namespaceTable interns namespace URIs into per-document stable ids,
// matching spec's namespace registry.
type namespaceTable struct {
	uriToID map[string]uint32
	idToURI map[uint32]string
	next    uint32
}

func newNamespaceTable() *namespaceTable {
	return &namespaceTable{
		uriToID: make(map[string]uint32),
		idToURI: make(map[uint32]string),
		next:    1,
	}
}

// Intern registers uri on first mention and returns its stable id.
func (n *namespaceTable) Intern(uri string) uint32 {
	if id, ok := n.uriToID[uri]; ok {
		return id
	}
	id := n.next
	n.next++
	n.uriToID[uri] = id
	n.idToURI[id] = uri
	return id
}

// URI resolves a namespace id back to its URI.
func (n *namespaceTable) URI(id uint32) (string, bool) {
	u, ok := n.idToURI[id]
	return u, ok
}

// NamespaceURI returns the interned URI for t's namespace, if any.
func (d *Document) NamespaceURI(t *Tag) (string, bool) {
	if !t.hasNS {
		return "", false
	}
	return d.nsTable.URI(t.namespaceID)
}

// ResolvePrefix walks the ancestor chain of t looking for an xmlns:prefix
// (or default xmlns, when prefix is "") declaration and returns the bound
// URI.
func (d *Document) ResolvePrefix(t *Tag, prefix string) (string, bool) {
	attrName := "xmlns"
	if prefix != "" {
		attrName = "xmlns:" + prefix
	}
	cur := t
	for cur != nil {
		if v, ok := cur.Attrib(attrName); ok {
			return v, true
		}
		p, ok := d.GetParent(cur)
		if !ok {
			break
		}
		cur = p
	}
	return "", false
}

// BaseURI resolves the effective xml:base for a tag by walking its ancestor
// chain for the nearest xml:base declaration and resolving relative
// references against any base found further up. Results are memoized into
// the document's base_uri_map.
func (d *Document) BaseURI(tagID uint32) (string, error) {
	if cached, ok := d.baseURIMap[tagID]; ok {
		return cached, nil
	}
	t, ok := d.GetTag(tagID)
	if !ok {
		return "", newErr("BaseURI", KindNotFound, "no such tag id %d", tagID)
	}

	var chain []*Tag
	for cur := t; cur != nil; {
		chain = append(chain, cur)
		p, ok := d.GetParent(cur)
		if !ok {
			break
		}
		cur = p
	}

	base := ""
	for i := len(chain) - 1; i >= 0; i-- {
		v, ok := chain[i].Attrib("xml:base")
		if !ok {
			continue
		}
		if base == "" || strings.Contains(v, "://") {
			base = v
			continue
		}
		resolved, err := resolveRelative(base, v)
		if err == nil {
			base = resolved
		}
	}
	d.baseURIMap[tagID] = base
	return base, nil
}

func resolveRelative(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}
