package xmlcore

import (
	"github.com/google/uuid"
)

// Document is the root container and exclusive owner of a parsed XML tree
// and its auxiliary tables. A Document is not safe for concurrent mutation
// from multiple goroutines; distinct Documents share no mutable state and
// may be processed in parallel, each from its own goroutine.
type Document struct {
	tags []*Tag

	entities          map[string]string
	parameterEntities map[string]string
	notations         map[string]string

	doctype  string
	publicID string
	systemID string

	nsTable      *namespaceTable
	baseURIMap   map[uint32]string
	variables    map[string]string
	modifiedCtr  uint64
	flags        ParseFlag
	readOnly     bool

	lineNo      int
	parseErr    error
	errorMsg    string
	hasSentinel bool

	cursor *Tag
	attrib string

	nextID uint32
	index  map[uint32]*Tag
	parent map[uint32]*Tag // entry for every registered id; nil-valued for top-level tags

	// instanceID correlates diagnostics for one Document among many
	// processed concurrently; it has no bearing on any XML semantics and is
	// never serialized.
	instanceID uuid.UUID
}

// newEmptyDocument allocates a Document with all tables initialized and no
// tags, used both by Parse and by the New parse flag.
func newEmptyDocument(flags ParseFlag) *Document {
	return &Document{
		entities:          make(map[string]string),
		parameterEntities: make(map[string]string),
		notations:         make(map[string]string),
		nsTable:           newNamespaceTable(),
		baseURIMap:        make(map[uint32]string),
		variables:         make(map[string]string),
		flags:             flags,
		nextID:            1,
		index:             make(map[uint32]*Tag),
		parent:            make(map[uint32]*Tag),
		instanceID:        uuid.New(),
	}
}

// InstanceID returns the document's diagnostic correlation identifier.
func (d *Document) InstanceID() uuid.UUID { return d.instanceID }

// Tags returns the document's top-level tag sequence. The returned slice
// aliases document-owned storage until the next mutation.
func (d *Document) Tags() []*Tag { return d.tags }

// ReadOnly reports whether mutation operations on this document fail.
func (d *Document) ReadOnly() bool { return d.readOnly }

// SetReadOnly locks the document against further mutation. Once set, a
// Document never becomes writable again for its lifetime.
func (d *Document) SetReadOnly() { d.readOnly = true }

// ModifiedCounter returns the monotonically increasing counter incremented
// by every successful mutation.
func (d *Document) ModifiedCounter() uint64 { return d.modifiedCtr }

// ParseError returns the error recorded by the most recent failed Parse, if
// any.
func (d *Document) ParseError() error { return d.parseErr }

// ErrorMsg returns the message of the error at which a non-WellFormed Parse
// stopped early (see ParseError), or "" if it did not. Query operations do
// not set it.
func (d *Document) ErrorMsg() string { return d.errorMsg }

// HasSentinel reports whether the document's lead comment began with the
// parser's built-in sentinel prefix ("$FLUID"); the prefix is not
// configurable per Parse call. The sentinel is recognized but never
// otherwise interpreted.
func (d *Document) HasSentinel() bool { return d.hasSentinel }

// Doctype, PublicID and SystemID expose the parsed DOCTYPE declaration's
// header fields, populated regardless of whether StripHeaders suppressed
// the DOCTYPE tag itself.
func (d *Document) Doctype() string  { return d.doctype }
func (d *Document) PublicID() string { return d.publicID }
func (d *Document) SystemID() string { return d.systemID }

// GetEntity looks up a general entity declared in the document's internal
// subset. Populated only when ParseEntity was set at parse time.
func (d *Document) GetEntity(name string) (string, bool) {
	v, ok := d.entities[name]
	return v, ok
}

// GetParameterEntity looks up a parameter entity (%name;) declared in the
// document's internal subset.
func (d *Document) GetParameterEntity(name string) (string, bool) {
	v, ok := d.parameterEntities[name]
	return v, ok
}

// GetNotation looks up a NOTATION declaration by name. The returned string
// is the system id, or "public-id system-id" when both were declared.
func (d *Document) GetNotation(name string) (string, bool) {
	v, ok := d.notations[name]
	return v, ok
}

// Cursor returns the tag matched by the most recent successful Query, and
// the attribute name matched alongside it (empty if the query did not end
// in @attr). Both remain valid until the next query or mutation.
func (d *Document) Cursor() (*Tag, string) { return d.cursor, d.attrib }

// Variables exposes the XPath variable table for host configuration.
func (d *Document) Variables() map[string]string { return d.variables }

func (d *Document) bumpModified() {
	d.modifiedCtr++
	d.cursor = nil
	d.attrib = ""
}

func (d *Document) allocID() uint32 {
	id := d.nextID
	d.nextID++
	return id
}

// GetTag resolves a tag by id. O(1) via the document's id index.
func (d *Document) GetTag(id uint32) (*Tag, bool) {
	t, ok := d.index[id]
	return t, ok
}

// GetParent returns the parent of the given tag, if it has one.
func (d *Document) GetParent(t *Tag) (*Tag, bool) {
	p, ok := d.parent[t.id]
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// register adds t (and, recursively, its children) to the id index and
// parent map. parent is nil for top-level tags.
func (d *Document) register(t *Tag, parent *Tag) {
	d.index[t.id] = t
	d.parent[t.id] = parent
	for _, c := range t.children {
		d.register(c, t)
	}
}

// unregister removes t and its descendants from the id index and parent
// map, used by remove_tag.
func (d *Document) unregister(t *Tag) {
	delete(d.index, t.id)
	delete(d.parent, t.id)
	for _, c := range t.children {
		d.unregister(c)
	}
}

// containerOf returns a pointer to the slice that owns t (either
// &Document.tags or &parent.children) together with t's current position
// in that slice.
func (d *Document) containerOf(t *Tag) (*[]*Tag, int) {
	var container *[]*Tag
	if p, ok := d.GetParent(t); ok {
		container = &p.children
	} else {
		container = &d.tags
	}
	for i, c := range *container {
		if c.id == t.id {
			return container, i
		}
	}
	return container, -1
}

func renumberBranch(t *Tag, branch int) {
	t.branch = branch
	for _, c := range t.children {
		renumberBranch(c, branch+1)
	}
}
