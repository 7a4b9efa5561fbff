package xmlcore

// ParseFlag controls parser behavior. Values are combined with bitwise OR.
type ParseFlag uint32

const (
	// WellFormed rejects unbalanced tags with ErrUnbalancedXML instead of
	// silently truncating the tag list.
	WellFormed ParseFlag = 1 << iota
	// IncludeComments emits comment tags into the tree; by default comments
	// are stripped during parsing.
	IncludeComments
	// StripContent discards all inter-tag text content.
	StripContent
	// LowerCase folds tag and attribute names to lower case at parse time.
	LowerCase
	// UpperCase folds tag and attribute names to upper case at parse time.
	UpperCase
	// New permits Parse to receive empty data, producing an empty Document
	// with no root tag instead of failing with ErrNoData. Non-empty data is
	// parsed normally regardless of this flag.
	New
	// NoEscape disables entity-decoding of attribute and content values.
	NoEscape
	// AllContent preserves whitespace-only content between tags instead of
	// discarding it.
	AllContent
	// ParseHTML is reserved for a future relaxed/lenient parser. Setting it
	// without New causes Parse to fail with ErrSyntax; see DESIGN.md.
	ParseHTML
	// StripHeaders omits processing instructions and the DOCTYPE declaration
	// from the resulting tree.
	StripHeaders
	// ParseEntity parses DOCTYPE ENTITY/NOTATION declarations into the
	// document's entity and notation tables. Declarations are always
	// recognized; this flag only controls whether they are retained.
	ParseEntity
	// LockRemove causes every mutation that removes tags to fail with
	// ErrReadOnly, while other mutations remain permitted.
	LockRemove
)

// SerializeFlag controls serializer output.
type SerializeFlag uint32

const (
	// Readable (aka Indent) inserts line breaks between sibling and child
	// elements.
	Readable SerializeFlag = 1 << iota
	// IncludeSiblings emits the starting tag plus every tag that follows it
	// in the same containing sequence.
	IncludeSiblings
	// StripCDATA emits CDATA section contents as plain escaped text instead
	// of wrapping them in <![CDATA[ ]]>.
	StripCDATA
	// SerializeStripHeaders omits processing instructions and DOCTYPE nodes
	// from serialized output, independent of how the document was parsed.
	SerializeStripHeaders
)

// Where identifies an insertion position relative to a target tag.
type Where int

const (
	// Prev inserts immediately before the target.
	Prev Where = iota
	// Next inserts immediately after the target.
	Next
	// Child inserts as the first child of the target.
	Child
	// ChildEnd inserts as the last child of the target.
	ChildEnd
	// End appends to the containing sequence (document root or parent's
	// children), ignoring the target's own position.
	End
)

// AttribSelector identifies how set_attrib locates the attribute to modify.
type AttribSelector int

const (
	// AttribNew always appends a new attribute.
	AttribNew AttribSelector = -1 - iota
	// AttribUpdate updates the attribute by case-insensitive name if found,
	// otherwise appends it.
	AttribUpdate
	// AttribUpdateOnly updates by case-insensitive name and fails with
	// ErrSearch if no match exists.
	AttribUpdateOnly
)
