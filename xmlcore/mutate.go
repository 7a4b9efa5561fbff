package xmlcore

// InsertContent creates a new content tag holding text and places it
// relative to target according to where.
func (d *Document) InsertContent(targetID uint32, where Where, text string) (*Tag, error) {
	if d.readOnly {
		return nil, ErrReadOnly
	}
	t := &Tag{
		lineNo:  0,
		flags:   FlagContent,
		attribs: []Attrib{{Value: text}},
	}
	return d.insertTag(targetID, where, t)
}

// InsertElement creates a new, childless element named name and places it
// relative to target according to where.
func (d *Document) InsertElement(targetID uint32, where Where, name string) (*Tag, error) {
	if d.readOnly {
		return nil, ErrReadOnly
	}
	t := &Tag{
		attribs: []Attrib{{Name: name}},
	}
	return d.insertTag(targetID, where, t)
}

// InsertXML parses xmlText as a fragment (its own top-level tag list) and
// inserts every resulting top-level tag relative to target according to
// where, in order. It returns the first inserted tag.
func (d *Document) InsertXML(targetID uint32, where Where, xmlText string, flags ParseFlag) (*Tag, error) {
	if d.readOnly {
		return nil, ErrReadOnly
	}
	frag, err := Parse([]byte(xmlText), flags|New)
	if err != nil {
		return nil, err
	}
	if len(frag.tags) == 0 {
		return nil, newErr("InsertXML", KindNoData, "fragment contains no tags")
	}
	var first *Tag
	cur := targetID
	curWhere := where
	for _, t := range frag.tags {
		inserted, err := d.insertTag(cur, curWhere, t)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = inserted
		}
		// Chain subsequent fragment roots after the one just inserted so
		// the fragment's own order is preserved.
		cur = inserted.id
		curWhere = Next
	}
	return first, nil
}

// InsertXPath resolves path to a single tag and delegates to InsertXML.
func (d *Document) InsertXPath(path string, where Where, xmlText string, flags ParseFlag) (*Tag, error) {
	if d.readOnly {
		return nil, ErrReadOnly
	}
	target, _, err := d.Query(path)
	if err != nil {
		return nil, err
	}
	return d.InsertXML(target.id, where, xmlText, flags)
}

// insertTag assigns ids to t and its descendants and splices it into the
// tree at the position named by (targetID, where).
func (d *Document) insertTag(targetID uint32, where Where, t *Tag) (*Tag, error) {
	target, ok := d.GetTag(targetID)
	if !ok {
		return nil, newErr("insertTag", KindNotFound, "no such tag id %d", targetID)
	}
	assignIDs(d, t)

	switch where {
	case Prev, Next:
		container, idx := d.containerOf(target)
		if idx < 0 {
			return nil, newErr("insertTag", KindNotFound, "target not found in its container")
		}
		pos := idx
		if where == Next {
			pos = idx + 1
		}
		*container = insertAt(*container, pos, t)
		if parent, ok := d.GetParent(target); ok {
			t.hasParent, t.parentID = true, parent.id
			d.register(t, parent)
			renumberBranch(t, parent.branch+1)
		} else {
			t.hasParent = false
			d.register(t, nil)
			renumberBranch(t, 0)
		}
	case Child:
		target.children = insertAt(target.children, 0, t)
		t.hasParent, t.parentID = true, target.id
		d.register(t, target)
		renumberBranch(t, target.branch+1)
	case ChildEnd:
		target.children = append(target.children, t)
		t.hasParent, t.parentID = true, target.id
		d.register(t, target)
		renumberBranch(t, target.branch+1)
	case End:
		if parent, ok := d.GetParent(target); ok {
			parent.children = append(parent.children, t)
			t.hasParent, t.parentID = true, parent.id
			d.register(t, parent)
			renumberBranch(t, parent.branch+1)
		} else {
			d.tags = append(d.tags, t)
			t.hasParent = false
			d.register(t, nil)
			renumberBranch(t, 0)
		}
	default:
		return nil, newErr("insertTag", KindArgs, "unknown where-code %d", where)
	}

	d.bumpModified()
	return t, nil
}

func insertAt(s []*Tag, pos int, t *Tag) []*Tag {
	if pos < 0 {
		pos = 0
	}
	if pos > len(s) {
		pos = len(s)
	}
	s = append(s, nil)
	copy(s[pos+1:], s[pos:])
	s[pos] = t
	return s
}

// assignIDs allocates fresh document-local ids for t and every descendant,
// so fragments built or parsed independently can be grafted safely.
func assignIDs(d *Document, t *Tag) {
	t.id = d.allocID()
	for _, c := range t.children {
		assignIDs(d, c)
		c.parentID = t.id
	}
}

// RemoveTag deletes the tag identified by id, together with its subtree.
func (d *Document) RemoveTag(id uint32) error {
	if d.readOnly || d.flags&LockRemove != 0 {
		return ErrReadOnly
	}
	t, ok := d.GetTag(id)
	if !ok {
		return newErr("RemoveTag", KindNotFound, "no such tag id %d", id)
	}
	container, idx := d.containerOf(t)
	if idx < 0 {
		return newErr("RemoveTag", KindNotFound, "tag not found in its container")
	}
	*container = append((*container)[:idx], (*container)[idx+1:]...)
	d.unregister(t)
	d.bumpModified()
	return nil
}

// RemoveXPath repeatedly resolves path against the document root and
// removes each match, up to limit removals (limit <= 0 means unlimited).
// If path ends in @attr, each match removes only that attribute rather
// than the whole tag. Because the document is re-queried after every
// removal, previously computed positional indices cannot go stale.
func (d *Document) RemoveXPath(path string, limit int) (int, error) {
	if d.readOnly {
		return 0, ErrReadOnly
	}
	removed := 0
	for limit <= 0 || removed < limit {
		t, attr, err := d.Query(path)
		if err != nil {
			if removed > 0 {
				return removed, nil
			}
			return 0, err
		}
		if attr != "" {
			if err := d.removeAttribByName(t, attr); err != nil {
				return removed, err
			}
		} else if err := d.RemoveTag(t.id); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// removeAttribByName deletes the named attribute (case-insensitive) from
// t's attribute list, failing with Search if it is not present.
func (d *Document) removeAttribByName(t *Tag, name string) error {
	i, ok := t.AttribFold(name)
	if !ok {
		return newErr("RemoveXPath", KindSearch, "attribute %q not present", name)
	}
	t.attribs = append(t.attribs[:i], t.attribs[i+1:]...)
	d.bumpModified()
	return nil
}

// MoveTag relocates the subtree rooted at id to a new position relative to
// targetID, rejecting moves where target lies inside the moved subtree.
func (d *Document) MoveTag(id uint32, targetID uint32, where Where) error {
	if d.readOnly {
		return ErrReadOnly
	}
	t, ok := d.GetTag(id)
	if !ok {
		return newErr("MoveTag", KindNotFound, "no such tag id %d", id)
	}
	target, ok := d.GetTag(targetID)
	if !ok {
		return newErr("MoveTag", KindNotFound, "no such tag id %d", targetID)
	}
	if id == targetID || isAncestorOf(d, t, target) {
		return newErr("MoveTag", KindArgs, "target %d is not disjoint from subtree %d", targetID, id)
	}

	container, idx := d.containerOf(t)
	if idx < 0 {
		return newErr("MoveTag", KindNotFound, "tag not found in its container")
	}
	*container = append((*container)[:idx], (*container)[idx+1:]...)

	switch where {
	case Prev, Next:
		dstContainer, dstIdx := d.containerOf(target)
		if dstIdx < 0 {
			return newErr("MoveTag", KindNotFound, "target not found in its container")
		}
		pos := dstIdx
		if where == Next {
			pos = dstIdx + 1
		}
		*dstContainer = insertAt(*dstContainer, pos, t)
		if parent, ok := d.GetParent(target); ok {
			t.hasParent, t.parentID = true, parent.id
			renumberBranch(t, parent.branch+1)
		} else {
			t.hasParent = false
			renumberBranch(t, 0)
		}
	case Child:
		target.children = insertAt(target.children, 0, t)
		t.hasParent, t.parentID = true, target.id
		renumberBranch(t, target.branch+1)
	case ChildEnd:
		target.children = append(target.children, t)
		t.hasParent, t.parentID = true, target.id
		renumberBranch(t, target.branch+1)
	case End:
		if parent, ok := d.GetParent(target); ok {
			parent.children = append(parent.children, t)
			t.hasParent, t.parentID = true, parent.id
			renumberBranch(t, parent.branch+1)
		} else {
			d.tags = append(d.tags, t)
			t.hasParent = false
			renumberBranch(t, 0)
		}
	default:
		return newErr("MoveTag", KindArgs, "unknown where-code %d", where)
	}

	d.unregister(t)
	if parent, ok := d.GetParent(target); ok && (where == Prev || where == Next) {
		d.register(t, parent)
	} else if where == Child || where == ChildEnd {
		d.register(t, target)
	} else {
		p, _ := d.GetParent(target)
		d.register(t, p)
	}
	d.bumpModified()
	return nil
}

func isAncestorOf(d *Document, ancestor, t *Tag) bool {
	cur := t
	for {
		p, ok := d.GetParent(cur)
		if !ok {
			return false
		}
		if p.id == ancestor.id {
			return true
		}
		cur = p
	}
}

// SetAttrib edits t's attribute list according to sel: a non-negative
// index with a non-nil value replaces attrib[sel] outright (Name and
// Value; at index 0 only Name is replaced and Value is left as it is),
// while the AttribNew/AttribUpdate/AttribUpdateOnly selectors
// append, upsert, or require-then-update by name. A nil value passed with
// a non-negative index removes the attribute instead of replacing it;
// index 0 can never be removed (it holds the element name), so a nil
// value there clears its content instead.
func (d *Document) SetAttrib(t *Tag, sel int, name string, value *string) error {
	if d.readOnly {
		return ErrReadOnly
	}
	switch {
	case sel >= 0:
		if sel >= len(t.attribs) {
			return newErr("SetAttrib", KindOutOfRange, "attribute index %d out of range", sel)
		}
		if value == nil {
			if sel == 0 {
				t.attribs[0].Value = ""
			} else {
				t.attribs = append(t.attribs[:sel], t.attribs[sel+1:]...)
			}
			break
		}
		if sel == 0 {
			t.attribs[0].Name = name
		} else {
			t.attribs[sel] = Attrib{Name: name, Value: *value}
		}
	case AttribSelector(sel) == AttribNew:
		t.attribs = append(t.attribs, Attrib{Name: name, Value: derefAttribValue(value)})
	case AttribSelector(sel) == AttribUpdate:
		if i, ok := t.AttribFold(name); ok {
			t.attribs[i].Value = derefAttribValue(value)
		} else {
			t.attribs = append(t.attribs, Attrib{Name: name, Value: derefAttribValue(value)})
		}
	case AttribSelector(sel) == AttribUpdateOnly:
		i, ok := t.AttribFold(name)
		if !ok {
			return newErr("SetAttrib", KindSearch, "attribute %q not present", name)
		}
		t.attribs[i].Value = derefAttribValue(value)
	default:
		return newErr("SetAttrib", KindArgs, "unknown attribute selector %d", sel)
	}
	d.bumpModified()
	return nil
}

func derefAttribValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
