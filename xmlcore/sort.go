package xmlcore

import (
	"sort"
	"strconv"
	"strings"
)

// SortKey is one clause of a multi-key sibling sort. A key compares either
// an attribute value (Attrib set) or a child element's tag name/content
// (Attrib empty, TagName set; TagName "*" compares the sibling's own tag
// name). Numeric-looking values compare numerically; otherwise lexically.
type SortKey struct {
	TagName string
	Attrib  string
	Desc    bool
}

// ParseSortSpec parses a comma-separated sort-spec string such as
// "name,-@priority,@id" into a SortKey slice. A clause prefixed with '-' is
// descending; a clause prefixed with '@' compares an attribute, otherwise a
// child tag name's content ("*" means the sibling's own tag name).
func ParseSortSpec(spec string) []SortKey {
	var keys []SortKey
	for _, clause := range strings.Split(spec, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		k := SortKey{}
		if strings.HasPrefix(clause, "-") {
			k.Desc = true
			clause = clause[1:]
		}
		if strings.HasPrefix(clause, "@") {
			k.Attrib = clause[1:]
		} else {
			k.TagName = clause
		}
		keys = append(keys, k)
	}
	return keys
}

func sortValue(d *Document, t *Tag, k SortKey) string {
	if k.Attrib != "" {
		v, _ := t.Attrib(k.Attrib)
		return v
	}
	if k.TagName == "*" || k.TagName == "" {
		return t.Name()
	}
	for _, c := range t.children {
		if matchName(c, k.TagName) {
			return contentOf(c)
		}
	}
	return ""
}

func compareValues(a, b string) int {
	af, aerr := strconv.ParseFloat(a, 64)
	bf, berr := strconv.ParseFloat(b, 64)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// IsSorted reports whether parent's element children are already ordered
// per keys, letting CHECK_SORT skip a redundant SortChildren call.
func (d *Document) IsSorted(parent *Tag, keys []SortKey) bool {
	children := elementChildren(parent)
	for i := 1; i < len(children); i++ {
		if compareSiblings(d, children[i-1], children[i], keys) > 0 {
			return false
		}
	}
	return true
}

func compareSiblings(d *Document, a, b *Tag, keys []SortKey) int {
	if av, aok := a.Attrib("sort"); aok {
		if bv, bok := b.Attrib("sort"); bok {
			return compareValues(av, bv)
		}
	}
	for _, k := range keys {
		c := compareValues(sortValue(d, a, k), sortValue(d, b, k))
		if k.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

func elementChildren(parent *Tag) []*Tag {
	var out []*Tag
	for _, c := range parent.children {
		if c.Kind() == KindElement {
			out = append(out, c)
		}
	}
	return out
}

// SortChildren stably reorders parent's element children per keys, leaving
// non-element children (text, comments, processing instructions) pinned to
// the position of the element they immediately preceded. When both children
// being compared carry an explicit "sort" attribute, they compare by those
// values alone and keys (including their Desc) are not consulted; otherwise
// the keys decide.
func (d *Document) SortChildren(parent *Tag, keys []SortKey) error {
	if d.readOnly {
		return ErrReadOnly
	}
	elems := elementChildren(parent)
	if len(elems) < 2 {
		return nil
	}
	sort.SliceStable(elems, func(i, j int) bool {
		return compareSiblings(d, elems[i], elems[j], keys) < 0
	})

	merged := make([]*Tag, 0, len(parent.children))
	ei := 0
	for _, c := range parent.children {
		if c.Kind() == KindElement {
			merged = append(merged, elems[ei])
			ei++
		} else {
			merged = append(merged, c)
		}
	}
	parent.children = merged
	d.bumpModified()
	return nil
}
