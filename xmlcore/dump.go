package xmlcore

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

// Dump renders the whole document as a non-normative, human-readable tree
// view for debugging and logging. The output is never valid XML and must
// never be fed back into Parse.
func (d *Document) Dump() string {
	var b strings.Builder
	for _, t := range d.tags {
		dumpTag(&b, d, t, 0)
	}
	return b.String()
}

// Dump renders t and its descendants as a non-normative tree view.
func (t *Tag) Dump() string {
	var b strings.Builder
	dumpTag(&b, nil, t, 0)
	return b.String()
}

func dumpTag(b *strings.Builder, d *Document, t *Tag, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	switch t.Kind() {
	case KindContentNode:
		fmt.Fprintf(b, "#text %q\n", t.Text())
	case KindCDATANode:
		fmt.Fprintf(b, "#cdata %q\n", t.Text())
	case KindCommentNode:
		fmt.Fprintf(b, "#comment %q\n", t.Text())
	case KindInstructionNode:
		fmt.Fprintf(b, "#instruction %q\n", t.Text())
	default:
		fmt.Fprintf(b, "<%s> (id=%d)\n", t.Name(), t.id)
		if len(t.attribs) > 1 {
			rows := [][]string{{"attr", "value"}}
			for _, a := range t.attribs[1:] {
				rows = append(rows, []string{a.Name, a.Value})
			}
			table := rosed.Edit("").
				InsertTableOpts(0, rows, 72, rosed.Options{TableHeaders: true}).
				String()
			for _, line := range strings.Split(table, "\n") {
				if line == "" {
					continue
				}
				b.WriteString(strings.Repeat("  ", depth+1))
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}
	for _, c := range t.children {
		dumpTag(b, d, c, depth+1)
	}
}

// Stats summarizes a document's shape, used by the stats CLI subcommand.
type Stats struct {
	TotalTags     int
	Elements      int
	ContentNodes  int
	Comments      int
	Instructions  int
	MaxDepth      int
}

// Stats walks the whole tree once and tallies its shape.
func (d *Document) Stats() Stats {
	var s Stats
	var walk func(t *Tag)
	walk = func(t *Tag) {
		s.TotalTags++
		if t.branch > s.MaxDepth {
			s.MaxDepth = t.branch
		}
		switch t.Kind() {
		case KindElement:
			s.Elements++
		case KindContentNode, KindCDATANode:
			s.ContentNodes++
		case KindCommentNode:
			s.Comments++
		case KindInstructionNode:
			s.Instructions++
		}
		for _, c := range t.children {
			walk(c)
		}
	}
	for _, t := range d.tags {
		walk(t)
	}
	return s
}
