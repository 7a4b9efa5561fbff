package xmlcore

import "testing"

func TestSortChildren_ByAttribute(t *testing.T) {
	doc := mustParse(t, `<root><item id="3"/><item id="1"/><item id="2"/></root>`, 0)
	root := doc.Tags()[0]
	if err := doc.SortChildren(root, ParseSortSpec("@id")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := []string{}
	for _, c := range root.Children() {
		v, _ := c.Attrib("id")
		ids = append(ids, v)
	}
	want := []string{"1", "2", "3"}
	for i, v := range want {
		if ids[i] != v {
			t.Errorf("position %d: expected %q, got %q (full order %v)", i, v, ids[i], ids)
		}
	}
}

func TestSortChildren_Descending(t *testing.T) {
	doc := mustParse(t, `<root><item id="1"/><item id="3"/><item id="2"/></root>`, 0)
	root := doc.Tags()[0]
	keys := ParseSortSpec("-@id")
	if err := doc.SortChildren(root, keys); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, _ := root.Children()[0].Attrib("id")
	if first != "3" {
		t.Errorf("expected descending order to start at 3, got %q", first)
	}
}

func TestSortChildren_ExplicitSortAttribOverrides(t *testing.T) {
	doc := mustParse(t, `<root><item id="1" sort="9"/><item id="2" sort="1"/></root>`, 0)
	root := doc.Tags()[0]
	if err := doc.SortChildren(root, ParseSortSpec("@id")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, _ := root.Children()[0].Attrib("id")
	if first != "2" {
		t.Errorf("expected explicit sort attribute to override @id ordering, got %q", first)
	}
}

func TestIsSorted(t *testing.T) {
	doc := mustParse(t, `<root><item id="1"/><item id="2"/></root>`, 0)
	root := doc.Tags()[0]
	keys := ParseSortSpec("@id")
	if !doc.IsSorted(root, keys) {
		t.Error("expected already-sorted document to report sorted")
	}
	doc2 := mustParse(t, `<root><item id="2"/><item id="1"/></root>`, 0)
	if doc2.IsSorted(doc2.Tags()[0], keys) {
		t.Error("expected unsorted document to report unsorted")
	}
}
