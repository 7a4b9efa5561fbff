package xmlcore

import "testing"

func TestResolvePrefix(t *testing.T) {
	doc := mustParse(t, `<root xmlns:h="http://example.com/h"><h:table/></root>`, 0)
	root := doc.Tags()[0]
	table := root.Children()[0]
	uri, ok := doc.ResolvePrefix(table, "h")
	if !ok || uri != "http://example.com/h" {
		t.Errorf("expected h bound to http://example.com/h, got %q ok=%v", uri, ok)
	}
}

func TestParse_InternsElementNamespace(t *testing.T) {
	doc := mustParse(t, `<root xmlns:h="http://example.com/h"><h:table/><plain/></root>`, 0)
	root := doc.Tags()[0]
	table, plain := root.Children()[0], root.Children()[1]

	uri, ok := doc.NamespaceURI(table)
	if !ok || uri != "http://example.com/h" {
		t.Errorf("expected h:table interned into http://example.com/h, got %q ok=%v", uri, ok)
	}
	if _, ok := doc.NamespaceURI(plain); ok {
		t.Error("expected an unprefixed element with no default xmlns to carry no namespace id")
	}
}

func TestBaseURI_InheritsAndResolves(t *testing.T) {
	data := `<root xml:base="http://example.com/docs/"><section xml:base="sub/"><page/></section></root>`
	doc := mustParse(t, data, 0)
	root := doc.Tags()[0]
	section := root.Children()[0]
	page := section.Children()[0]

	base, err := doc.BaseURI(page.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "http://example.com/docs/sub/"
	if base != want {
		t.Errorf("expected %q, got %q", want, base)
	}
}

func TestNamespaceTable_Intern(t *testing.T) {
	nt := newNamespaceTable()
	id1 := nt.Intern("http://a")
	id2 := nt.Intern("http://b")
	id1Again := nt.Intern("http://a")
	if id1 != id1Again {
		t.Errorf("expected repeated Intern to return same id")
	}
	if id1 == id2 {
		t.Errorf("expected distinct uris to get distinct ids")
	}
	if uri, ok := nt.URI(id2); !ok || uri != "http://b" {
		t.Errorf("expected URI lookup to round trip, got %q ok=%v", uri, ok)
	}
}
