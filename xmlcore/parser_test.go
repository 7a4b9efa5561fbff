package xmlcore

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_RejectsNonTagLeadingContent(t *testing.T) {
	_, err := Parse([]byte("hello world"), 0)
	if err == nil {
		t.Fatal("expected an error for input not starting with a tag")
	}
	if !errors.Is(err, ErrInvalidData) {
		t.Errorf("expected ErrInvalidData, got %v", err)
	}
}

func TestParse_BasicTree(t *testing.T) {
	data := `<library><book id="1">Go 101</book><book id="2">Effective Go</book></library>`
	doc, err := Parse([]byte(data), WellFormed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Tags()) != 1 {
		t.Fatalf("expected 1 root tag, got %d", len(doc.Tags()))
	}
	root := doc.Tags()[0]
	if root.Name() != "library" {
		t.Errorf("expected root name library, got %q", root.Name())
	}
	if len(root.Children()) != 2 {
		t.Fatalf("expected 2 book children, got %d", len(root.Children()))
	}
	book1 := root.Children()[0]
	if id, ok := book1.Attrib("id"); !ok || id != "1" {
		t.Errorf("expected id=1, got %q ok=%v", id, ok)
	}
	if contentOf(book1) != "Go 101" {
		t.Errorf("expected content Go 101, got %q", contentOf(book1))
	}
}

func TestParse_SelfClosingAndAttributes(t *testing.T) {
	doc, err := Parse([]byte(`<img src="a.png" alt='hi there'/>`), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img := doc.Tags()[0]
	if len(img.Children()) != 0 {
		t.Errorf("expected no children, got %d", len(img.Children()))
	}
	if v, _ := img.Attrib("alt"); v != "hi there" {
		t.Errorf("expected alt=hi there, got %q", v)
	}
}

func TestParse_CDATAAndComments(t *testing.T) {
	data := `<root><!-- a note --><![CDATA[<raw> & unescaped]]></root>`
	doc, err := Parse([]byte(data), IncludeComments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := doc.Tags()[0]
	if len(root.Children()) != 2 {
		t.Fatalf("expected comment + cdata children, got %d", len(root.Children()))
	}
	if root.Children()[0].Kind() != KindCommentNode {
		t.Errorf("expected first child to be a comment")
	}
	if root.Children()[1].Kind() != KindCDATANode {
		t.Errorf("expected second child to be CDATA")
	}
	if root.Children()[1].Text() != "<raw> & unescaped" {
		t.Errorf("CDATA text must not be escape-decoded, got %q", root.Children()[1].Text())
	}
}

func TestParse_CommentsDroppedByDefault(t *testing.T) {
	doc, err := Parse([]byte(`<root><!-- hidden --><a/></root>`), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := doc.Tags()[0]
	if len(root.Children()) != 1 {
		t.Fatalf("expected comment dropped, got %d children", len(root.Children()))
	}
}

func TestParse_EntityEscaping(t *testing.T) {
	doc, err := Parse([]byte(`<root>a &amp; b &#65; &#x42;</root>`), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := contentOf(doc.Tags()[0])
	want := "a & b A B"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestParse_UnbalancedStrictFails(t *testing.T) {
	_, err := Parse([]byte(`<a><b></a>`), WellFormed)
	if err == nil {
		t.Fatal("expected an error for mismatched end tag under WellFormed")
	}
	xerr, ok := err.(*Error)
	if !ok || xerr.Kind != KindUnbalancedXML {
		t.Errorf("expected KindUnbalancedXML, got %v", err)
	}
}

func TestParse_UnbalancedTolerant(t *testing.T) {
	doc, err := Parse([]byte(`<a><b>text</a>`), 0)
	if err != nil {
		t.Fatalf("tolerant parse should not fail outright: %v", err)
	}
	if len(doc.Tags()) != 1 {
		t.Fatalf("expected one root tag, got %d", len(doc.Tags()))
	}
}

func TestParse_DoctypeAndEntities(t *testing.T) {
	data := `<!DOCTYPE greeting [<!ENTITY who "World">]><greeting>Hello &who;</greeting>`
	doc, err := Parse([]byte(data), ParseEntity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Doctype() != "greeting" {
		t.Errorf("expected doctype name greeting, got %q", doc.Doctype())
	}
	if v, ok := doc.GetEntity("who"); !ok || v != "World" {
		t.Errorf("expected entity who=World, got %q ok=%v", v, ok)
	}
}

func TestParse_PIAndStripHeaders(t *testing.T) {
	data := `<?xml version="1.0"?><root/>`
	doc, err := Parse([]byte(data), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Tags()) != 2 {
		t.Fatalf("expected PI and root, got %d tags", len(doc.Tags()))
	}

	doc2, err := Parse([]byte(data), StripHeaders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc2.Tags()) != 1 {
		t.Fatalf("expected PI stripped, got %d tags", len(doc2.Tags()))
	}
}

func TestParse_BOMStripped(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<root/>`)...)
	doc, err := Parse(data, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Tags()[0].Name() != "root" {
		t.Errorf("expected root, got %q", doc.Tags()[0].Name())
	}
}

func TestParse_LowerCaseFold(t *testing.T) {
	doc, err := Parse([]byte(`<Root ID="1"><Child/></Root>`), LowerCase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := doc.Tags()[0]
	if root.Name() != "root" {
		t.Errorf("expected folded name root, got %q", root.Name())
	}
	if _, ok := root.Attrib("id"); !ok {
		t.Errorf("expected folded attribute name id")
	}
}

func TestRoundTrip(t *testing.T) {
	data := `<root a="1"><child>text</child></root>`
	doc, err := Parse([]byte(data), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := Serialize(doc, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc2, err := Parse(out, 0)
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if !strings.Contains(string(out), `a="1"`) {
		t.Errorf("expected attribute to survive round trip, got %s", out)
	}
	if len(doc2.Tags()) != len(doc.Tags()) {
		t.Errorf("expected same root tag count after round trip")
	}
}
