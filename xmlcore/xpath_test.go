package xmlcore

import (
	"errors"
	"strings"
	"testing"
)

const catalog = `<catalog>
  <book id="1" lang="en"><title>Go 101</title><price>10</price></book>
  <book id="2" lang="fr"><title>Le Go</title><price>20</price></book>
  <section><book id="3" lang="en"><title>Nested</title><price>30</price></book></section>
</catalog>`

func mustParse(t *testing.T, data string, flags ParseFlag) *Document {
	t.Helper()
	doc, err := Parse([]byte(data), flags)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return doc
}

func TestQuery_AbsolutePath(t *testing.T) {
	doc := mustParse(t, catalog, 0)
	tag, _, err := doc.Query("/catalog/book")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := tag.Attrib("id"); v != "1" {
		t.Errorf("expected first book id=1, got %q", v)
	}
}

func TestQuery_PositionalIndex(t *testing.T) {
	doc := mustParse(t, catalog, 0)
	tag, _, err := doc.Query("/catalog/book[2]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := tag.Attrib("id"); v != "2" {
		t.Errorf("expected second book id=2, got %q", v)
	}
}

func TestQuery_FlatScan(t *testing.T) {
	doc := mustParse(t, catalog, 0)
	count := 0
	err := doc.QueryAll("//book", func(t *Tag, attr string) bool {
		count++
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 books found via //book, got %d", count)
	}
}

func TestQuery_AttribPredicate(t *testing.T) {
	doc := mustParse(t, catalog, 0)
	tag, _, err := doc.Query("//book[@lang='fr']")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := tag.Attrib("id"); v != "2" {
		t.Errorf("expected book id=2, got %q", v)
	}
}

func TestQuery_ContentPredicate(t *testing.T) {
	doc := mustParse(t, catalog, 0)
	tag, _, err := doc.Query("//title[=Nested]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	book, ok := doc.GetParent(tag)
	if !ok {
		t.Fatalf("expected matched <title> to have a parent book")
	}
	if v, _ := book.Attrib("id"); v != "3" {
		t.Errorf("expected book id=3, got %q", v)
	}
}

func TestQuery_AttribSelection(t *testing.T) {
	doc := mustParse(t, catalog, 0)
	_, attr, err := doc.Query("/catalog/book[1]/@id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attr != "id" {
		t.Errorf("expected attr selection id, got %q", attr)
	}
	tag, _, _ := doc.Query("/catalog/book[1]")
	v, _ := tag.Attrib(attr)
	if v != "1" {
		t.Errorf("expected value 1, got %q", v)
	}
}

func TestQuery_DirectIndex(t *testing.T) {
	doc := mustParse(t, catalog, IncludeComments)
	// Direct index selects the Nth child of <catalog> regardless of name.
	tag, _, err := doc.Query("/catalog/*[#2]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag.Name() != "book" {
		t.Errorf("expected second raw child to be a book element, got %q", tag.Name())
	}
}

func TestQuery_NoMatch(t *testing.T) {
	doc := mustParse(t, catalog, 0)
	_, _, err := doc.Query("/catalog/missing")
	if err == nil {
		t.Fatal("expected ErrSearch for a missing path")
	}
	if !errors.Is(err, ErrSearch) {
		t.Errorf("expected ErrSearch, got %v", err)
	}
}

func TestQueryAll_StopsOnMutation(t *testing.T) {
	doc := mustParse(t, catalog, 0)
	err := doc.QueryAll("//book", func(tag *Tag, attr string) bool {
		_ = doc.SetAttrib(tag, int(AttribUpdate), "touched", strPtr("1"))
		return true
	})
	if err == nil {
		t.Fatal("expected enumeration to detect concurrent mutation")
	}
}

func TestCompilePath_Validation(t *testing.T) {
	cases := []struct {
		path string
		kind ErrorKind
	}{
		{"", KindStringFormat},
		{"catalog/book", KindStringFormat},
		{"/catalog/book[@lang='fr]", KindSearch},
		{"/" + strings.Repeat("x", 200), KindBufferOverflow},
	}
	for _, c := range cases {
		_, err := compilePath(c.path)
		if err == nil {
			t.Errorf("path %q: expected error", c.path)
			continue
		}
		xerr, ok := err.(*Error)
		if !ok || xerr.Kind != c.kind {
			t.Errorf("path %q: expected kind %v, got %v", c.path, c.kind, err)
		}
	}
}

func TestRegisterPathFunction(t *testing.T) {
	RegisterPathFunction("isFR", func(t *Tag) bool {
		v, _ := t.Attrib("lang")
		return v == "fr"
	})
	doc := mustParse(t, catalog, 0)
	tag, _, err := doc.Query("//book[isFR()]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := tag.Attrib("id"); v != "2" {
		t.Errorf("expected book id=2, got %q", v)
	}
}
