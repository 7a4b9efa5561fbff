package xmlcore

import "testing"

func TestEscapeText(t *testing.T) {
	got := escapeText(`a & b < c > d "e"`)
	want := `a &amp; b &lt; c &gt; d "e"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEscapeAttrib(t *testing.T) {
	got := escapeAttrib(`say "hi" & bye`)
	want := `say &quot;hi&quot; &amp; bye`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnescape(t *testing.T) {
	cases := map[string]string{
		"a &amp; b":  "a & b",
		"&lt;tag&gt;": "<tag>",
		"&#65;":      "A",
		"&#x41;":     "A",
		"&unknown;":  "&unknown;",
	}
	for in, want := range cases {
		if got := unescape(in); got != want {
			t.Errorf("unescape(%q) = %q, want %q", in, got, want)
		}
	}
}
