package xmlcore

import (
	"errors"
	"strings"
	"testing"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := newErr("Query", KindNotFound, "no such tag")
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is to match ErrNotFound by Kind")
	}
	if errors.Is(err, ErrReadOnly) {
		t.Error("expected errors.Is to reject a different Kind")
	}
}

func TestError_MessageIncludesLine(t *testing.T) {
	err := newErrLine("Parse", KindSyntax, 7, "unexpected token")
	if got := err.Error(); !strings.Contains(got, "line 7") {
		t.Fatalf("expected error message to include the line number, got %q", got)
	}
}
