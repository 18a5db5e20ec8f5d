package diag

import (
	"bytes"
	"testing"

	"lacsap/pkg/token"
)

func TestBagAccumulatesRatherThanAborting(t *testing.T) {
	b := NewBag()
	b.Errorf(token.Position{Line: 1, Col: 1}, "first error")
	b.Errorf(token.Position{Line: 2, Col: 1}, "second error")

	if !b.HasErrors() {
		t.Fatalf("expected HasErrors to be true")
	}
	if got := b.ErrorCount(); got != 2 {
		t.Fatalf("ErrorCount = %d, want 2", got)
	}
	if got := len(b.Items()); got != 2 {
		t.Fatalf("len(Items()) = %d, want 2", got)
	}
}

func TestWarningsDoNotCountAsErrors(t *testing.T) {
	b := NewBag()
	b.Warnf(token.Position{Line: 1, Col: 1}, "just a warning")
	if b.HasErrors() {
		t.Fatalf("a warning alone should not count as an error")
	}
}

func TestPrintIncludesPositionAndMessage(t *testing.T) {
	b := NewBag()
	b.Errorf(token.Position{File: "p.pas", Line: 3, Col: 7}, "undeclared identifier %q", "x")

	var buf bytes.Buffer
	Print(&buf, b)

	out := buf.String()
	if !bytesContains(out, "p.pas:3:7") {
		t.Fatalf("missing position: %q", out)
	}
	if !bytesContains(out, "undeclared identifier \"x\"") {
		t.Fatalf("missing message: %q", out)
	}
}

func bytesContains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}
