package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesChain(t *testing.T) {
	root := errors.New("connection refused")
	err := Wrap(root, CodeUpstream, "census fetch failed")

	if !errors.Is(err, root) {
		t.Fatalf("expected wrapped error to match root via errors.Is")
	}
	if !HasCode(err, CodeUpstream) {
		t.Fatalf("expected code %s, got %s", CodeUpstream, GetCode(err))
	}
	// A further fmt wrap must not lose the code.
	outer := fmt.Errorf("lookup: %w", err)
	if !HasCode(outer, CodeUpstream) {
		t.Fatalf("expected code to survive fmt wrapping")
	}
}

func TestGetCodeDefaultsToInternal(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != CodeInternal {
		t.Fatalf("expected %s for foreign errors, got %s", CodeInternal, got)
	}
}

func TestMessageHidesInternalDetail(t *testing.T) {
	if msg := Message(New(CodeInternal, "db credentials wrong")); msg != "" {
		t.Fatalf("internal message leaked: %q", msg)
	}
	if msg := Message(New(CodeNotFound, "no demographic data")); msg != "no demographic data" {
		t.Fatalf("expected caller-safe message, got %q", msg)
	}
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation: http.StatusBadRequest,
		CodeBadRequest: http.StatusBadRequest,
		CodeNotFound:   http.StatusNotFound,
		CodeUpstream:   http.StatusBadGateway,
		CodeTimeout:    http.StatusGatewayTimeout,
		CodeInternal:   http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := ToHTTPStatus(code); got != want {
			t.Errorf("ToHTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}
