package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
)

func TestParseQueryInt(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?limit=10", nil)
	value, err := ParseQueryInt(req, "limit", 25, 1, 100)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value != 10 {
		t.Fatalf("expected 10, got %d", value)
	}
}

func TestParseQueryIntMissingUsesDefault(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	value, err := ParseQueryInt(req, "limit", 25, 1, 100)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value != 25 {
		t.Fatalf("expected default 25, got %d", value)
	}
}

func TestParseQueryIntOutOfRange(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?limit=5000", nil)
	_, err := ParseQueryInt(req, "limit", 25, 1, 100)
	if err == nil {
		t.Fatal("expected range error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParsePathID(t *testing.T) {
	t.Parallel()

	req := newChiRequest(t, "id", "42")
	value, err := ParsePathID(req, "id")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value != 42 {
		t.Fatalf("expected 42, got %d", value)
	}
}

func TestParsePathIDRejectsNonPositive(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"0", "-3", "abc", ""} {
		req := newChiRequest(t, "id", raw)
		if _, err := ParsePathID(req, "id"); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func newChiRequest(t *testing.T, key, value string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
