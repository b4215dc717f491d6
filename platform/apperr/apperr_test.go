package apperr

import (
	"fmt"
	"net/http"
	"testing"
)

func TestGetKindUnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("load job: %w", NotFound("job not found"))
	if got := GetKind(wrapped); got != KindNotFound {
		t.Fatalf("expected KindNotFound, got %v", got)
	}
	if !Is(wrapped, KindNotFound) {
		t.Fatal("expected Is to match wrapped not found error")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Validation("x"), http.StatusBadRequest},
		{Conflict("x"), http.StatusConflict},
		{Forbidden("x"), http.StatusForbidden},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Internal("x"), http.StatusInternalServerError},
		{Gone("x"), http.StatusGone},
		{Unavailable("x", nil), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Errorf("kind %v: expected status %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestFieldErrorsCarriesDetails(t *testing.T) {
	err := FieldErrors("affidavit is incomplete", map[string]string{"caseNumber": "required"})
	details, ok := err.Details.(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", err.Details)
	}
	if details["caseNumber"] != "required" {
		t.Fatalf("expected caseNumber detail, got %#v", details)
	}
}
