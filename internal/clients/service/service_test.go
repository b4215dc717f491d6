package service

import (
	"testing"

	"serveportal_backend/internal/clients/transport"
	"serveportal_backend/platform/apperr"

	"github.com/google/uuid"
)

func TestFromRequestNormalizes(t *testing.T) {
	cl, err := FromRequest(uuid.New(), uuid.Nil, transport.ClientRequest{
		Name:  "  Acme   Legal <b>LLP</b> ",
		Email: " Intake@Acme.Example ",
		Phone: "312-555-0142",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cl.Name != "Acme Legal LLP" {
		t.Fatalf("unexpected name %q", cl.Name)
	}
	if cl.Email != "intake@acme.example" || cl.Phone != "+13125550142" {
		t.Fatalf("unexpected contact normalization: %+v", cl)
	}
	if resp := ToResponse(cl); resp.PhoneDisplay != "(312) 555-0142" {
		t.Fatalf("unexpected display phone %q", resp.PhoneDisplay)
	}
}

func TestFromRequestRejectsBadPhone(t *testing.T) {
	_, err := FromRequest(uuid.New(), uuid.Nil, transport.ClientRequest{Name: "Acme", Phone: "call me"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
