package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/sartorlabs/sartor-backend/pkg/errors"
)

type samplePayload struct {
	Email string  `json:"email" validate:"required,email"`
	Name  string  `json:"name" validate:"required,max=10"`
	Size  *string `json:"size" validate:"omitempty,oneof=small large"`
}

func TestDecodeJSONBodyAccepts(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@example.com","name":"Ada"}`))
	var payload samplePayload
	if err := DecodeJSONBody(r, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Email != "a@example.com" {
		t.Fatalf("unexpected email %q", payload.Email)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@example.com","name":"Ada","extra":true}`))
	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	if err == nil {
		t.Fatalf("expected rejection of unknown field")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldMessages(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"not-an-email","name":""}`))
	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message %q", details["email"])
	}
	if details["name"] != "is required" {
		t.Fatalf("unexpected name message %q", details["name"])
	}
}
