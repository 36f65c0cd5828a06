package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/sartorlabs/sartor-backend/api/middleware"
	"github.com/sartorlabs/sartor-backend/internal/auth"
	"github.com/sartorlabs/sartor-backend/internal/users"
	pkgAuth "github.com/sartorlabs/sartor-backend/pkg/auth"
	"github.com/sartorlabs/sartor-backend/pkg/enums"
	pkgerrors "github.com/sartorlabs/sartor-backend/pkg/errors"
)

type stubAuthService struct {
	resp *auth.AuthResponse
	err  error
}

func (s stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	return s.resp, s.err
}

func (s stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	return s.resp, s.err
}

func (s stubAuthService) Anonymous(ctx context.Context) (*auth.AuthResponse, error) {
	return s.resp, s.err
}

func (s stubAuthService) UpdateProfile(ctx context.Context, identity pkgAuth.Identity, req auth.UpdateProfileRequest) (*auth.AuthResponse, error) {
	return s.resp, s.err
}

func testAuthResponse() *auth.AuthResponse {
	email := "sam@example.com"
	return &auth.AuthResponse{
		AccessToken: "access-token",
		User: &users.UserDTO{
			ID:    uuid.New(),
			Name:  "Sam Tailor",
			Email: &email,
			Kind:  enums.IdentityKindTailor,
		},
	}
}

func TestAuthRegisterSuccess(t *testing.T) {
	handler := AuthRegister(stubAuthService{resp: testAuthResponse()}, nil)

	body := []byte(`{"name":"Sam Tailor","email":"sam@example.com","password":"Secret#123","role":"tailor"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			AccessToken string         `json:"access_token"`
			User        *users.UserDTO `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" {
		t.Fatalf("expected access token in payload got %q", envelope.Data.AccessToken)
	}
	if envelope.Data.User == nil || envelope.Data.User.Name != "Sam Tailor" {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthRegisterInvalidPayload(t *testing.T) {
	handler := AuthRegister(stubAuthService{resp: testAuthResponse()}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(`{"password":"Secret#123"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestAuthLoginServiceError(t *testing.T) {
	handler := AuthLogin(stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"sam@example.com","password":"wrong-pass"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthAnonymousIssuesSession(t *testing.T) {
	handler := AuthAnonymous(stubAuthService{resp: testAuthResponse()}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/anonymous", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestAuthUpdateProfileRequiresIdentity(t *testing.T) {
	handler := AuthUpdateProfile(stubAuthService{resp: testAuthResponse()}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/profile", bytes.NewReader([]byte(`{"name":"New Name"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthUpdateProfileSuccess(t *testing.T) {
	handler := AuthUpdateProfile(stubAuthService{resp: testAuthResponse()}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/profile", bytes.NewReader([]byte(`{"name":"New Name"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = withIdentity(req, pkgAuth.Identity{UserID: uuid.New(), Kind: enums.IdentityKindTailor})
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func withIdentity(req *http.Request, identity pkgAuth.Identity) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), identity))
}
