package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/sartorlabs/sartor-backend/pkg/auth"
	"github.com/sartorlabs/sartor-backend/pkg/config"
	"github.com/sartorlabs/sartor-backend/pkg/enums"
)

func jwtTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "sartor",
		ExpirationMinutes: 30,
	}
}

func TestAuthSeedsIdentity(t *testing.T) {
	cfg := jwtTestConfig()
	userID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Kind:   enums.IdentityKindTailor,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var seen pkgAuth.Identity
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Fatalf("expected identity in context")
		}
		seen = identity
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if seen.UserID != userID || seen.Kind != enums.IdentityKindTailor {
		t.Fatalf("unexpected identity %+v", seen)
	}
}

func TestAuthRejectsMissingOrInvalidToken(t *testing.T) {
	handler := Auth(jwtTestConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", w.Code)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", w.Code)
	}
}

func TestRequireKindBlocksOtherKinds(t *testing.T) {
	handler := RequireKind(nil, string(enums.IdentityKindTailor))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	anon := pkgAuth.Identity{UserID: uuid.New(), Kind: enums.IdentityKindAnonymous}
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(WithIdentity(r.Context(), anon))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for anonymous, got %d", w.Code)
	}

	tailor := pkgAuth.Identity{UserID: uuid.New(), Kind: enums.IdentityKindTailor}
	r = httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(WithIdentity(r.Context(), tailor))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for tailor, got %d", w.Code)
	}
}
