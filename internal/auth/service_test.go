package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/sartorlabs/sartor-backend/pkg/auth"
	"github.com/sartorlabs/sartor-backend/pkg/config"
	"github.com/sartorlabs/sartor-backend/pkg/db/models"
	"github.com/sartorlabs/sartor-backend/pkg/enums"
	pkgerrors "github.com/sartorlabs/sartor-backend/pkg/errors"
	"github.com/sartorlabs/sartor-backend/pkg/security"

	"github.com/sartorlabs/sartor-backend/internal/users"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                     "secret",
		Issuer:                     "sartor",
		ExpirationMinutes:          30,
		AnonymousExpirationMinutes: 525600,
	}
}

func TestServiceRegisterTailor(t *testing.T) {
	svc, repos := buildTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Ada Hemline",
		Email:    "Ada@Example.com",
		Password: "sturdy-thread",
		Role:     "tailor",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Kind != enums.IdentityKindTailor {
		t.Fatalf("expected tailor kind claim, got %s", claims.Kind)
	}
	if resp.User.Email == nil || *resp.User.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %v", resp.User.Email)
	}
	if len(repos.clients.created) != 0 {
		t.Fatalf("tailor registration must not create a client profile")
	}
}

func TestServiceRegisterClientCreatesProfile(t *testing.T) {
	svc, repos := buildTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Niv Seam",
		Email:    "niv@example.com",
		Password: "sturdy-thread",
		Role:     "client",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if len(repos.clients.created) != 1 {
		t.Fatalf("expected one client profile, got %d", len(repos.clients.created))
	}
	if repos.clients.created[0] != resp.User.ID {
		t.Fatalf("client profile linked to wrong user")
	}
}

func TestServiceRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := buildTestService(t)
	req := RegisterRequest{
		Name:     "Twice",
		Email:    "twice@example.com",
		Password: "sturdy-thread",
		Role:     "tailor",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), req)
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestServiceLogin(t *testing.T) {
	svc, repos := buildTestService(t)
	repos.users.seed(t, "tailor@example.com", "right-password", enums.UserRoleTailor)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "tailor@example.com",
		Password: "right-password",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected access token")
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "tailor@example.com",
		Password: "wrong-password",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestServiceAnonymousIdentity(t *testing.T) {
	svc, _ := buildTestService(t)

	resp, err := svc.Anonymous(context.Background())
	if err != nil {
		t.Fatalf("anonymous: %v", err)
	}
	if !resp.User.IsAnonymous {
		t.Fatalf("expected anonymous user")
	}
	if resp.User.Role != nil {
		t.Fatalf("anonymous user must not carry a role")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Kind != enums.IdentityKindAnonymous {
		t.Fatalf("expected anonymous kind claim, got %s", claims.Kind)
	}
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl < 360*24*time.Hour {
		t.Fatalf("expected long-lived anonymous token, got %s", ttl)
	}
}

func TestServiceProfileUpgradeFromAnonymous(t *testing.T) {
	svc, repos := buildTestService(t)

	anon, err := svc.Anonymous(context.Background())
	if err != nil {
		t.Fatalf("anonymous: %v", err)
	}

	email := "guest@example.com"
	password := "fresh-password"
	resp, err := svc.UpdateProfile(context.Background(),
		pkgAuth.Identity{UserID: anon.User.ID, Kind: enums.IdentityKindAnonymous},
		UpdateProfileRequest{Email: &email, Password: &password})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if resp.User.IsAnonymous {
		t.Fatalf("expected upgrade to clear anonymous flag")
	}
	if resp.User.Role == nil || *resp.User.Role != enums.UserRoleClient {
		t.Fatalf("expected client role after upgrade, got %v", resp.User.Role)
	}
	if len(repos.clients.created) != 1 {
		t.Fatalf("expected client profile for upgraded account")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Kind != enums.IdentityKindClient {
		t.Fatalf("expected client kind claim after upgrade, got %s", claims.Kind)
	}

	// The upgraded account can now log in with its credentials.
	if _, err := svc.Login(context.Background(), LoginRequest{Email: email, Password: password}); err != nil {
		t.Fatalf("login after upgrade: %v", err)
	}
}

func TestServiceProfileEmailAloneKeepsAnonymous(t *testing.T) {
	svc, repos := buildTestService(t)

	anon, err := svc.Anonymous(context.Background())
	if err != nil {
		t.Fatalf("anonymous: %v", err)
	}

	email := "contact@example.com"
	resp, err := svc.UpdateProfile(context.Background(),
		pkgAuth.Identity{UserID: anon.User.ID, Kind: enums.IdentityKindAnonymous},
		UpdateProfileRequest{Email: &email})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}

	// Without a password there is nothing to log in with, so the account
	// stays anonymous until both credentials are present.
	if !resp.User.IsAnonymous {
		t.Fatalf("expected account to stay anonymous without a password")
	}
	if resp.User.Role != nil {
		t.Fatalf("expected no role without full credentials, got %v", resp.User.Role)
	}
	if len(repos.clients.created) != 0 {
		t.Fatalf("expected no client profile before full upgrade")
	}
}

func TestServiceProfileEmailConflict(t *testing.T) {
	svc, repos := buildTestService(t)
	repos.users.seed(t, "taken@example.com", "whatever-password", enums.UserRoleClient)
	mine := repos.users.seed(t, "mine@example.com", "whatever-password", enums.UserRoleClient)

	email := "taken@example.com"
	_, err := svc.UpdateProfile(context.Background(),
		pkgAuth.Identity{UserID: mine.ID, Kind: enums.IdentityKindClient},
		UpdateProfileRequest{Email: &email})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

type testRepos struct {
	users   *memUserRepo
	clients *stubClientRepo
}

func buildTestService(t *testing.T) (Service, *testRepos) {
	t.Helper()
	repos := &testRepos{
		users:   newMemUserRepo(),
		clients: &stubClientRepo{},
	}
	svc, err := NewService(ServiceParams{
		UserRepo:       repos.users,
		ClientRepo:     repos.clients,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repos
}

type memUserRepo struct {
	byID map[uuid.UUID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[uuid.UUID]*models.User{}}
}

func (m *memUserRepo) seed(t *testing.T, email, password string, role enums.UserRole) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        &email,
		PasswordHash: &hash,
		Role:         &role,
	}
	m.byID[user.ID] = user
	return user
}

func (m *memUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.byID[user.ID] = user
	return user, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.byID {
		if user.Email != nil && *user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memUserRepo) Save(ctx context.Context, user *models.User) error {
	m.byID[user.ID] = user
	return nil
}

type stubClientRepo struct {
	created []uuid.UUID
}

func (s *stubClientRepo) CreateForUser(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	s.created = append(s.created, userID)
	return &models.Client{ID: uuid.New(), ClientUserID: &userID}, nil
}
