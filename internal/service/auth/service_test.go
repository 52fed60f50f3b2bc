package auth

import (
	"context"
	"testing"

	"github.com/staffhive/hrms-backend-go/internal/domain/auth"
	"github.com/staffhive/hrms-backend-go/internal/domain/user"
	"github.com/staffhive/hrms-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	if _, exists := f.byEmail[u.Email]; exists {
		return user.ErrEmailAlreadyUsed
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByGoogleID(ctx context.Context, googleID string) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func newTestAuthService(t *testing.T, users *fakeUserRepo) *AuthServiceImpl {
	t.Helper()

	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	svc := NewAuthService(nil, users, nil, nil, jwtService, nil).(*AuthServiceImpl)
	return svc
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(t, &fakeUserRepo{byEmail: map[string]*user.User{}})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	hashed := string(hash)

	users := &fakeUserRepo{byEmail: map[string]*user.User{
		"user@example.com": {ID: "u-1", Email: "user@example.com", PasswordHash: &hashed, Role: user.RoleEmployee},
	}}
	svc := newTestAuthService(t, users)

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginGoogleOnlyAccountRejectsPassword(t *testing.T) {
	googleID := "g-123"
	users := &fakeUserRepo{byEmail: map[string]*user.User{
		"user@example.com": {ID: "u-1", Email: "user@example.com", GoogleID: &googleID, Role: user.RoleEmployee},
	}}
	svc := newTestAuthService(t, users)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "user@example.com",
		Password: "anything1",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(t, &fakeUserRepo{byEmail: map[string]*user.User{}})

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
	})
	require.Error(t, err)
}

func TestLogoutWithoutTokenIsNoop(t *testing.T) {
	svc := newTestAuthService(t, &fakeUserRepo{byEmail: map[string]*user.User{}})
	assert.NoError(t, svc.Logout(context.Background(), ""))
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, hashToken("abc"), hashToken("abc"))
	assert.NotEqual(t, hashToken("abc"), hashToken("abd"))
	assert.Len(t, hashToken("abc"), 64)
}
