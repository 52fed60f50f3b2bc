package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffhive/hrms-backend-go/internal/domain/auth"
	"github.com/staffhive/hrms-backend-go/internal/domain/employee"
	"github.com/staffhive/hrms-backend-go/internal/domain/user"
	"github.com/staffhive/hrms-backend-go/internal/pkg/database"
	"github.com/staffhive/hrms-backend-go/internal/pkg/jwt"
	"github.com/staffhive/hrms-backend-go/internal/pkg/oauth"
	"github.com/staffhive/hrms-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.Repository
	refreshTokens user.RefreshTokenRepository
	employeeRepo  employee.Repository
	jwt           jwt.Service
	google        oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	userRepo user.Repository,
	refreshTokens user.RefreshTokenRepository,
	employeeRepo employee.Repository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
) auth.Service {
	return &AuthServiceImpl{
		db:            db,
		Repository:    userRepo,
		refreshTokens: refreshTokens,
		employeeRepo:  employeeRepo,
		jwt:           jwtService,
		google:        googleService,
	}
}

// Register implements auth.Service.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (*auth.TokenPair, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	newUser := &user.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: &hashed,
		Role:         user.RolePending,
	}

	if err := a.Repository.Create(ctx, newUser); err != nil {
		return nil, err
	}

	return a.issueTokens(ctx, newUser)
}

// Login implements auth.Service.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (*auth.TokenPair, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	userData, err := a.Repository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return nil, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData)
}

// GoogleAuthURL implements auth.Service.
func (a *AuthServiceImpl) GoogleAuthURL(ctx context.Context) (string, string, error) {
	state := a.google.GenerateState()
	if state == "" {
		return "", "", fmt.Errorf("failed to generate oauth state")
	}
	return a.google.RedirectURL(state), state, nil
}

// GoogleCallback implements auth.Service.
func (a *AuthServiceImpl) GoogleCallback(ctx context.Context, code string) (*auth.TokenPair, error) {
	token, err := a.google.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	googleUser, err := a.google.FetchUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google user: %w", err)
	}
	if !googleUser.VerifiedEmail {
		return nil, auth.ErrEmailNotVerified
	}

	userData, err := a.Repository.GetByGoogleID(ctx, googleUser.GoogleID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		userData, err = a.provisionGoogleUser(ctx, googleUser)
		if err != nil {
			return nil, err
		}
	}

	return a.issueTokens(ctx, userData)
}

// provisionGoogleUser links an existing account by email or creates a new
// pending user on first Google login.
func (a *AuthServiceImpl) provisionGoogleUser(ctx context.Context, googleUser oauth.GoogleUser) (*user.User, error) {
	existing, err := a.Repository.GetByEmail(ctx, googleUser.Email)
	if err == nil {
		existing.GoogleID = &googleUser.GoogleID
		if err := a.Repository.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	newUser := &user.User{
		ID:       uuid.New().String(),
		Email:    googleUser.Email,
		GoogleID: &googleUser.GoogleID,
		Role:     user.RolePending,
	}
	if err := a.Repository.Create(ctx, newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

// Refresh implements auth.Service.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	stored, err := a.refreshTokens.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, auth.ErrInvalidRefreshToken
	}
	if stored.IsRevoked() || stored.IsExpired(time.Now()) {
		return nil, auth.ErrInvalidRefreshToken
	}

	userData, err := a.Repository.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, auth.ErrInvalidRefreshToken
	}

	// Rotate: revoke the presented token before issuing a new pair.
	if err := a.refreshTokens.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}

	return a.issueTokens(ctx, userData)
}

// Logout implements auth.Service.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	stored, err := a.refreshTokens.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil
	}

	a.jwt.RevokeToken(refreshToken)
	return a.refreshTokens.Revoke(ctx, stored.ID)
}

// StreamToken implements auth.Service.
func (a *AuthServiceImpl) StreamToken(ctx context.Context) (*auth.StreamTokenResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, auth.ErrInvalidToken
	}

	token, expiresIn, err := a.jwt.GenerateStreamToken(userID)
	if err != nil {
		return nil, err
	}

	return &auth.StreamTokenResponse{StreamToken: token, ExpiresIn: expiresIn}, nil
}

// issueTokens mints an access/refresh pair and persists the refresh token
// hash inside a transaction.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData *user.User) (*auth.TokenPair, error) {
	var employeeID *string
	if userData.CompanyID != nil {
		if emp, err := a.employeeRepo.GetByUserID(ctx, userData.ID); err == nil {
			employeeID = &emp.ID
		}
	}

	accessToken, accessExpiresAt, err := a.jwt.GenerateAccessToken(
		userData.ID, userData.Email, employeeID, userData.CompanyID, userData.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.jwt.GenerateRefreshToken(userData.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		return a.refreshTokens.Create(txCtx, &user.RefreshToken{
			ID:        uuid.New().String(),
			UserID:    userData.ID,
			TokenHash: hashToken(refreshToken),
			ExpiresAt: time.Unix(refreshExpiresAt, 0),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &auth.TokenPair{
		Access: auth.TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresAt:   accessExpiresAt,
		},
		RefreshCookie: a.jwt.RefreshTokenCookie(refreshToken, refreshExpiresAt),
	}, nil
}

// Only the SHA-256 hex digest of a refresh token is ever persisted.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
