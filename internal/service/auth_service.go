package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-user-service/internal/model"
	"go-user-service/pkg/apierror"
)

// UserFinder is the slice of the credential store the auth flow needs.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

type AuthService struct {
	jwtSecret []byte
	tokenTTL  time.Duration
	hasher    *PasswordHasher
	users     UserFinder
	sessions  *SessionRegistry
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration, hasher *PasswordHasher, users UserFinder, sessions *SessionRegistry) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}

	return &AuthService{
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		hasher:    hasher,
		users:     users,
		sessions:  sessions,
	}, nil
}

type tokenClaims struct {
	UserID   int64  `json:"id"`
	Fullname string `json:"fullname"`
	Lastname string `json:"lastname"`
	jwt.RegisteredClaims
}

// Login verifies credentials and mints a bearer token. The new token replaces
// any previous session registry entry for the user.
func (s *AuthService) Login(ctx context.Context, username string, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, model.ErrUserNotFound) {
		return "", apierror.New("UNAUTHORIZED", "User not found", http.StatusUnauthorized)
	}
	if err != nil {
		return "", fmt.Errorf("look up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", apierror.New("UNAUTHORIZED", "Invalid password", http.StatusUnauthorized)
	}

	token, err := s.Issue(model.UserIdentity{
		ID:       user.ID,
		Fullname: user.Fullname,
		Lastname: user.Lastname,
	})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.sessions.Set(user.ID, token)
	return token, nil
}

// Logout drops the session registry entry for the user. It cannot invalidate
// the signed token itself; that stays valid until its expiry.
func (s *AuthService) Logout(userID int64) {
	s.sessions.Clear(userID)
}

// Issue signs a token carrying the identity plus issued-at/expiry claims.
// Credential verification is the caller's responsibility.
func (s *AuthService) Issue(identity model.UserIdentity) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		UserID:   identity.ID,
		Fullname: identity.Fullname,
		Lastname: identity.Lastname,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Verify checks signature and expiry and returns the embedded identity. It is
// stateless: the session registry is not consulted, so a token outlives the
// logout of its session until natural expiry.
func (s *AuthService) Verify(tokenString string) (model.UserIdentity, error) {
	if strings.TrimSpace(tokenString) == "" {
		return model.UserIdentity{}, model.ErrTokenMissing
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return model.UserIdentity{}, model.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || claims.UserID == 0 {
		return model.UserIdentity{}, model.ErrTokenInvalid
	}

	return model.UserIdentity{
		ID:       claims.UserID,
		Fullname: claims.Fullname,
		Lastname: claims.Lastname,
	}, nil
}

// CurrentToken exposes the registry entry for a user, if any.
func (s *AuthService) CurrentToken(userID int64) (string, bool) {
	return s.sessions.Get(userID)
}
