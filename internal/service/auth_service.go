// backend-go/internal/service/auth_service.go
package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/besco/backend-go/internal/config"
	"github.com/besco/backend-go/internal/domain"
	"github.com/besco/backend-go/internal/repository"
)

const apiKeyPrefix = "besco"

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type APIKeyResponse struct {
	APIKey string `json:"api_key"`
}

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users repository.UserRepository
	cfg   config.AuthConfig
	now   func() time.Time
}

func NewAuthService(users repository.UserRepository, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Login checks the password against the stored bcrypt hash and issues a
// short-lived bearer token. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorizedf("invalid username or password")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.Unauthorizedf("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, domain.Unauthorizedf("invalid username or password")
	}

	ttl := time.Duration(s.cfg.TokenTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	issuedAt := s.now()

	claims := tokenClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
	}, nil
}

// VerifyToken parses and validates a bearer token, returning the username it
// was issued to.
func (s *AuthService) VerifyToken(token string) (string, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.Unauthorizedf("invalid or expired token")
	}
	return claims.Username, nil
}

// IssueAPIKey derives the caller's stable machine key. The key is an HMAC of
// the username under the signing secret, so it can be verified without
// storing anything.
func (s *AuthService) IssueAPIKey(ctx context.Context, username string) (*APIKeyResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &APIKeyResponse{APIKey: s.deriveAPIKey(user.Username)}, nil
}

// VerifyAPIKey accepts either a key from the static configured list or a
// derived per-user key.
func (s *AuthService) VerifyAPIKey(key string) bool {
	for _, configured := range s.cfg.APIKeys {
		if configured != "" && subtleEqual(configured, key) {
			return true
		}
	}

	rest, ok := strings.CutPrefix(key, apiKeyPrefix+"_")
	if !ok {
		return false
	}
	idx := strings.LastIndex(rest, "_")
	if idx <= 0 {
		return false
	}
	return subtleEqual(s.deriveAPIKey(rest[:idx]), key)
}

func (s *AuthService) deriveAPIKey(username string) string {
	mac := hmac.New(sha256.New, []byte(s.cfg.JWTSecret))
	mac.Write([]byte(username))
	return fmt.Sprintf("%s_%s_%s", apiKeyPrefix, username, hex.EncodeToString(mac.Sum(nil)[:16]))
}

func subtleEqual(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
