// file: service/token_service.go

package service

import (
	"fmt"
	"go-game-api/common"
	"go-game-api/logger"
	"go-game-api/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and parses the two token kinds the session protocol
// uses: access tokens carrying user claims, and refresh tokens that carry
// nothing but an expiry (their subject is the server secret, so on their own
// they only prove "this server minted this"; the binding to a user happens
// through the stored slot on the user row).
type TokenService struct {
	secretKey     []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewTokenService(secretKey string, accessExpiry, refreshExpiry time.Duration) *TokenService {
	return &TokenService{
		secretKey:     []byte(secretKey),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *TokenService) RefreshExpiry() time.Duration {
	return s.refreshExpiry
}

// CreateAccessToken signs a short-lived token with user id, nickname and
// role claims. The same `now` is shared with CreateRefreshToken by callers
// so both halves of a pair are time-consistent.
func (s *TokenService) CreateAccessToken(userID int, nickname string, now time.Time) (string, error) {
	claims := &model.AppClaims{
		UserID:   userID,
		Nickname: nickname,
		Role:     string(model.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign access token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// CreateRefreshToken signs a long-lived token whose subject is the signing
// secret itself rather than a user id.
func (s *TokenService) CreateRefreshToken(now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   string(s.secretKey),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to sign refresh token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// AuthToken is a parsed token whose signature already checked out. Expiry is
// evaluated separately via Valid, so the subject of an expired-but-genuine
// token stays readable (that is what lets an expired access token still
// request a refresh).
type AuthToken struct {
	Raw    string
	Claims *model.AppClaims
}

// ParseToken verifies structure and signature only; expiry is Valid's job.
func (s *TokenService) ParseToken(raw string) (*AuthToken, error) {
	claims := &model.AppClaims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidToken, err)
	}

	return &AuthToken{Raw: raw, Claims: claims}, nil
}

// Valid reports whether the token is still usable: the signature was already
// verified at parse time, so only the expiry is left. A token presented at
// its exact expiry instant is invalid.
func (t *AuthToken) Valid() bool {
	if t.Claims.ExpiresAt == nil {
		return false
	}
	return time.Now().Before(t.Claims.ExpiresAt.Time)
}
