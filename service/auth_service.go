// file: service/auth_service.go

package service

import (
	"database/sql"
	"errors"
	"go-game-api/common"
	"go-game-api/logger"
	"go-game-api/model"
	"go-game-api/repository"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// TokenPair is the result of a successful login: the access token for the
// response body and the refresh token for the session cookie. The two are
// always issued together.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService owns the session lifecycle: password login, access-token
// refresh and logout.
type AuthService struct {
	userRepo repository.IUserRepository
	tokens   *TokenService
}

func NewAuthService(userRepo repository.IUserRepository, tokens *TokenService) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Login authenticates an email/password pair and opens a session. A missing
// account and a wrong password both come back as ErrNotFound; the wire-level
// response does not reveal which one happened.
func (s *AuthService) Login(email, password string) (*model.User, *TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, common.ErrNotFound
		}
		return nil, nil, err
	}

	if !user.Password.Valid || !CheckPasswordHash(password, user.Password.String) {
		return nil, nil, common.ErrNotFound
	}

	pair, err := s.OpenSession(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"nickname": user.Nickname,
	}).Info("User logged in")

	return user, pair, nil
}

// OpenSession issues a fresh token pair and stores the refresh half in the
// user's slot, overwriting whatever session existed before. Both the
// password and the Kakao login paths end here.
func (s *AuthService) OpenSession(user *model.User) (*TokenPair, error) {
	now := time.Now()

	accessToken, err := s.tokens.CreateAccessToken(user.ID, user.Nickname, now)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.CreateRefreshToken(now)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveRefreshToken(user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh mints a new access token for an already-resolved user. The caller
// may have presented an expired access token; what matters here is the
// refresh token from the cookie. It must parse, be unexpired, and match the
// stored slot byte-for-byte — a well-signed refresh token that is not the
// current session's is rejected. The refresh token itself is not rotated.
func (s *AuthService) Refresh(user *model.User, cookieToken string) (string, error) {
	if cookieToken == "" {
		return "", common.ErrUnauthorized
	}

	refreshToken, err := s.tokens.ParseToken(cookieToken)
	if err != nil {
		return "", common.ErrUnauthorized
	}

	if !refreshToken.Valid() || !user.RefreshToken.Valid {
		logger.Log.WithField("user_id", user.ID).Info("Rejected refresh with invalid refresh token")
		return "", common.ErrUnauthorized
	}

	if user.RefreshToken.String != cookieToken {
		logger.Log.WithField("user_id", user.ID).Warn("Rejected refresh token that does not match the stored session")
		return "", common.ErrUnauthorized
	}

	accessToken, err := s.tokens.CreateAccessToken(user.ID, user.Nickname, time.Now())
	if err != nil {
		return "", err
	}

	return accessToken, nil
}

// Logout clears the stored refresh token. Logging out twice is harmless.
func (s *AuthService) Logout(user *model.User) error {
	if err := s.userRepo.DeleteRefreshToken(user.ID); err != nil {
		return err
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged out")
	return nil
}
