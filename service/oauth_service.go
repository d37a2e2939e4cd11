// file: service/oauth_service.go

package service

import (
	"context"
	"database/sql"
	"errors"
	"go-game-api/logger"
	"go-game-api/model"
	"go-game-api/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// OAuthService runs the Kakao login flow: exchange the authorization code,
// fetch the provider profile, find or create the local account, then open a
// session exactly like a password login does.
type OAuthService struct {
	userRepo repository.IUserRepository
	auth     *AuthService
	kakao    IKakaoClient
}

func NewOAuthService(userRepo repository.IUserRepository, auth *AuthService, kakao IKakaoClient) *OAuthService {
	return &OAuthService{userRepo: userRepo, auth: auth, kakao: kakao}
}

func (s *OAuthService) KakaoLogin(ctx context.Context, code string) (*model.User, *TokenPair, error) {
	kakaoAccessToken, err := s.kakao.GetAccessToken(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.kakao.GetProfile(ctx, kakaoAccessToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.findOrCreateUser(profile)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.auth.OpenSession(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"nickname": user.Nickname,
	}).Info("Kakao user logged in")

	return user, pair, nil
}

func (s *OAuthService) findOrCreateUser(profile *KakaoProfile) (*model.User, error) {
	user, err := s.userRepo.GetUserByKakaoID(profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	nickname, err := s.availableNickname(profile.Nickname)
	if err != nil {
		return nil, err
	}

	picture := profile.Picture
	if picture == "" {
		picture = model.DefaultPicture
	}

	user = &model.User{
		Nickname:   nickname,
		Picture:    picture,
		Level:      1,
		Experience: 0,
		KakaoID:    sql.NullString{String: profile.ID, Valid: true},
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"nickname": user.Nickname,
	}).Info("Created new user from Kakao profile")

	return user, nil
}

// availableNickname keeps the Kakao nickname when it is free and appends a
// short random suffix when another account already holds it.
func (s *OAuthService) availableNickname(nickname string) (string, error) {
	exists, err := s.userRepo.NicknameExists(nickname)
	if err != nil {
		return "", err
	}
	if !exists {
		return nickname, nil
	}
	return nickname + "-" + uuid.NewString()[:8], nil
}
