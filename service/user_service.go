// file: service/user_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"go-game-api/common"
	"go-game-api/logger"
	"go-game-api/model"
	"go-game-api/repository"
	"time"

	"github.com/sirupsen/logrus"
)

// ExpPerLevel is how much experience one level takes.
const ExpPerLevel = 100

const (
	rankingCacheKey = "ranking:top10"
	rankingCacheTTL = 1 * time.Minute
	rankingSize     = 10
)

// UserService handles signup, profile and leaderboard logic.
type UserService struct {
	userRepo repository.IUserRepository
	cache    ICacheClient
}

func NewUserService(userRepo repository.IUserRepository, cache ICacheClient) *UserService {
	return &UserService{userRepo: userRepo, cache: cache}
}

// Signup creates a password account. Email and nickname must both be free.
func (s *UserService) Signup(req *model.SignupRequest) error {
	if err := s.DuplicateEmail(req.Email); err != nil {
		return err
	}
	if err := s.DuplicateNickname(req.Nickname); err != nil {
		return err
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Email:      sql.NullString{String: req.Email, Valid: true},
		Password:   sql.NullString{String: hashedPassword, Valid: true},
		Nickname:   req.Nickname,
		Picture:    model.DefaultPicture,
		Level:      1,
		Experience: 0,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"nickname": user.Nickname,
	}).Info("New user signed up")

	return nil
}

// DuplicateEmail fails with ErrDuplicate when the email is already taken.
func (s *UserService) DuplicateEmail(email string) error {
	exists, err := s.userRepo.EmailExists(email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: email", common.ErrDuplicate)
	}
	return nil
}

// DuplicateNickname fails with ErrDuplicate when the nickname is taken.
func (s *UserService) DuplicateNickname(nickname string) error {
	exists, err := s.userRepo.NicknameExists(nickname)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: nickname", common.ErrDuplicate)
	}
	return nil
}

// GetProfile re-reads the account so the response reflects the latest state
// rather than whatever the access token was issued against.
func (s *UserService) GetProfile(userID int) (*model.ProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	return &model.ProfileResponse{
		Email:      user.Email.String,
		KakaoID:    user.KakaoID.String,
		Nickname:   user.Nickname,
		Picture:    user.Picture,
		Level:      user.Level,
		Experience: user.Experience,
	}, nil
}

// UpdateProfile applies nickname, picture and password changes. Empty fields
// are left as they are; a nickname change must not collide.
func (s *UserService) UpdateProfile(user *model.User, req *model.UpdateProfileRequest) error {
	if req.Nickname != "" && req.Nickname != user.Nickname {
		if err := s.DuplicateNickname(req.Nickname); err != nil {
			return err
		}
		user.Nickname = req.Nickname
	}
	if req.Picture != "" {
		user.Picture = req.Picture
	}
	if req.Password != "" {
		hashedPassword, err := HashPassword(req.Password)
		if err != nil {
			return err
		}
		user.Password = sql.NullString{String: hashedPassword, Valid: true}
	}

	return s.userRepo.UpdateProfile(user)
}

// AddExperience applies a game result. Level is derived from the new total,
// and the cached leaderboard is invalidated since the order may have moved.
func (s *UserService) AddExperience(user *model.User, gained int) (*model.ExperienceResponse, error) {
	experience := user.Experience + gained
	level := experience/ExpPerLevel + 1

	if err := s.userRepo.UpdateExperience(user.ID, level, experience); err != nil {
		return nil, err
	}

	s.cache.Del(context.Background(), rankingCacheKey)

	logger.Log.WithFields(logrus.Fields{
		"user_id":    user.ID,
		"gained":     gained,
		"level":      level,
		"experience": experience,
	}).Info("Updated user experience")

	return &model.ExperienceResponse{
		Nickname:   user.Nickname,
		Level:      level,
		Experience: experience,
		Message:    model.MessageSuccess,
	}, nil
}

// GetTopUsers returns the top-ten leaderboard, utilizing a cache-aside
// strategy.
func (s *UserService) GetTopUsers() ([]model.RankingEntry, error) {
	ctx := context.Background()

	// 1. Try to get data from Redis.
	cachedRanking, err := s.cache.Get(ctx, rankingCacheKey).Result()
	if err == nil {
		// Cache hit.
		var entries []model.RankingEntry
		if err := json.Unmarshal([]byte(cachedRanking), &entries); err == nil {
			return entries, nil
		}
	}

	// 2. Cache miss. Fetch from the database.
	users, err := s.userRepo.GetTopUsers(rankingSize)
	if err != nil {
		return nil, err
	}

	entries := make([]model.RankingEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, model.RankingEntry{
			Nickname:   u.Nickname,
			Picture:    u.Picture,
			Experience: u.Experience,
		})
	}

	// 3. Store the result in Redis for future requests.
	data, err := json.Marshal(entries)
	if err == nil {
		s.cache.Set(ctx, rankingCacheKey, data, rankingCacheTTL)
	}

	return entries, nil
}
