// file: service/user_service_test.go

package service

import (
	"go-game-api/common"
	"go-game-api/model"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func TestUserService_Signup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		_, cache := newTestRedis(t)
		mockRepo := new(mockUserRepo)
		mockRepo.On("EmailExists", "x@y.com").Return(false, nil).Once()
		mockRepo.On("NicknameExists", "zed").Return(false, nil).Once()
		mockRepo.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Email.String == "x@y.com" &&
				u.Nickname == "zed" &&
				u.Picture == model.DefaultPicture &&
				u.Level == 1 && u.Experience == 0 &&
				u.Password.Valid && u.Password.String != "password123"
		})).Return(nil).Once()

		userService := NewUserService(mockRepo, cache)
		err := userService.Signup(&model.SignupRequest{
			Email:    "x@y.com",
			Password: "password123",
			Nickname: "zed",
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, cache := newTestRedis(t)
		mockRepo := new(mockUserRepo)
		mockRepo.On("EmailExists", "x@y.com").Return(true, nil).Once()

		userService := NewUserService(mockRepo, cache)
		err := userService.Signup(&model.SignupRequest{
			Email:    "x@y.com",
			Password: "password123",
			Nickname: "zed",
		})

		assert.ErrorIs(t, err, common.ErrDuplicate)
		mockRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("duplicate nickname", func(t *testing.T) {
		_, cache := newTestRedis(t)
		mockRepo := new(mockUserRepo)
		mockRepo.On("EmailExists", "x@y.com").Return(false, nil).Once()
		mockRepo.On("NicknameExists", "zed").Return(true, nil).Once()

		userService := NewUserService(mockRepo, cache)
		err := userService.Signup(&model.SignupRequest{
			Email:    "x@y.com",
			Password: "password123",
			Nickname: "zed",
		})

		assert.ErrorIs(t, err, common.ErrDuplicate)
		mockRepo.AssertNotCalled(t, "CreateUser")
	})
}

func TestUserService_DuplicateChecks(t *testing.T) {
	_, cache := newTestRedis(t)
	mockRepo := new(mockUserRepo)
	mockRepo.On("EmailExists", "taken@y.com").Return(true, nil)
	mockRepo.On("EmailExists", "free@y.com").Return(false, nil)
	mockRepo.On("NicknameExists", "taken").Return(true, nil)
	mockRepo.On("NicknameExists", "free").Return(false, nil)

	userService := NewUserService(mockRepo, cache)

	assert.ErrorIs(t, userService.DuplicateEmail("taken@y.com"), common.ErrDuplicate)
	assert.NoError(t, userService.DuplicateEmail("free@y.com"))
	assert.ErrorIs(t, userService.DuplicateNickname("taken"), common.ErrDuplicate)
	assert.NoError(t, userService.DuplicateNickname("free"))
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("nickname collision", func(t *testing.T) {
		_, cache := newTestRedis(t)
		mockRepo := new(mockUserRepo)
		mockRepo.On("NicknameExists", "newname").Return(true, nil).Once()

		userService := NewUserService(mockRepo, cache)
		user := &model.User{ID: 1, Nickname: "oldname"}

		err := userService.UpdateProfile(user, &model.UpdateProfileRequest{Nickname: "newname"})
		assert.ErrorIs(t, err, common.ErrDuplicate)
		mockRepo.AssertNotCalled(t, "UpdateProfile")
	})

	t.Run("keeping own nickname is not a collision", func(t *testing.T) {
		_, cache := newTestRedis(t)
		mockRepo := new(mockUserRepo)
		mockRepo.On("UpdateProfile", mock.MatchedBy(func(u *model.User) bool {
			return u.Nickname == "oldname" && u.Picture == "new.png"
		})).Return(nil).Once()

		userService := NewUserService(mockRepo, cache)
		user := &model.User{ID: 1, Nickname: "oldname", Picture: "old.png"}

		err := userService.UpdateProfile(user, &model.UpdateProfileRequest{
			Nickname: "oldname",
			Picture:  "new.png",
		})
		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "NicknameExists")
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_AddExperience(t *testing.T) {
	t.Run("level derives from total experience", func(t *testing.T) {
		mr, cache := newTestRedis(t)
		mr.Set(rankingCacheKey, `[]`)

		mockRepo := new(mockUserRepo)
		// 250 + 70 = 320 total -> level 4.
		mockRepo.On("UpdateExperience", 1, 4, 320).Return(nil).Once()

		userService := NewUserService(mockRepo, cache)
		user := &model.User{ID: 1, Nickname: "zed", Level: 3, Experience: 250}

		res, err := userService.AddExperience(user, 70)
		assert.NoError(t, err)
		assert.Equal(t, 4, res.Level)
		assert.Equal(t, 320, res.Experience)
		assert.Equal(t, "zed", res.Nickname)

		// The cached leaderboard was invalidated.
		assert.False(t, mr.Exists(rankingCacheKey))
		mockRepo.AssertExpectations(t)
	})

	t.Run("zero gain stays on the same level", func(t *testing.T) {
		_, cache := newTestRedis(t)
		mockRepo := new(mockUserRepo)
		mockRepo.On("UpdateExperience", 1, 1, 50).Return(nil).Once()

		userService := NewUserService(mockRepo, cache)
		user := &model.User{ID: 1, Nickname: "zed", Level: 1, Experience: 50}

		res, err := userService.AddExperience(user, 0)
		assert.NoError(t, err)
		assert.Equal(t, 1, res.Level)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_GetTopUsers(t *testing.T) {
	topUsers := []*model.User{
		{Nickname: "first", Picture: "1.png", Experience: 900},
		{Nickname: "second", Picture: "2.png", Experience: 500},
	}

	t.Run("cache miss fetches from the database and fills the cache", func(t *testing.T) {
		mr, cache := newTestRedis(t)
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetTopUsers", 10).Return(topUsers, nil).Once()

		userService := NewUserService(mockRepo, cache)
		entries, err := userService.GetTopUsers()

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, "first", entries[0].Nickname)
		assert.Equal(t, 900, entries[0].Experience)
		assert.True(t, mr.Exists(rankingCacheKey))
		mockRepo.AssertExpectations(t)
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		_, cache := newTestRedis(t)
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetTopUsers", 10).Return(topUsers, nil).Once()

		userService := NewUserService(mockRepo, cache)

		_, err := userService.GetTopUsers()
		assert.NoError(t, err)

		entries, err := userService.GetTopUsers()
		assert.NoError(t, err)
		assert.Len(t, entries, 2)

		// GetTopUsers on the repository ran exactly once.
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNumberOfCalls(t, "GetTopUsers", 1)
	})

	t.Run("empty leaderboard", func(t *testing.T) {
		_, cache := newTestRedis(t)
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetTopUsers", 10).Return([]*model.User{}, nil).Once()

		userService := NewUserService(mockRepo, cache)
		entries, err := userService.GetTopUsers()

		assert.NoError(t, err)
		assert.Empty(t, entries)
	})
}
