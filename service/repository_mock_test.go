// file: service/repository_mock_test.go

package service

import (
	"go-game-api/model"

	"github.com/stretchr/testify/mock"
)

// mockUserRepo is a testify mock of repository.IUserRepository shared by the
// service tests.
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) GetUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetUserByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetUserByKakaoID(kakaoID string) (*model.User, error) {
	args := m.Called(kakaoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateExperience(id, level, experience int) error {
	args := m.Called(id, level, experience)
	return args.Error(0)
}

func (m *mockUserRepo) SaveRefreshToken(id int, token string) error {
	args := m.Called(id, token)
	return args.Error(0)
}

func (m *mockUserRepo) DeleteRefreshToken(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockUserRepo) EmailExists(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) NicknameExists(nickname string) (bool, error) {
	args := m.Called(nickname)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) GetTopUsers(limit int) ([]*model.User, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}
