// file: repository/user_repository.go

package repository

import (
	"database/sql"
	"go-game-api/logger"
	"go-game-api/model"

	"github.com/sirupsen/logrus"
)

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	GetUserByKakaoID(kakaoID string) (*model.User, error)
	UpdateProfile(user *model.User) error
	UpdateExperience(id, level, experience int) error
	SaveRefreshToken(id int, token string) error
	DeleteRefreshToken(id int) error
	EmailExists(email string) (bool, error)
	NicknameExists(nickname string) (bool, error)
	GetTopUsers(limit int) ([]*model.User, error)
}

// UserRepository implements IUserRepository on PostgreSQL.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, email, password, nickname, picture, level, experience, kakao_id, refresh_token, created_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Nickname, &user.Picture,
		&user.Level, &user.Experience, &user.KakaoID, &user.RefreshToken, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user row. Both password signups and first-time
// Kakao logins go through here; the unused credential columns stay NULL.
func (r *UserRepository) CreateUser(user *model.User) error {
	log := logger.Log.WithFields(logrus.Fields{
		"nickname": user.Nickname,
	})
	log.Info("Executing query to create a new user")

	query := `INSERT INTO users (email, password, nickname, picture, level, experience, kakao_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	err := r.DB.QueryRow(query, user.Email, user.Password, user.Nickname, user.Picture,
		user.Level, user.Experience, user.KakaoID).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create user query")
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRow(query, email))
}

func (r *UserRepository) GetUserByID(id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(query, id))
}

func (r *UserRepository) GetUserByKakaoID(kakaoID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE kakao_id = $1`
	return scanUser(r.DB.QueryRow(query, kakaoID))
}

// UpdateProfile persists nickname, picture and password hash changes.
func (r *UserRepository) UpdateProfile(user *model.User) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"nickname": user.Nickname,
	})
	log.Info("Executing query to update user profile")

	query := `UPDATE users SET nickname = $1, picture = $2, password = $3 WHERE id = $4`
	_, err := r.DB.Exec(query, user.Nickname, user.Picture, user.Password, user.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update profile query")
		return err
	}
	return nil
}

func (r *UserRepository) UpdateExperience(id, level, experience int) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    id,
		"level":      level,
		"experience": experience,
	})
	log.Info("Executing query to update user experience")

	query := `UPDATE users SET level = $1, experience = $2 WHERE id = $3`
	_, err := r.DB.Exec(query, level, experience, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute update experience query")
		return err
	}
	return nil
}

// SaveRefreshToken overwrites the user's single refresh-token slot. A second
// login therefore discards the previous session.
func (r *UserRepository) SaveRefreshToken(id int, token string) error {
	log := logger.Log.WithField("user_id", id)
	log.Info("Executing query to save refresh token")

	query := `UPDATE users SET refresh_token = $1 WHERE id = $2`
	_, err := r.DB.Exec(query, token, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute save refresh token query")
		return err
	}
	return nil
}

// DeleteRefreshToken clears the slot. Clearing an already-empty slot is fine.
func (r *UserRepository) DeleteRefreshToken(id int) error {
	log := logger.Log.WithField("user_id", id)
	log.Info("Executing query to delete refresh token")

	query := `UPDATE users SET refresh_token = NULL WHERE id = $1`
	_, err := r.DB.Exec(query, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete refresh token query")
		return err
	}
	return nil
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	if err := r.DB.QueryRow(query, email).Scan(&exists); err != nil {
		logger.Log.WithError(err).Error("Failed to execute email exists query")
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) NicknameExists(nickname string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE nickname = $1)`
	if err := r.DB.QueryRow(query, nickname).Scan(&exists); err != nil {
		logger.Log.WithError(err).Error("Failed to execute nickname exists query")
		return false, err
	}
	return exists, nil
}

// GetTopUsers returns the leaderboard: highest experience first, earlier
// signups winning ties.
func (r *UserRepository) GetTopUsers(limit int) ([]*model.User, error) {
	log := logger.Log.WithField("limit", limit)
	log.Info("Executing query to get top users")

	query := `SELECT ` + userColumns + ` FROM users ORDER BY experience DESC, created_at ASC LIMIT $1`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		log.WithError(err).Error("Failed to execute top users query")
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Password, &u.Nickname, &u.Picture,
			&u.Level, &u.Experience, &u.KakaoID, &u.RefreshToken, &u.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan user row")
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
