package model

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleUser Role = "USER"
)

// DefaultPicture is assigned to accounts created without a profile image.
const DefaultPicture = "default.png"

// User is a single account row. Email and Password are null for accounts
// created through Kakao login; KakaoID is null for password accounts.
// RefreshToken is the one-slot session: it is overwritten on every login
// and cleared on logout, never appended to.
type User struct {
	ID           int            `json:"id"`
	Email        sql.NullString `json:"-"`
	Password     sql.NullString `json:"-"`
	Nickname     string         `json:"nickname"`
	Picture      string         `json:"picture"`
	Level        int            `json:"level"`
	Experience   int            `json:"experience"`
	KakaoID      sql.NullString `json:"-"`
	RefreshToken sql.NullString `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
}
