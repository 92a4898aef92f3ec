package model

import (
	"database/sql"
	"time"
)

// Role : закрытое перечисление ролей пользователя
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// Valid проверяет, что роль входит в перечисление
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

type User struct {
	UUID         string         `db:"uuid" json:"uuid"`
	Username     string         `db:"username" json:"username"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Role         Role           `db:"role" json:"role"`
	Banned       bool           `db:"banned" json:"banned"`
	Information  string         `db:"information" json:"information"`
	RefreshToken sql.NullString `db:"refresh_token" json:"-"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}
