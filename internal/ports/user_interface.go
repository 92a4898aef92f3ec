package ports

import (
	"context"
	"database/sql"

	"image-sharing-server/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateRefreshToken(ctx context.Context, uuid string, refreshToken sql.NullString) error
	UpdateRole(ctx context.Context, uuid string, role model.Role) error
	UpdateBanned(ctx context.Context, uuid string, banned bool) error
	UpdateInformation(ctx context.Context, uuid string, information string) error
	CountUsers(ctx context.Context) (int, error)
	CountAdmins(ctx context.Context) (int, error)
	ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error)
}

type UserService interface {
	Signup(ctx context.Context, username, email, password string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error)
	ChangeRole(ctx context.Context, targetUUID string, role model.Role) error
	SetBanned(ctx context.Context, targetUUID string, banned bool) error
	UpdateInformation(ctx context.Context, userUUID string, information string) error
}
