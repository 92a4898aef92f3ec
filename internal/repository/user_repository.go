package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"image-sharing-server/config"
	"image-sharing-server/internal/model"
	"image-sharing-server/internal/util"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

const userColumns = `uuid, username, email, password_hash, role, banned, information, refresh_token, created_at`

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, username, email, password_hash, role, banned, information)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + userColumns

	createdUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query,
		user.UUID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Banned,
		user.Information,
	).StructScan(createdUser)

	if err != nil {
		if translated := translateUniqueViolation(err); translated != err {
			return nil, translated
		}
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uuid = $1`
	var user model.User
	err := r.DB.GetContext(ctx, &user, query, uuid)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByEmail : ищет пользователя по email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	var user model.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по email", err)
	}
	return &user, nil
}

// FindByUsername : ищет пользователя по username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	var user model.User
	err := r.DB.GetContext(ctx, &user, query, username)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по username", err)
	}
	return &user, nil
}

// UpdateRefreshToken : перезаписывает действующий refresh-токен пользователя.
// NULL сбрасывает токен, закрывая сессию
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, uuid string, refreshToken sql.NullString) error {
	query := `UPDATE users SET refresh_token = $2 WHERE uuid = $1`
	result, err := r.DB.ExecContext(ctx, query, uuid, refreshToken)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить refresh токен", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить, обновлен ли refresh токен", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[UserRepo] пользователь %s не найден", uuid)
	}

	return nil
}

// UpdateRole : меняет роль пользователя
func (r *UserRepository) UpdateRole(ctx context.Context, uuid string, role model.Role) error {
	query := `UPDATE users SET role = $2 WHERE uuid = $1`
	_, err := r.DB.ExecContext(ctx, query, uuid, role)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить роль", err)
	}
	return nil
}

// UpdateBanned : выставляет флаг блокировки
func (r *UserRepository) UpdateBanned(ctx context.Context, uuid string, banned bool) error {
	query := `UPDATE users SET banned = $2 WHERE uuid = $1`
	_, err := r.DB.ExecContext(ctx, query, uuid, banned)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить флаг banned", err)
	}
	return nil
}

// UpdateInformation : обновляет текст профиля
func (r *UserRepository) UpdateInformation(ctx context.Context, uuid string, information string) error {
	query := `UPDATE users SET information = $2 WHERE uuid = $1`
	_, err := r.DB.ExecContext(ctx, query, uuid, information)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить профиль", err)
	}
	return nil
}

// CountUsers : общее число пользователей (первый зарегистрированный становится админом)
func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return 0, util.LogError("[UserRepo] не удалось посчитать пользователей", err)
	}
	return count, nil
}

// CountAdmins : число администраторов, нужно для защиты последнего админа
func (r *UserRepository) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE role = $1`, model.RoleAdmin)
	if err != nil {
		return 0, util.LogError("[UserRepo] не удалось посчитать администраторов", err)
	}
	return count, nil
}

// ListUsers : вывод списка пользователей с cursor-based пагинацией
func (r *UserRepository) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE created_at > $1
        ORDER BY created_at ASC, uuid ASC
        LIMIT $2
    `

	var cursorTime time.Time
	var err error

	if cursor == "" {
		cursorTime = time.Time{}
	} else {
		cursorTime, err = time.Parse(time.RFC3339Nano, cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor format: %w", err)
		}
	}

	var users []*model.User
	err = r.DB.SelectContext(ctx, &users, query, cursorTime, limit+1) // +1 для проверки наличия следующей страницы
	if err != nil {
		return nil, "", util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}

	var nextCursor string
	if len(users) > limit {
		users = users[:limit]
		nextCursor = users[len(users)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	return users, nextCursor, nil
}
