package repository

import (
	"context"
	"time"

	"image-sharing-server/config"
	"image-sharing-server/internal/util"
)

// RevokedTokenRepository хранит черный список access-токенов в таблице revoked_tokens.
// Запись живет до фоновой очистки; окно хранения обязано перекрывать срок жизни
// access-токена, это проверяется при загрузке конфигурации.
type RevokedTokenRepository struct {
	*config.Database
}

func NewRevokedTokenRepository(database *config.Database) *RevokedTokenRepository {
	return &RevokedTokenRepository{database}
}

// Add : добавляет токен в черный список. Повторная вставка того же токена не ошибка
func (r *RevokedTokenRepository) Add(ctx context.Context, accessToken string) error {
	query := `
		INSERT INTO revoked_tokens (access_token, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (access_token) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, accessToken)
	if err != nil {
		return util.LogError("[TokenRepo] не удалось добавить токен в черный список", err)
	}
	return nil
}

// Contains : проверяет членство токена в черном списке
func (r *RevokedTokenRepository) Contains(ctx context.Context, accessToken string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE access_token = $1)`
	err := r.DB.GetContext(ctx, &exists, query, accessToken)
	if err != nil {
		return false, util.LogError("[TokenRepo] ошибка проверки черного списка", err)
	}
	return exists, nil
}

// Purge : удаляет записи старше окна хранения, возвращает число удаленных.
// Вызывается только фоновой очисткой, никогда из обработчиков запросов
func (r *RevokedTokenRepository) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `DELETE FROM revoked_tokens WHERE created_at < $1`

	result, err := r.DB.ExecContext(ctx, query, time.Now().Add(-olderThan))
	if err != nil {
		return 0, util.LogError("[TokenRepo] не удалось очистить черный список", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, util.LogError("[TokenRepo] не удалось получить число удаленных записей", err)
	}

	return removed, nil
}
