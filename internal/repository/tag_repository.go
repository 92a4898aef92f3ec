package repository

import (
	"context"
	"database/sql"

	"image-sharing-server/config"
	"image-sharing-server/internal/model"
	"image-sharing-server/internal/util"
)

type TagRepository struct {
	*config.Database
}

func NewTagRepository(database *config.Database) *TagRepository {
	return &TagRepository{database}
}

// CreateTag : сохраняет новый тег, имя уникально
func (r *TagRepository) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	query := `INSERT INTO tags (name_tag) VALUES ($1) RETURNING id, name_tag`

	tag := &model.Tag{}
	err := r.DB.QueryRowxContext(ctx, query, name).StructScan(tag)
	if err != nil {
		if translated := translateUniqueViolation(err); translated != err {
			return nil, translated
		}
		return nil, util.LogError("[TagRepo] ошибка вставки данных в БД", err)
	}

	return tag, nil
}

// GetTag : ищет тег по id
func (r *TagRepository) GetTag(ctx context.Context, tagID int64) (*model.Tag, error) {
	var tag model.Tag
	err := r.DB.GetContext(ctx, &tag, `SELECT id, name_tag FROM tags WHERE id = $1`, tagID)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagByName : ищет тег по имени
func (r *TagRepository) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.DB.GetContext(ctx, &tag, `SELECT id, name_tag FROM tags WHERE name_tag = $1`, name)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListTags : все теги по алфавиту
func (r *TagRepository) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags := make([]model.Tag, 0)
	err := r.DB.SelectContext(ctx, &tags, `SELECT id, name_tag FROM tags ORDER BY name_tag ASC`)
	if err != nil {
		return nil, util.LogError("[TagRepo] не удалось получить список тегов", err)
	}
	return tags, nil
}

// UpdateTag : переименовывает тег
func (r *TagRepository) UpdateTag(ctx context.Context, tagID int64, name string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE tags SET name_tag = $2 WHERE id = $1`, tagID, name)
	if err != nil {
		if translated := translateUniqueViolation(err); translated != err {
			return translated
		}
		return util.LogError("[TagRepo] не удалось обновить тег", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[TagRepo] не удалось проверить, обновлен ли тег", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteTag : удаляет тег вместе со связями
func (r *TagRepository) DeleteTag(ctx context.Context, tagID int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, tagID)
	if err != nil {
		return util.LogError("[TagRepo] не удалось удалить тег", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[TagRepo] не удалось проверить, удален ли тег", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
