package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"image-sharing-server/config"
	"image-sharing-server/internal/model"
	"image-sharing-server/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ImageRepository struct {
	*config.Database
}

func NewImageRepository(database *config.Database) *ImageRepository {
	return &ImageRepository{database}
}

// Create : сохраняет изображение и связывает его с тегами в одной транзакции
func (r *ImageRepository) Create(ctx context.Context, image *model.Image, tags []string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return util.LogError("[ImageRepo] не удалось начать транзакцию", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO images (uuid, owner_uuid, url, public_id, image_name, description)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, query,
		image.UUID,
		image.OwnerUUID,
		image.URL,
		image.PublicID,
		image.ImageName,
		image.Description,
	)
	if err != nil {
		return util.LogError("[ImageRepo] ошибка вставки данных в БД", err)
	}

	if err := linkTags(ctx, tx, image.UUID, tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return util.LogError("[ImageRepo] не удалось зафиксировать транзакцию", err)
	}

	image.Tags = tags
	return nil
}

// linkTags создает недостающие теги и привязывает их к изображению
func linkTags(ctx context.Context, tx *sqlx.Tx, imageUUID string, tags []string) error {
	for _, tag := range tags {
		var tagID int64
		err := tx.GetContext(ctx, &tagID, `
			INSERT INTO tags (name_tag) VALUES ($1)
			ON CONFLICT (name_tag) DO UPDATE SET name_tag = EXCLUDED.name_tag
			RETURNING id
		`, tag)
		if err != nil {
			return util.LogError("[ImageRepo] не удалось сохранить тег", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO image_m2m_tag (image_uuid, tag_id) VALUES ($1, $2)
			ON CONFLICT (image_uuid, tag_id) DO NOTHING
		`, imageUUID, tagID)
		if err != nil {
			return util.LogError("[ImageRepo] не удалось привязать тег", err)
		}
	}
	return nil
}

// GetByUUID : возвращает изображение вместе с тегами
func (r *ImageRepository) GetByUUID(ctx context.Context, imageUUID string) (*model.Image, error) {
	query := `
		SELECT i.uuid, i.owner_uuid, i.url, i.public_id, i.image_name, i.description,
		       i.created_at, i.updated_at,
		       COALESCE(array_agg(t.name_tag) FILTER (WHERE t.name_tag IS NOT NULL), '{}') AS tags
		FROM images AS i
		LEFT JOIN image_m2m_tag AS m ON m.image_uuid = i.uuid
		LEFT JOIN tags AS t ON t.id = m.tag_id
		WHERE i.uuid = $1
		GROUP BY i.uuid
	`

	row := r.DB.QueryRowxContext(ctx, query, imageUUID)

	var image model.Image
	var tags pq.StringArray
	err := row.Scan(
		&image.UUID,
		&image.OwnerUUID,
		&image.URL,
		&image.PublicID,
		&image.ImageName,
		&image.Description,
		&image.CreatedAt,
		&image.UpdatedAt,
		&tags,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, util.LogError("[ImageRepo] ошибка при выполнении запроса", err)
	}

	image.Tags = tags
	return &image, nil
}

// ListImages : список изображений с фильтрами по владельцу и тегу
func (r *ImageRepository) ListImages(ctx context.Context, ownerUUID, tag string, limit int) ([]model.Image, error) {
	query := `
		SELECT i.uuid, i.owner_uuid, i.url, i.public_id, i.image_name, i.description,
		       i.created_at, i.updated_at,
		       COALESCE(array_agg(t.name_tag) FILTER (WHERE t.name_tag IS NOT NULL), '{}') AS tags
		FROM images AS i
		LEFT JOIN image_m2m_tag AS m ON m.image_uuid = i.uuid
		LEFT JOIN tags AS t ON t.id = m.tag_id
		WHERE ($1 = '' OR i.owner_uuid = $1)
		  AND ($2 = '' OR i.uuid IN (
			SELECT m2.image_uuid FROM image_m2m_tag AS m2
			JOIN tags AS t2 ON t2.id = m2.tag_id
			WHERE t2.name_tag = $2
		  ))
		GROUP BY i.uuid
		ORDER BY i.created_at DESC
		LIMIT $3
	`

	rows, err := r.DB.QueryxContext(ctx, query, ownerUUID, tag, limit)
	if err != nil {
		return nil, util.LogError("[ImageRepo] не удалось получить список изображений", err)
	}
	defer rows.Close()

	images := make([]model.Image, 0)
	for rows.Next() {
		var image model.Image
		var tags pq.StringArray
		if err := rows.Scan(
			&image.UUID,
			&image.OwnerUUID,
			&image.URL,
			&image.PublicID,
			&image.ImageName,
			&image.Description,
			&image.CreatedAt,
			&image.UpdatedAt,
			&tags,
		); err != nil {
			return nil, util.LogError("[ImageRepo] ошибка чтения строки", err)
		}
		image.Tags = tags
		images = append(images, image)
	}

	return images, rows.Err()
}

// Update : обновляет описание и привязку тегов
func (r *ImageRepository) Update(ctx context.Context, imageUUID, description string, tags []string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return util.LogError("[ImageRepo] не удалось начать транзакцию", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE images SET description = $2, updated_at = NOW() WHERE uuid = $1
	`, imageUUID, description)
	if err != nil {
		return util.LogError("[ImageRepo] не удалось обновить изображение", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ImageRepo] не удалось проверить, обновлено ли изображение", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	if tags != nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM image_m2m_tag WHERE image_uuid = $1`, imageUUID)
		if err != nil {
			return util.LogError("[ImageRepo] не удалось отвязать старые теги", err)
		}
		if err := linkTags(ctx, tx, imageUUID, tags); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return util.LogError("[ImageRepo] не удалось зафиксировать транзакцию", err)
	}
	return nil
}

// Delete : удаляет изображение, возвращает удаленную запись для очистки хранилища
func (r *ImageRepository) Delete(ctx context.Context, imageUUID string) (*model.Image, error) {
	image, err := r.GetByUUID(ctx, imageUUID)
	if err != nil {
		return nil, err
	}

	result, err := r.DB.ExecContext(ctx, `DELETE FROM images WHERE uuid = $1`, imageUUID)
	if err != nil {
		return nil, util.LogError("[ImageRepo] не удалось удалить изображение", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, util.LogError("[ImageRepo] не удалось проверить, удалено ли изображение", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("[ImageRepo] изображение %s не найдено", imageUUID)
	}

	return image, nil
}
