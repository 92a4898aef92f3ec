package repository

import (
	"context"
	"database/sql"

	"image-sharing-server/config"
	"image-sharing-server/internal/model"
	"image-sharing-server/internal/util"
)

type CommentRepository struct {
	*config.Database
}

func NewCommentRepository(database *config.Database) *CommentRepository {
	return &CommentRepository{database}
}

const commentColumns = `id, image_uuid, user_uuid, comment, created_at, updated_at`

// CreateComment : сохраняет новый комментарий
func (r *CommentRepository) CreateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	query := `
		INSERT INTO comments (image_uuid, user_uuid, comment)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns

	created := &model.Comment{}
	err := r.DB.QueryRowxContext(ctx, query,
		comment.ImageUUID,
		comment.UserUUID,
		comment.Comment,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[CommentRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// GetComment : ищет комментарий по id
func (r *CommentRepository) GetComment(ctx context.Context, commentID int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.GetContext(ctx, &comment, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListCommentsForImage : комментарии изображения от старых к новым
func (r *CommentRepository) ListCommentsForImage(ctx context.Context, imageUUID string) ([]model.Comment, error) {
	comments := make([]model.Comment, 0)
	query := `SELECT ` + commentColumns + ` FROM comments WHERE image_uuid = $1 ORDER BY created_at ASC`
	err := r.DB.SelectContext(ctx, &comments, query, imageUUID)
	if err != nil {
		return nil, util.LogError("[CommentRepo] не удалось получить комментарии", err)
	}
	return comments, nil
}

// UpdateComment : меняет текст комментария
func (r *CommentRepository) UpdateComment(ctx context.Context, commentID int64, text string) error {
	query := `UPDATE comments SET comment = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, commentID, text)
	if err != nil {
		return util.LogError("[CommentRepo] не удалось обновить комментарий", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CommentRepo] не удалось проверить, обновлен ли комментарий", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteComment : удаляет комментарий
func (r *CommentRepository) DeleteComment(ctx context.Context, commentID int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return util.LogError("[CommentRepo] не удалось удалить комментарий", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CommentRepo] не удалось проверить, удален ли комментарий", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
