package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"image-sharing-server/internal/model"
	"image-sharing-server/internal/ports"
	"image-sharing-server/internal/repository"
	"image-sharing-server/internal/util"
)

type TagService struct {
	tagRepository ports.TagRepository
}

func NewTagService(tagRepository ports.TagRepository) *TagService {
	return &TagService{tagRepository: tagRepository}
}

func (s *TagService) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	name, err := normalizeTagName(name)
	if err != nil {
		return nil, err
	}

	tag, err := s.tagRepository.CreateTag(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrAlreadyExists
		}
		return nil, util.LogError("[TagService] не удалось создать тег", err)
	}
	return tag, nil
}

func (s *TagService) GetTag(ctx context.Context, tagID int64) (*model.Tag, error) {
	tag, err := s.tagRepository.GetTag(ctx, tagID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *TagService) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	name, err := normalizeTagName(name)
	if err != nil {
		return nil, err
	}

	tag, err := s.tagRepository.GetTagByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *TagService) ListTags(ctx context.Context) ([]model.Tag, error) {
	return s.tagRepository.ListTags(ctx)
}

func (s *TagService) UpdateTag(ctx context.Context, tagID int64, name string) (*model.Tag, error) {
	name, err := normalizeTagName(name)
	if err != nil {
		return nil, err
	}

	if err := s.tagRepository.UpdateTag(ctx, tagID, name); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrUniqueViolation):
			return nil, ErrAlreadyExists
		}
		return nil, util.LogError("[TagService] не удалось обновить тег", err)
	}

	return s.tagRepository.GetTag(ctx, tagID)
}

func (s *TagService) DeleteTag(ctx context.Context, tagID int64) error {
	if err := s.tagRepository.DeleteTag(ctx, tagID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return util.LogError("[TagService] не удалось удалить тег", err)
	}
	return nil
}

// normalizeTagName : имя тега непустое, не длиннее 25 символов
func normalizeTagName(name string) (string, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return "", fmt.Errorf("[TagService] пустое имя тега")
	}
	if utf8.RuneCountInString(name) > 25 {
		return "", fmt.Errorf("[TagService] имя тега длиннее 25 символов")
	}
	return name, nil
}
