package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"image-sharing-server/internal/model"
	"image-sharing-server/internal/ports"
	"image-sharing-server/internal/util"

	"github.com/google/uuid"
)

type ImageService struct {
	imageRepository   ports.ImageRepository
	cacheRepository   ports.CacheRepository
	s3Service         ports.S3Storage
	transformProvider ports.TransformProvider
	eventProducer     ports.EventProducer
	uploader          *util.S3Uploader
	ttl               time.Duration
}

func NewImageService(
	imageRepository ports.ImageRepository,
	cacheRepository ports.CacheRepository,
	s3Service ports.S3Storage,
	transformProvider ports.TransformProvider,
	eventProducer ports.EventProducer,
	ttl time.Duration,
) *ImageService {
	return &ImageService{
		imageRepository:   imageRepository,
		cacheRepository:   cacheRepository,
		s3Service:         s3Service,
		transformProvider: transformProvider,
		eventProducer:     eventProducer,
		uploader:          util.NewS3Uploader(),
		ttl:               ttl,
	}
}

// UploadImage кладет оригинал в S3 по pre-signed URL и регистрирует запись
func (s *ImageService) UploadImage(ctx context.Context, owner *model.User, imageName, description string, tags []string, content io.Reader, size int64) (*model.Image, error) {
	if imageName == "" {
		return nil, fmt.Errorf("[ImageService] имя изображения не указано")
	}

	imageUUID := uuid.New().String()
	publicID := fmt.Sprintf("images/%s/%s", owner.UUID, imageUUID)

	putURL, err := s.s3Service.GeneratePresignedPutURL(ctx, publicID, s.ttl)
	if err != nil {
		return nil, util.LogError("[ImageService] не удалось подготовить загрузку", err)
	}

	if err := s.uploader.UploadReader(putURL, content, size, util.ContentTypeByName(imageName)); err != nil {
		return nil, util.LogError("[ImageService] не удалось загрузить изображение в S3", err)
	}

	getURL, err := s.s3Service.GeneratePresignedGetURL(ctx, publicID, s.ttl)
	if err != nil {
		return nil, util.LogError("[ImageService] не удалось сгенерировать URL изображения", err)
	}

	image := &model.Image{
		UUID:        imageUUID,
		OwnerUUID:   owner.UUID,
		URL:         getURL,
		PublicID:    publicID,
		ImageName:   imageName,
		Description: description,
	}

	if err := s.imageRepository.Create(ctx, image, tags); err != nil {
		// объект в S3 остался без записи, убираем его
		if delErr := s.s3Service.DeleteObject(ctx, publicID); delErr != nil {
			log.Printf("[ImageService] не удалось удалить осиротевший объект %s: %v", publicID, delErr)
		}
		return nil, util.LogError("[ImageService] не удалось сохранить изображение", err)
	}

	if err := s.cacheRepository.SetImage(ctx, image); err != nil {
		log.Printf("[ImageService] не удалось закэшировать изображение: %v", err)
	}

	s.publishEvent(image.UUID, map[string]interface{}{
		"event":      "image_uploaded",
		"image_uuid": image.UUID,
		"owner_uuid": owner.UUID,
	})

	return image, nil
}

// GetImage отдает изображение, сперва из кэша, затем из БД.
// Для изображений в нашем S3 ссылка перевыпускается на каждый запрос
func (s *ImageService) GetImage(ctx context.Context, imageUUID string) (*model.Image, error) {
	image, err := s.cacheRepository.GetImage(ctx, imageUUID)
	if err != nil {
		log.Printf("[ImageService] ошибка чтения кэша: %v", err)
	}

	if image == nil {
		image, err = s.imageRepository.GetByUUID(ctx, imageUUID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}

		if err := s.cacheRepository.SetImage(ctx, image); err != nil {
			log.Printf("[ImageService] не удалось закэшировать изображение: %v", err)
		}
	}

	if image.PublicID != "" {
		url, err := s.s3Service.GeneratePresignedGetURL(ctx, image.PublicID, s.ttl)
		if err != nil {
			return nil, util.LogError("[ImageService] не удалось сгенерировать URL изображения", err)
		}
		image.URL = url
	}

	return image, nil
}

func (s *ImageService) ListImages(ctx context.Context, ownerUUID, tag string, limit int) ([]model.Image, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.imageRepository.ListImages(ctx, ownerUUID, tag, limit)
}

// UpdateImage меняет описание и теги. Разрешено владельцу, модератору и администратору
func (s *ImageService) UpdateImage(ctx context.Context, user *model.User, imageUUID, description string, tags []string) (*model.Image, error) {
	image, err := s.imageRepository.GetByUUID(ctx, imageUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.checkImageAccess(user, image); err != nil {
		return nil, err
	}

	if err := s.imageRepository.Update(ctx, imageUUID, description, tags); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, util.LogError("[ImageService] не удалось обновить изображение", err)
	}

	if err := s.cacheRepository.DeleteImage(ctx, imageUUID); err != nil {
		log.Printf("[ImageService] не удалось сбросить кэш изображения: %v", err)
	}

	return s.GetImage(ctx, imageUUID)
}

// DeleteImage удаляет запись, объект в S3 и кэш
func (s *ImageService) DeleteImage(ctx context.Context, user *model.User, imageUUID string) error {
	image, err := s.imageRepository.GetByUUID(ctx, imageUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.checkImageAccess(user, image); err != nil {
		return err
	}

	if _, err := s.imageRepository.Delete(ctx, imageUUID); err != nil {
		return util.LogError("[ImageService] не удалось удалить изображение", err)
	}

	if image.PublicID != "" {
		if err := s.s3Service.DeleteObject(ctx, image.PublicID); err != nil {
			log.Printf("[ImageService] не удалось удалить объект %s из S3: %v", image.PublicID, err)
		}
	}

	if err := s.cacheRepository.DeleteImage(ctx, imageUUID); err != nil {
		log.Printf("[ImageService] не удалось сбросить кэш изображения: %v", err)
	}

	return nil
}

// TransformImage вызывает внешний сервис трансформации и регистрирует результат
// как новое изображение того же владельца
func (s *ImageService) TransformImage(ctx context.Context, user *model.User, imageUUID string, transformation model.Transformation) (*model.Image, error) {
	if !validTransformation(transformation.Operation) {
		return nil, fmt.Errorf("[ImageService] неизвестная операция: %s", transformation.Operation)
	}

	image, err := s.imageRepository.GetByUUID(ctx, imageUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.checkImageAccess(user, image); err != nil {
		return nil, err
	}

	// результат прошлой трансформации адресуется своим URL
	sourceID := image.PublicID
	if sourceID == "" {
		sourceID = image.URL
	}

	newURL, err := s.transformProvider.Transform(ctx, sourceID, transformation)
	if err != nil {
		return nil, util.LogError("[ImageService] трансформация не удалась", err)
	}

	transformed := &model.Image{
		UUID:        uuid.New().String(),
		OwnerUUID:   image.OwnerUUID,
		URL:         newURL,
		ImageName:   fmt.Sprintf("%s_%s", image.ImageName, transformation.Operation),
		Description: image.Description,
	}

	if err := s.imageRepository.Create(ctx, transformed, image.Tags); err != nil {
		return nil, util.LogError("[ImageService] не удалось сохранить результат трансформации", err)
	}

	return transformed, nil
}

// checkImageAccess : менять изображение может владелец, модератор или администратор
func (s *ImageService) checkImageAccess(user *model.User, image *model.Image) error {
	if user.UUID == image.OwnerUUID {
		return nil
	}
	if user.Role == model.RoleAdmin || user.Role == model.RoleModerator {
		return nil
	}
	return ErrForbidden
}

// publishEvent публикует событие вне пути запроса
func (s *ImageService) publishEvent(key string, event interface{}) {
	if s.eventProducer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.eventProducer.PublishEvent(ctx, key, event); err != nil {
			log.Printf("[ImageService] ошибка публикации события: %v", err)
		}
	}()
}

func validTransformation(operation string) bool {
	switch operation {
	case model.TransformResize, model.TransformRecolor, model.TransformCropFace,
		model.TransformSign, model.TransformExpand169, model.TransformExpand916,
		model.TransformVignette, model.TransformBlackWhite:
		return true
	}
	return false
}
