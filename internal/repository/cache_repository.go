package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"image-sharing-server/config"
	"image-sharing-server/internal/model"
	"image-sharing-server/internal/util"

	"github.com/redis/go-redis/v9"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetImage(ctx context.Context, image *model.Image) error {
	data, err := json.Marshal(image)
	if err != nil {
		return util.LogError("ошибка сериализации изображения", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(image.UUID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetImage(ctx context.Context, uuid string) (*model.Image, error) {
	val, err := r.client.Client.Get(ctx, r.key(uuid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения изображения из Redis", err)
	}

	var image model.Image
	if err := json.Unmarshal([]byte(val), &image); err != nil {
		return nil, util.LogError("ошибка десериализации изображения из кэша", err)
	}
	return &image, nil
}

func (r *CacheRepository) DeleteImage(ctx context.Context, uuid string) error {
	if err := r.client.Client.Del(ctx, r.key(uuid)).Err(); err != nil {
		return util.LogError("ошибка удаления изображения из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(uuid string) string {
	return fmt.Sprintf("image:%s", uuid)
}
