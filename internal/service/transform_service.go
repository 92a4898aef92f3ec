package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"image-sharing-server/config"
	"image-sharing-server/internal/model"
	"image-sharing-server/internal/util"
)

// TransformService : клиент внешнего сервиса трансформации изображений.
// Сервис получает идентификатор изображения и параметры, возвращает URL результата.
// Его визуальные алгоритмы нас не касаются
type TransformService struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewTransformService(cfg *config.TransformConfig) (*TransformService, error) {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("[TransformService] неверный timeout: %w", err)
	}

	return &TransformService{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

type transformRequest struct {
	PublicID string `json:"public_id"`
	model.Transformation
}

type transformResponse struct {
	URL string `json:"url"`
}

// Transform отправляет запрос на трансформацию и возвращает URL нового изображения
func (s *TransformService) Transform(ctx context.Context, publicID string, transformation model.Transformation) (string, error) {
	payload, err := json.Marshal(transformRequest{
		PublicID:       publicID,
		Transformation: transformation,
	})
	if err != nil {
		return "", util.LogError("[TransformService] ошибка сериализации запроса", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/transform", bytes.NewReader(payload))
	if err != nil {
		return "", util.LogError("[TransformService] ошибка создания запроса", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", util.LogError("[TransformService] ошибка выполнения запроса", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("[TransformService] сервис вернул статус %d", resp.StatusCode)
	}

	var result transformResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", util.LogError("[TransformService] ошибка чтения ответа", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("[TransformService] сервис вернул пустой URL")
	}

	return result.URL, nil
}
