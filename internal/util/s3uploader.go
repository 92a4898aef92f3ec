package util

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"
)

// S3Uploader загружает содержимое по pre-signed URL
type S3Uploader struct {
	client *http.Client
}

func NewS3Uploader() *S3Uploader {
	return &S3Uploader{
		client: &http.Client{
			Timeout: 10 * time.Minute, // Для больших изображений
		},
	}
}

// UploadReader загружает содержимое по pre-signed PUT URL
func (u *S3Uploader) UploadReader(presignedURL string, content io.Reader, size int64, contentType string) error {
	req, err := http.NewRequest(http.MethodPut, presignedURL, content)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ошибка загрузки: статус %d, ответ: %s", resp.StatusCode, string(body))
	}

	return nil
}

// ContentTypeByName определяет MIME type изображения по имени файла
func ContentTypeByName(filename string) string {
	switch filepath.Ext(filename) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
