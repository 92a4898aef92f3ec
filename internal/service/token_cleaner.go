package service

import (
	"context"
	"log"
	"time"

	"image-sharing-server/internal/ports"
)

// TokenCleaner периодически чистит черный список access-токенов.
// Запускается один раз при старте процесса и живет до отмены контекста.
// Неудачная очистка логируется и не роняет процесс — следующий цикл повторит попытку
type TokenCleaner struct {
	tokenRepository ports.RevokedTokenRepository
	interval        time.Duration
	retention       time.Duration
}

func NewTokenCleaner(tokenRepository ports.RevokedTokenRepository, interval, retention time.Duration) *TokenCleaner {
	return &TokenCleaner{
		tokenRepository: tokenRepository,
		interval:        interval,
		retention:       retention,
	}
}

// Run крутит цикл очистки до отмены контекста
func (c *TokenCleaner) Run(ctx context.Context) {
	log.Printf("[TokenCleaner] запущен: интервал %s, окно хранения %s", c.interval, c.retention)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[TokenCleaner] остановлен")
			return
		case <-ticker.C:
			c.purge(ctx)
		}
	}
}

func (c *TokenCleaner) purge(ctx context.Context) {
	removed, err := c.tokenRepository.Purge(ctx, c.retention)
	if err != nil {
		log.Printf("[TokenCleaner] ошибка очистки черного списка: %v", err)
		return
	}
	log.Printf("[TokenCleaner] черный список очищен, удалено записей: %d", removed)
}
