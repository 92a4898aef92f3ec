package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"image-sharing-server/internal/service"
)

// fakeTokenRepository считает вызовы Purge без testify, чтобы не гадать
// с числом срабатываний тикера
type fakeTokenRepository struct {
	mu     sync.Mutex
	purges int
	err    error
}

func (f *fakeTokenRepository) Add(ctx context.Context, accessToken string) error {
	return nil
}

func (f *fakeTokenRepository) Contains(ctx context.Context, accessToken string) (bool, error) {
	return false, nil
}

func (f *fakeTokenRepository) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purges++
	if f.err != nil {
		return 0, f.err
	}
	return 1, nil
}

func (f *fakeTokenRepository) purgeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.purges
}

// 1. Очистка выполняется циклически
func TestTokenCleaner_RunsPeriodically(t *testing.T) {
	repo := &fakeTokenRepository{}
	cleaner := service.NewTokenCleaner(repo, 10*time.Millisecond, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cleaner.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return repo.purgeCount() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("очистка не остановилась после отмены контекста")
	}
}

// 2. Отмена контекста останавливает цикл до первого срабатывания
func TestTokenCleaner_StopsOnCancel(t *testing.T) {
	repo := &fakeTokenRepository{}
	cleaner := service.NewTokenCleaner(repo, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cleaner.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("очистка не остановилась после отмены контекста")
	}

	assert.Equal(t, 0, repo.purgeCount())
}

// 3. Ошибка очистки не прерывает цикл
func TestTokenCleaner_ContinuesAfterError(t *testing.T) {
	repo := &fakeTokenRepository{err: errors.New("db down")}
	cleaner := service.NewTokenCleaner(repo, 10*time.Millisecond, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cleaner.Run(ctx)

	assert.Eventually(t, func() bool {
		return repo.purgeCount() >= 3
	}, time.Second, 5*time.Millisecond)
}
