package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrUniqueViolation : нарушение уникального ограничения (дубликат username/email/тега)
var ErrUniqueViolation = errors.New("запись уже существует")

// translateUniqueViolation подменяет pq-ошибку 23505 на сентинел,
// чтобы сервисный слой не зависел от драйвера
func translateUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrUniqueViolation
	}
	return err
}
