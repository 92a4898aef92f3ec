package ports

import "context"

// EventProducer : публикация доменных событий (image_uploaded, comment_created)
type EventProducer interface {
	PublishEvent(ctx context.Context, key string, event interface{}) error
	Close() error
}
