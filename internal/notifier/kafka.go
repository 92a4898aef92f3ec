package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"image-sharing-server/config"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer публикует доменные события (image_uploaded, comment_created).
// Публикация идет вне пути запроса, ошибка доставки логируется вызывающей стороной
type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(cfg *config.KafkaConfig) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaProducer{writer: writer}
}

func (p *KafkaProducer) PublishEvent(ctx context.Context, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: ошибка сериализации события: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("kafka: не удалось опубликовать событие: %w", err)
	}

	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
