package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/ytkg/orders/internal/domain"
)

// KafkaConfirmationPublisher emits confirmed-memo events for downstream
// analytics.
type KafkaConfirmationPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaConfirmationPublisher(writer *kafka.Writer) *KafkaConfirmationPublisher {
	return &KafkaConfirmationPublisher{Writer: writer}
}

func (p *KafkaConfirmationPublisher) PublishConfirmation(ctx context.Context, event domain.ConfirmationEvent) error {
	payload, _ := json.Marshal(event)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ConfirmedAt.UnixMilli(), 10)),
		Value: payload,
	})
}
