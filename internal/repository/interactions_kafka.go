package repository

import (
	"context"
	"fmt"

	"PredictPulse/internal/domain/models"
	"PredictPulse/pkg/kafka"
)

// KafkaInteractionPublisher streams preference interactions to the
// learning pipeline, keyed by user so a consumer sees each user's
// actions in order.
type KafkaInteractionPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaInteractionPublisher(brokers []string, topic string) (*KafkaInteractionPublisher, error) {
	producer, err := kafka.NewProducer(
		kafka.WithBrokers(brokers),
		kafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("interaction producer: %w", err)
	}
	return &KafkaInteractionPublisher{producer: producer, topic: topic}, nil
}

func (p *KafkaInteractionPublisher) Publish(ctx context.Context, in models.Interaction) error {
	return p.producer.Publish(ctx, p.topic, []byte(in.UserID), in)
}

func (p *KafkaInteractionPublisher) Close() error {
	return p.producer.Close()
}
