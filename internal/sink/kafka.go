package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"gridsynth/internal/config"
	"gridsynth/internal/model"
)

// KafkaPublisher delivers generated records to a Kafka topic as JSON,
// keyed by node so a meter's readings stay in one partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *slog.Logger
}

func NewKafkaPublisher(cfg config.KafkaConfig, log *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
		log: log.With(slog.String("component", "kafka-sink")),
	}
}

const kafkaBatchSize = 1000

// Publish writes all points to the topic in batches.
func (p *KafkaPublisher) Publish(ctx context.Context, points []model.EnergyDataPoint) error {
	for start := 0; start < len(points); start += kafkaBatchSize {
		end := start + kafkaBatchSize
		if end > len(points) {
			end = len(points)
		}

		msgs, err := buildMessages(points[start:end])
		if err != nil {
			return err
		}
		if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
			return fmt.Errorf("writing to kafka: %w", err)
		}
		p.log.Info("published batch", "count", len(msgs))
	}
	return nil
}

func buildMessages(points []model.EnergyDataPoint) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(points))
	for _, pt := range points {
		value, err := json.Marshal(pt)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", pt.DataID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(pt.NodeID),
			Value: value,
		})
	}
	return msgs, nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
