package producer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"github.com/sofiakaramia/Data-Storm/internal/domain/entities"
	"github.com/sofiakaramia/Data-Storm/internal/domain/ports"
	"github.com/sofiakaramia/Data-Storm/internal/pkg/logger"
)

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   logger.Logger
}

func NewKafkaPublisher(broker, topic string, requiredAcks int16, maxRetries int) (ports.Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.RequiredAcks(requiredAcks)
	config.Producer.Retry.Max = maxRetries
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer([]string{broker}, config)
	if err != nil {
		return nil, err
	}

	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.New("info", "development").WithField("component", "kafka_publisher"),
	}, nil
}

func (k *KafkaPublisher) PublishBatch(ctx context.Context, observations []*entities.Observation) error {
	if len(observations) == 0 {
		return nil
	}

	messages := make([]*sarama.ProducerMessage, 0, len(observations))
	for _, obs := range observations {
		data, err := json.Marshal(obs)
		if err != nil {
			return err
		}

		messages = append(messages, &sarama.ProducerMessage{
			Topic: k.topic,
			Key:   sarama.StringEncoder(obs.City),
			Value: sarama.ByteEncoder(data),
		})
	}

	if err := k.producer.SendMessages(messages); err != nil {
		k.logger.Error("failed to publish batch", err)
		return err
	}

	k.logger.Debugf("Published %d observations to topic %s", len(messages), k.topic)
	return nil
}

func (k *KafkaPublisher) HealthCheck(ctx context.Context) error {
	if k.producer == nil {
		return errors.New("kafka producer is nil")
	}

	msg := &sarama.ProducerMessage{
		Topic: "__healthcheck",
		Value: sarama.ByteEncoder([]byte("ping")),
	}

	_, _, err := k.producer.SendMessage(msg)
	return err
}

func (k *KafkaPublisher) Close() error {
	if k.producer == nil {
		return nil
	}
	return k.producer.Close()
}
