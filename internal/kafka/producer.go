package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/segmentio/kafka-go"

	"train-ticketing/internal/models"
)

// Producer streams domain events. One writer per topic, created lazily.
type Producer struct {
	brokers []string
	topics  Topics

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

type Topics struct {
	OrderConfirmation string
	JourneyCreated    string
}

func NewProducer(brokers []string, topics Topics) *Producer {
	return &Producer{
		brokers: brokers,
		topics:  topics,
		writers: make(map[string]*kafka.Writer),
	}
}

func (p *Producer) writer(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()
	w, ok := p.writers[topic]
	if !ok {
		w = kafka.NewWriter(kafka.WriterConfig{
			Brokers: p.brokers,
			Topic:   topic,
		})
		p.writers[topic] = w
	}
	return w
}

func (p *Producer) publish(topic, key string, payload interface{}) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer(topic).WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(key),
			Value: value,
		},
	)
}

// PublishOrderConfirmation hands (email, order_id) to the notification
// worker after an order commits.
func (p *Producer) PublishOrderConfirmation(confirmation models.OrderConfirmation) error {
	return p.publish(p.topics.OrderConfirmation, confirmation.OrderID, confirmation)
}

// PublishJourneyCreated streams a newly scheduled journey.
func (p *Producer) PublishJourneyCreated(journey models.Journey) error {
	return p.publish(p.topics.JourneyCreated, strconv.FormatInt(journey.ID, 10), journey)
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for _, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.writers = make(map[string]*kafka.Writer)
	return firstErr
}
