// Package events replays a generated dataset onto Kafka so event-driven
// pipelines can be demoed against a full synthetic year of orders.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jogardn/shopsim/pkg/models"
)

const (
	OrderCreatedTopic = "order.created"

	logEvery = 1000
)

// OrderCreatedEvent mirrors one generated order. OrderDate is the simulated
// calendar date; EventTime is when the replay published it.
type OrderCreatedEvent struct {
	EventID       string    `json:"event_id"`
	RunID         string    `json:"run_id"`
	OrderID       int       `json:"order_id"`
	CustomerID    int       `json:"customer_id"`
	OrderDate     string    `json:"order_date"`
	Status        string    `json:"order_status"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	ShippingState string    `json:"shipping_state"`
	UTMSource     string    `json:"utm_source"`
	UTMCampaign   string    `json:"utm_campaign"`
	EventTime     time.Time `json:"event_time"`
}

type Producer struct {
	producer sarama.SyncProducer
	logger   *logrus.Logger
}

func NewProducer(brokers string, logger *logrus.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_6_0_0

	producer, err := sarama.NewSyncProducer([]string{brokers}, config)
	if err != nil {
		return nil, err
	}

	return &Producer{
		producer: producer,
		logger:   logger,
	}, nil
}

// PublishDataset streams every order of the dataset as an order.created
// event, keyed by order ID so downstream consumers see a stable partition
// per order.
func (p *Producer) PublishDataset(ds *models.Dataset) error {
	for i, order := range ds.Orders {
		if err := p.publishOrder(ds.RunID, order); err != nil {
			return fmt.Errorf("publish order %d: %w", order.ID, err)
		}
		if (i+1)%logEvery == 0 {
			p.logger.WithFields(logrus.Fields{
				"published": i + 1,
				"total":     len(ds.Orders),
			}).Info("Replaying orders to Kafka")
		}
	}

	p.logger.WithFields(logrus.Fields{
		"topic":  OrderCreatedTopic,
		"orders": len(ds.Orders),
		"run_id": ds.RunID,
	}).Info("Dataset replay complete")
	return nil
}

func (p *Producer) publishOrder(runID string, order models.Order) error {
	event := OrderCreatedEvent{
		EventID:       uuid.New().String(),
		RunID:         runID,
		OrderID:       order.ID,
		CustomerID:    order.CustomerID,
		OrderDate:     order.Date.Format("2006-01-02"),
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		ShippingState: order.ShippingState,
		UTMSource:     order.UTMSource,
		UTMCampaign:   order.UTMCampaign,
		EventTime:     time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: OrderCreatedTopic,
		Key:   sarama.StringEncoder(fmt.Sprintf("%d", order.ID)),
		Value: sarama.ByteEncoder(data),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		p.logger.WithError(err).WithField("order_id", order.ID).Error("Failed to send message to Kafka")
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
