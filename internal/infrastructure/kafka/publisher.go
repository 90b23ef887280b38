package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TelemetryTopic = "telemetry-events"
	WalletTopic    = "wallet-events"
)

// TelemetryEvent mirrors an accepted GPS sample onto the durable event
// stream for downstream consumers (analytics, archival).
type TelemetryEvent struct {
	DeviceID  string   `json:"device_id"`
	RecordID  string   `json:"record_id"`
	Ts        string   `json:"ts"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Speed     *float64 `json:"speed"`
	Heading   *float64 `json:"heading"`
	Status    string   `json:"status"`
}

type WalletEvent struct {
	WalletUserID string `json:"wallet_user_id"`
	Direction    string `json:"direction"`
	Amount       string `json:"amount"`
	EntryID      string `json:"entry_id"`
}

type EventPublisher struct {
	writer *kafka.Writer
}

func NewEventPublisher(brokers []string) *EventPublisher {
	return &EventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *EventPublisher) publish(topic, key string, event interface{}) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *EventPublisher) PublishTelemetry(event TelemetryEvent) error {
	return p.publish(TelemetryTopic, event.DeviceID, event)
}

func (p *EventPublisher) PublishWallet(event WalletEvent) error {
	return p.publish(WalletTopic, event.WalletUserID, event)
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

// FormatRecordID renders record ids as text for the event payload.
func FormatRecordID(id int64) string {
	return strconv.FormatInt(id, 10)
}
