package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/workshop-analytics/internal/analytics"
)

// ReportSummary is the compact form of a report published to the broker.
type ReportSummary struct {
	WorkshopID       string    `json:"workshop_id"`
	PeriodStart      time.Time `json:"period_start"`
	PeriodEnd        time.Time `json:"period_end"`
	TechnicianID     string    `json:"technician_id,omitempty"`
	TotalRevenue     float64   `json:"total_revenue"`
	CompletedCount   int       `json:"completed_count"`
	TargetPercentage float64   `json:"target_percentage"`
	InventoryValue   float64   `json:"inventory_value"`
	ComputedAt       time.Time `json:"computed_at"`
}

// Summarize extracts the published fields of a report.
func Summarize(workshopID string, r *analytics.Report) ReportSummary {
	return ReportSummary{
		WorkshopID:       workshopID,
		PeriodStart:      r.Period.Start,
		PeriodEnd:        r.Period.End,
		TechnicianID:     r.TechnicianID,
		TotalRevenue:     r.TotalRevenue,
		CompletedCount:   r.CompletedCount,
		TargetPercentage: r.TargetPercentage,
		InventoryValue:   r.InventoryValue,
		ComputedAt:       r.GeneratedAt,
	}
}

// MQTTPublisher publishes report summaries to an MQTT broker.
type MQTTPublisher struct {
	client  mqtt.Client
	prefix  string
	timeout time.Duration
}

// NewMQTTPublisher connects to broker and returns a publisher rooted at prefix.
func NewMQTTPublisher(broker, clientID, prefix string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).Warn("MQTT connection lost")
		})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(15 * time.Second) {
		return nil, fmt.Errorf("connecting to %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", broker, err)
	}
	return newPublisher(client, prefix), nil
}

func newPublisher(client mqtt.Client, prefix string) *MQTTPublisher {
	return &MQTTPublisher{client: client, prefix: prefix, timeout: 5 * time.Second}
}

// Topic returns the topic a workshop's summaries are published to.
func (p *MQTTPublisher) Topic(workshopID string) string {
	return p.prefix + "/" + workshopID + "/analytics"
}

// PublishReport publishes a summary of r with QoS 1, not retained.
func (p *MQTTPublisher) PublishReport(ctx context.Context, workshopID string, r *analytics.Report) error {
	if p == nil || p.client == nil {
		return nil
	}
	payload, err := json.Marshal(Summarize(workshopID, r))
	if err != nil {
		return err
	}

	token := p.client.Publish(p.Topic(workshopID), 1, false, payload)
	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timeout):
		return errors.New("publish timed out")
	}
	return token.Error()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	p.client.Disconnect(250)
}
