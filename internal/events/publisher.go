package events

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Cargo entry event types
const (
	ShipmentSubmitted = "cargo.shipment_submitted"
	CargoMarkedIn     = "cargo.marked_in"
	CargoMarkedOut    = "cargo.marked_out"
)

// CargoEvent represents a cargo-entry lifecycle event
type CargoEvent struct {
	EventType      string    `json:"event_type"`
	ShipmentID     int64     `json:"shipment_id,omitempty"`
	ShipmentNumber string    `json:"shipment_number,omitempty"`
	CargoID        int       `json:"cargo_id,omitempty"`
	BranchID       int       `json:"branch_id,omitempty"`
	NetTotal       float64   `json:"net_total,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Publisher publishes cargo entry events to NATS
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS and creates a cargo events publisher
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		return nil, fmt.Errorf("NATS_URL not set")
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("cargo-entry-service"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

// PublishShipmentSubmitted publishes a shipment submitted event
func (p *Publisher) PublishShipmentSubmitted(shipmentID int64, shipmentNumber string, branchID int, netTotal float64) error {
	return p.publish(CargoEvent{
		EventType:      ShipmentSubmitted,
		ShipmentID:     shipmentID,
		ShipmentNumber: shipmentNumber,
		BranchID:       branchID,
		NetTotal:       netTotal,
		Timestamp:      time.Now().UTC(),
	})
}

// PublishCargoMarkedIn publishes a cargo marked-in event
func (p *Publisher) PublishCargoMarkedIn(cargoID int) error {
	return p.publish(CargoEvent{
		EventType: CargoMarkedIn,
		CargoID:   cargoID,
		Timestamp: time.Now().UTC(),
	})
}

// PublishCargoMarkedOut publishes a cargo marked-out event
func (p *Publisher) PublishCargoMarkedOut(cargoID int) error {
	return p.publish(CargoEvent{
		EventType: CargoMarkedOut,
		CargoID:   cargoID,
		Timestamp: time.Now().UTC(),
	})
}

func (p *Publisher) publish(event CargoEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(event.EventType, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.EventType, err)
	}
	p.logger.WithField("event_type", event.EventType).Info("Published event")
	return nil
}

// IsConnected returns true if connected to NATS
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
