package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MateoKaloshi/MotoLine/internal/app/config"
	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/nats-io/nats.go"
)

const (
	BikeCreatedSubject = "bike.created"
	BikeSoldSubject    = "bike.sold"

	connectWait   = 5 * time.Second
	maxReconnects = 5
	reconnectWait = 2 * time.Second
)

type Publisher struct {
	nc  *nats.Conn
	log logger.Logger
}

func NewPublisher(cfg config.NATSConfig, log logger.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("MotoLine Publisher"),
		nats.Timeout(connectWait),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infof("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warnf("NATS disconnected: %v", err)
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.URL, err)
	}

	return &Publisher{nc: nc, log: log}, nil
}

type soldEventPayload struct {
	BikeID   string  `json:"bike_id"`
	BuyerID  string  `json:"buyer_id"`
	SellerID string  `json:"seller_id"`
	Price    float64 `json:"price"`
}

func (p *Publisher) PublishBikeCreated(ctx context.Context, bike *entity.Bike) error {
	data, err := json.Marshal(bike)
	if err != nil {
		return fmt.Errorf("failed to marshal bike for %s: %w", BikeCreatedSubject, err)
	}
	if err := p.nc.Publish(BikeCreatedSubject, data); err != nil {
		return fmt.Errorf("failed to publish NATS message for %s: %w", BikeCreatedSubject, err)
	}
	return nil
}

func (p *Publisher) PublishBikeSold(ctx context.Context, sale *entity.Sale) error {
	payload := soldEventPayload{
		BikeID:   sale.BikeID,
		BuyerID:  sale.BuyerID,
		SellerID: sale.SellerID,
		Price:    sale.Price,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sale for %s: %w", BikeSoldSubject, err)
	}
	if err := p.nc.Publish(BikeSoldSubject, data); err != nil {
		return fmt.Errorf("failed to publish NATS message for %s: %w", BikeSoldSubject, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.log.Errorf("Error draining NATS connection: %v", err)
		}
		p.nc.Close()
	}
}
