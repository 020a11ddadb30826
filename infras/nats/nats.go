package nats

//go:generate go run go.uber.org/mock/mockgen -source=./nats.go -destination=./mocks/nats_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	natsGo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"trainboard/config"
)

// Publisher pushes domain events onto NATS subjects. Delivery is
// fire-and-forget, consumers such as the notification worker pick the
// messages up asynchronously.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

type publisherImpl struct {
	conn *natsGo.Conn
}

func New(config *config.Config) Publisher {
	conn, err := natsGo.Connect(
		config.Broker.NATS.URL,
		natsGo.Name(config.App.Name),
		natsGo.MaxReconnects(-1),
	)
	if err != nil {
		log.Fatal().Err(err).Str("url", config.Broker.NATS.URL).Msg("Failed to connect to NATS")
	}

	log.Info().Str("url", config.Broker.NATS.URL).Msg("Connected to NATS")

	return &publisherImpl{
		conn: conn,
	}
}

func (p *publisherImpl) Publish(_ context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to marshal NATS payload")

		return fmt.Errorf("failed to marshal NATS payload: %w", err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to publish message to NATS")

		return fmt.Errorf("failed to publish message to NATS: %w", err)
	}

	return nil
}
