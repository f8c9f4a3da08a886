package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

// conn is the part of *nats.Conn the publisher needs.
type conn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

type Publisher struct {
	conn    conn
	subject string
	logger  *zap.Logger
}

var _ ports.BallotPublisher = (*Publisher)(nil)

func Connect(url, subject string, logger *zap.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("anonballot"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("disconnected from NATS", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("connected to NATS", zap.String("url", url), zap.String("subject", subject))
	return NewPublisher(nc, subject, logger), nil
}

func NewPublisher(c conn, subject string, logger *zap.Logger) *Publisher {
	return &Publisher{conn: c, subject: subject, logger: logger}
}

// BallotRecordedMessage is the event payload. It carries only what the
// ballot box itself stores.
type BallotRecordedMessage struct {
	BallotID    string    `json:"ballot_id"`
	CandidateID string    `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
}

func (p *Publisher) PublishBallotRecorded(ctx context.Context, ballot *domain.Ballot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(BallotRecordedMessage{
		BallotID:    ballot.ID.String(),
		CandidateID: ballot.CandidateID,
		CastAt:      ballot.CastAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal ballot event: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish ballot event: %w", err)
	}

	p.logger.Debug("ballot event published", zap.String("ballot_id", ballot.ID.String()))
	return nil
}

func (p *Publisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("failed to drain NATS connection", zap.Error(err))
		return
	}
	p.logger.Info("NATS connection closed")
}
