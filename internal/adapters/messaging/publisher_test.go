package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
)

type mockConn struct {
	publishFunc func(subj string, data []byte) error
	subject     string
	data        []byte
	drained     bool
}

func (m *mockConn) Publish(subj string, data []byte) error {
	m.subject = subj
	m.data = data
	if m.publishFunc != nil {
		return m.publishFunc(subj, data)
	}
	return nil
}

func (m *mockConn) Drain() error {
	m.drained = true
	return nil
}

func TestPublishBallotRecorded(t *testing.T) {
	ballot := &domain.Ballot{
		ID:          uuid.New(),
		CandidateID: "C9",
		CastAt:      time.Date(2026, 10, 4, 12, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name          string
		publishError  error
		expectedError string
	}{
		{name: "successful_publish"},
		{
			name:          "publish_error",
			publishError:  errors.New("nats: connection closed"),
			expectedError: "failed to publish ballot event: nats: connection closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &mockConn{
				publishFunc: func(string, []byte) error { return tt.publishError },
			}
			publisher := NewPublisher(conn, "ballot.recorded", zaptest.NewLogger(t))

			err := publisher.PublishBallotRecorded(context.Background(), ballot)
			if tt.expectedError != "" {
				require.EqualError(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, "ballot.recorded", conn.subject)

			var msg map[string]any
			require.NoError(t, json.Unmarshal(conn.data, &msg))
			assert.Len(t, msg, 3)
			assert.Equal(t, ballot.ID.String(), msg["ballot_id"])
			assert.Equal(t, "C9", msg["candidate_id"])
			assert.Equal(t, "2026-10-04T12:00:00Z", msg["cast_at"])
		})
	}
}

func TestPublishBallotRecordedCancelledContext(t *testing.T) {
	conn := &mockConn{}
	publisher := NewPublisher(conn, "ballot.recorded", zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.PublishBallotRecorded(ctx, &domain.Ballot{ID: uuid.New()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, conn.data)
}

func TestClose(t *testing.T) {
	conn := &mockConn{}
	NewPublisher(conn, "ballot.recorded", zaptest.NewLogger(t)).Close()
	assert.True(t, conn.drained)
}
