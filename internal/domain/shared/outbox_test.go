package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	BaseDomainEvent
}

func newTestEvent() *testEvent {
	return &testEvent{
		BaseDomainEvent: NewBaseDomainEvent("TestEvent", "Order", "order-1", MustParseSellerID("ABC1234")),
	}
}

func TestNewOutboxEntry(t *testing.T) {
	event := newTestEvent()
	entry := NewOutboxEntry(event, []byte(`{}`), 0)

	assert.Equal(t, event.EventID(), entry.EventID)
	assert.Equal(t, "TestEvent", entry.EventType)
	assert.Equal(t, "order-1", entry.AggregateID)
	assert.Equal(t, "ABC1234", entry.SellerID.String())
	assert.Equal(t, OutboxStatusPending, entry.Status)
	assert.Equal(t, DefaultMaxRetries, entry.MaxRetries)
}

func TestOutboxEntry_MarkFailed(t *testing.T) {
	t.Run("schedules retry with backoff", func(t *testing.T) {
		entry := NewOutboxEntry(newTestEvent(), nil, 3)
		require.NoError(t, entry.MarkProcessing())

		entry.MarkFailed("gateway unreachable")

		assert.Equal(t, OutboxStatusFailed, entry.Status)
		assert.Equal(t, 1, entry.RetryCount)
		require.NotNil(t, entry.NextRetryAt)
		assert.True(t, entry.NextRetryAt.After(time.Now()))
		assert.True(t, entry.CanRetry())
	})

	t.Run("dead letters after max retries", func(t *testing.T) {
		entry := NewOutboxEntry(newTestEvent(), nil, 2)
		entry.MarkFailed("first")
		entry.MarkFailed("second")

		assert.True(t, entry.IsDead())
		assert.Nil(t, entry.NextRetryAt)
		assert.Equal(t, "second", entry.LastError)
		assert.False(t, entry.CanRetry())
	})
}

func TestOutboxEntry_MarkProcessing(t *testing.T) {
	entry := NewOutboxEntry(newTestEvent(), nil, 0)
	entry.MarkSent()

	assert.Error(t, entry.MarkProcessing())
	assert.NotNil(t, entry.ProcessedAt)
}
