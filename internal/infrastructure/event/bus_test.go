package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resto/backend/internal/domain/shared"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, uuid.New(), "Test"),
	}
}

type recordingHandler struct {
	eventTypes []string
	received   []shared.DomainEvent
	err        error
	panics     bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	if h.err != nil {
		return h.err
	}
	h.received = append(h.received, event)
	return nil
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers events to subscribed handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"test.created"}}
		bus.Subscribe(handler)

		err := bus.Publish(ctx, newTestEvent("test.created"))

		require.NoError(t, err)
		require.Len(t, handler.received, 1)
		assert.Equal(t, "test.created", handler.received[0].EventType())
	})

	t.Run("does not deliver unrelated event types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"test.created"}}
		bus.Subscribe(handler)

		err := bus.Publish(ctx, newTestEvent("test.deleted"))

		require.NoError(t, err)
		assert.Empty(t, handler.received)
	})

	t.Run("explicit event types override the handler's own", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"test.created"}}
		bus.Subscribe(handler, "test.deleted")

		require.NoError(t, bus.Publish(ctx, newTestEvent("test.deleted")))
		assert.Len(t, handler.received, 1)
	})

	t.Run("handler error does not stop other handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{eventTypes: []string{"test.created"}, err: errors.New("boom")}
		healthy := &recordingHandler{eventTypes: []string{"test.created"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		err := bus.Publish(ctx, newTestEvent("test.created"))

		require.NoError(t, err)
		assert.Len(t, healthy.received, 1)
	})

	t.Run("handler panic is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{eventTypes: []string{"test.created"}, panics: true}
		healthy := &recordingHandler{eventTypes: []string{"test.created"}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NotPanics(t, func() {
			_ = bus.Publish(ctx, newTestEvent("test.created"))
		})
		assert.Len(t, healthy.received, 1)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"test.created"}}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("test.created")))
		assert.Empty(t, handler.received)
	})
}

func TestHandlerRegistry_Wildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcard := &recordingHandler{}
	registry.Register(wildcard)

	handlers := registry.GetHandlers("any.event")
	require.Len(t, handlers, 1)

	registry.Unregister(wildcard)
	assert.Empty(t, registry.GetHandlers("any.event"))
}
