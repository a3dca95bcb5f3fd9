package eventbus_test

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exec-platform/asset-management/pkg/eventbus"
)

type testEvent struct {
	Name string
}

func newBus() eventbus.EventBusWithError {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return eventbus.NewEventPublisher(logger)
}

func TestPublish_DeliversToMatchingSubscriber(t *testing.T) {
	bus := newBus()

	var received *testEvent
	bus.Subscribe(func(e *testEvent) {
		received = e
	})

	bus.Publish(&testEvent{Name: "hello"})
	require.NotNil(t, received)
	assert.Equal(t, "hello", received.Name)
}

func TestPublish_SkipsNonMatchingSubscriber(t *testing.T) {
	bus := newBus()

	called := false
	bus.Subscribe(func(e *testEvent) {
		called = true
	})

	bus.Publish("a string event")
	assert.False(t, called)
}

func TestPublishE_NoSubscribers(t *testing.T) {
	bus := newBus()
	err := bus.PublishE(&testEvent{})
	require.ErrorIs(t, err, eventbus.ErrNoSubscribers)
}

func TestPublishE_PropagatesHandlerError(t *testing.T) {
	bus := newBus()
	boom := errors.New("boom")
	bus.Subscribe(func(e *testEvent) error {
		return boom
	})

	err := bus.PublishE(&testEvent{})
	require.ErrorIs(t, err, boom)
}

func TestPublishE_InvalidHandlerReturn(t *testing.T) {
	bus := newBus()
	bus.Subscribe(func(e *testEvent) string {
		return "not an error"
	})

	err := bus.PublishE(&testEvent{})
	require.ErrorIs(t, err, eventbus.ErrInvalidHandlerReturn)
}

func TestUnsubscribe(t *testing.T) {
	bus := newBus()

	handler := func(e *testEvent) {}
	bus.Subscribe(handler)
	require.Equal(t, 1, bus.SubscribersCount())

	bus.Unsubscribe(handler)
	assert.Equal(t, 0, bus.SubscribersCount())
}

func TestPublish_RecoversFromPanickingHandler(t *testing.T) {
	bus := newBus()

	bus.Subscribe(func(e *testEvent) {
		panic("handler exploded")
	})

	assert.NotPanics(t, func() {
		bus.Publish(&testEvent{})
	})
}
