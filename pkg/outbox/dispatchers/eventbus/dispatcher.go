package eventbus

import (
	"context"

	"github.com/exec-platform/asset-management/pkg/eventbus"
	"github.com/exec-platform/asset-management/pkg/outbox"
)

// Dispatcher bridges relayed outbox messages onto the in-process event
// bus. Subscribers receive (meta, topic, payload) and may return an error
// to trigger relay retries.
type Dispatcher struct {
	bus eventbus.EventBusWithError
}

func New(bus eventbus.EventBusWithError) *Dispatcher {
	return &Dispatcher{bus: bus}
}

func (d *Dispatcher) Dispatch(_ context.Context, msg outbox.DispatchedMessage) error {
	return d.bus.PublishE(&msg.Meta, msg.Meta.Topic, msg.Payload)
}
