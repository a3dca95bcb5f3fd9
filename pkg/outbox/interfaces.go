package outbox

import "context"

// Dispatcher hands a claimed message to the downstream transport.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg DispatchedMessage) error
}
