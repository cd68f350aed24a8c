package notify

import "context"

// Notifier delivers a gate outcome to an external channel.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
