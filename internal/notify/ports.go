// Package notify carries notifications out of the system. Delivery is fire
// and forget: callers log a failed Notify and move on, the error never
// reaches core financial logic.
package notify

import "context"

// Sink accepts a notification addressed to an owner.
type Sink interface {
	Notify(ctx context.Context, owner, subject, body string) error
}
