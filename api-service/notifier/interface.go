package notifier

import (
	"context"

	"github.com/arunvm123/bookingportal/api-service/model"
)

// Publisher hands booking notifications to the notification service. A
// failed publish never undoes the booking change that triggered it.
type Publisher interface {
	Publish(ctx context.Context, req model.NotificationRequest) error
	Close() error
}
