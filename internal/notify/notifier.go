package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/housemate/internal/models"
)

// Store persists notifications. storage.Store satisfies it.
type Store interface {
	CreateNotifications(ctx context.Context, notifications []*models.Notification) error
}

// Notifier stores a notification for every recipient and publishes one
// event for the whole fan-out.
type Notifier struct {
	store     Store
	publisher Publisher
	now       func() time.Time
}

// NewNotifier creates a notifier. A nil publisher means Nop.
func NewNotifier(store Store, publisher Publisher) *Notifier {
	if publisher == nil {
		publisher = Nop{}
	}
	return &Notifier{store: store, publisher: publisher, now: time.Now}
}

// Notify addresses every group member except the actor. Storage failures
// are returned; publish failures are only logged.
func (n *Notifier) Notify(ctx context.Context, group *models.Group, actorID int64, kind, message string, resourceID int64) error {
	var recipients []int64
	for _, m := range group.Members {
		if m.ID != actorID {
			recipients = append(recipients, m.ID)
		}
	}
	if len(recipients) == 0 {
		return nil
	}

	now := n.now().UTC()
	notifications := make([]*models.Notification, 0, len(recipients))
	for _, id := range recipients {
		notifications = append(notifications, &models.Notification{
			MemberID:   id,
			Type:       kind,
			Message:    message,
			ResourceID: resourceID,
			CreatedAt:  now.Format(time.RFC3339),
		})
	}
	if err := n.store.CreateNotifications(ctx, notifications); err != nil {
		return fmt.Errorf("failed to store notifications: %w", err)
	}

	event := Event{
		Type:       kind,
		GroupID:    group.ID,
		MemberIDs:  recipients,
		ResourceID: resourceID,
		Message:    message,
		At:         now,
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish event", "type", kind, "group_id", group.ID, "error", err)
	}
	return nil
}

// Close releases the publisher.
func (n *Notifier) Close() error {
	return n.publisher.Close()
}
