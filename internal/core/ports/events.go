package ports

import (
	"context"
)

// Routing keys published on the billing events exchange.
const (
	EventChallansGenerated = "challans.generated"
	EventChallanPaid       = "challan.paid"
)

// EventPublisher delivers billing events to downstream consumers.
// Implementations must be safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
