package services

import (
	"context"

	"github.com/renteq/rentalcrm/internal/core/domain"
)

// The interfaces below are the boundaries to subsystems this service does not
// own. They are invoked only after a successful commit; failures are logged
// and never surfaced as the operation's result.

// PaymentNotifier hands a payment event to the payments subsystem.
type PaymentNotifier interface {
	NotifyPayment(ctx context.Context, event domain.PaymentEvent) error
}

// AuditRecorder records who did what to which entity.
type AuditRecorder interface {
	Record(ctx context.Context, entityType, entityID, action string, metadata map[string]string) error
}

// DocumentRequester asks the document subsystem to render a contract artifact.
type DocumentRequester interface {
	RequestDocument(ctx context.Context, dealID string, docType domain.DocType) error
}

// DeliveryScheduler asks the logistics subsystem to plan a physical move.
type DeliveryScheduler interface {
	ScheduleDelivery(ctx context.Context, rentalID string) error
	SchedulePickup(ctx context.Context, rentalID string) error
}
