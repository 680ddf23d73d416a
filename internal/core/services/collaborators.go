package services

import (
	"context"
	"log/slog"

	"github.com/renteq/rentalcrm/internal/core/domain"
	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"
)

// The payments, documents and logistics subsystems are deployed separately.
// These implementations are the in-process stand-ins: they log the event so
// the outbox tail can be replayed, and succeed unconditionally.

type logPaymentNotifier struct {
	logger *slog.Logger
}

// NewLogPaymentNotifier creates a PaymentNotifier that records events in the log.
func NewLogPaymentNotifier(logger *slog.Logger) portssvc.PaymentNotifier {
	return &logPaymentNotifier{logger: logger}
}

func (n *logPaymentNotifier) NotifyPayment(_ context.Context, event domain.PaymentEvent) error {
	n.logger.Info("Payment event",
		slog.String("deal_id", event.DealID),
		slog.String("rental_id", event.RentalID),
		slog.String("kind", string(event.Kind)),
		slog.Int64("amount_cents", event.AmountCents),
	)
	return nil
}

type logDocumentRequester struct {
	logger *slog.Logger
}

// NewLogDocumentRequester creates a DocumentRequester that records requests in the log.
func NewLogDocumentRequester(logger *slog.Logger) portssvc.DocumentRequester {
	return &logDocumentRequester{logger: logger}
}

func (r *logDocumentRequester) RequestDocument(_ context.Context, dealID string, docType domain.DocType) error {
	r.logger.Info("Document requested", slog.String("deal_id", dealID), slog.String("doc_type", string(docType)))
	return nil
}

type logDeliveryScheduler struct {
	logger *slog.Logger
}

// NewLogDeliveryScheduler creates a DeliveryScheduler that records requests in the log.
func NewLogDeliveryScheduler(logger *slog.Logger) portssvc.DeliveryScheduler {
	return &logDeliveryScheduler{logger: logger}
}

func (d *logDeliveryScheduler) ScheduleDelivery(_ context.Context, rentalID string) error {
	d.logger.Info("Delivery task requested", slog.String("rental_id", rentalID))
	return nil
}

func (d *logDeliveryScheduler) SchedulePickup(_ context.Context, rentalID string) error {
	d.logger.Info("Pickup task requested", slog.String("rental_id", rentalID))
	return nil
}
