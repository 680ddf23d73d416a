package domain

import "time"

// PaymentKind classifies a payment event handed to the payments collaborator.
type PaymentKind string

const (
	PaymentSale   PaymentKind = "sale"
	PaymentRent   PaymentKind = "rent"
	PaymentRefund PaymentKind = "refund"
)

// PaymentEvent is the fire-and-forget notification emitted after a committed
// lifecycle operation that implies money owed or returned. The payments
// subsystem turns it into a Payment record; this service never does.
type PaymentEvent struct {
	DealID      string      `json:"dealID"`
	RentalID    string      `json:"rentalID,omitempty"`
	Kind        PaymentKind `json:"kind"`
	AmountCents int64       `json:"amountCents"`
	OccurredAt  time.Time   `json:"occurredAt"`
}

// DocType identifies a contract artifact the document collaborator can render.
type DocType string

const (
	DocRentalContract    DocType = "rental_contract"
	DocTransferAct       DocType = "transfer_act"
	DocReturnAct         DocType = "return_act"
	DocBuyout            DocType = "buyout_doc"
	DocEquipmentAppendix DocType = "equipment_appendix"
)
