// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer around them.
package queue

// Queue names. Both are durable; the ledger consumer drains both.
const (
	ContractSignedQueue  = "contract.signed"
	PaymentRecordedQueue = "payment.recorded"
)

// ContractSignedEvent is published when a new lease contract is created.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type ContractSignedEvent struct {
	EventID    string `json:"event_id"`
	ContractID uint64 `json:"contract_id"`
	TenantID   uint64 `json:"tenant_id"`
	RoomID     uint64 `json:"room_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date,omitempty"`
	RentCents  int64  `json:"rent_cents"`
	SignedAt   string `json:"signed_at"`
}

// PaymentRecordedEvent is published when a rent payment is recorded.
type PaymentRecordedEvent struct {
	EventID     string `json:"event_id"`
	PaymentID   uint64 `json:"payment_id"`
	ContractID  uint64 `json:"contract_id"`
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method,omitempty"`
	RecordedAt  string `json:"recorded_at"`
}
