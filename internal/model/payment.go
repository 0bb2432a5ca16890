package model

// Payment records a single rent payment against a contract, as stored in
// the `payments` table.  Payments are append-only: they can be created
// and deleted but never updated.  Amounts are integer cents so that sums
// stay exact.
//
// Fields:
//  ID         – primary key identifier.
//  ContractID – contract the payment belongs to.
//  AmountCents – paid amount in cents (always positive).
//  PaidAt     – server-assigned payment timestamp (DB format, UTC).
//  Method     – free-form payment method, e.g. "bank" (nullable).
//  Note       – free-form note (nullable).
type Payment struct {
	ID          uint64  // payments.id
	ContractID  uint64  // payments.contract_id
	AmountCents int64   // payments.amount_cents
	PaidAt      string  // payments.paid_at
	Method      *string // payments.method (nullable)
	Note        *string // payments.note (nullable)
}
