package model

// Contract is a lease binding one tenant to one room for a date interval,
// as stored in the `contracts` table.  The interval is inclusive of both
// ends; a nil EndDate means the lease is open-ended.  Among the contracts
// of a single room, the ones with Active=true must have pairwise
// non-overlapping intervals.
// NOTE: Date strings use the DB format "2006-01-02" (UTC).
type Contract struct {
	ID        uint64  // contracts.id
	TenantID  uint64  // contracts.tenant_id
	RoomID    uint64  // contracts.room_id
	StartDate string  // contracts.start_date ("YYYY-MM-DD")
	EndDate   *string // contracts.end_date (nullable, "YYYY-MM-DD")
	RentCents int64   // contracts.rent_cents (monthly rent in cents)
	Active    bool    // contracts.active
	CreatedAt string  // contracts.created_at
	UpdatedAt string  // contracts.updated_at
}
