package model

// Room is a rentable unit as stored in the `rooms` table.  Rooms live
// independently of tenants; contracts bind the two together.  Amenities
// are kept as a comma-separated string in the database and exposed as a
// slice here.
//
// Fields:
//  ID         – primary key identifier.
//  Number     – room number or label (e.g. "101", "2B").
//  Floor      – floor label (nullable).
//  Capacity   – how many people the room sleeps.
//  PriceCents – advertised monthly price in cents (0 = unset).
//  Amenities  – amenity labels (wifi, tv, ...).
//  Active     – whether the room is offered for rent.
type Room struct {
	ID         uint64   // rooms.id
	Number     string   // rooms.number
	Floor      *string  // rooms.floor (nullable)
	Capacity   int      // rooms.capacity
	PriceCents int64    // rooms.price_cents
	Amenities  []string // rooms.amenities (comma-separated in DB)
	Active     bool     // rooms.active
}
