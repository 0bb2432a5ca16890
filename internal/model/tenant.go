package model

// Tenant represents a person renting (or applying to rent) a room, as
// stored in the `tenants` table.  Contact fields are optional; only the
// name is required at onboarding.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – full name of the tenant.
//  Email     – contact email (nullable).
//  Phone     – contact phone number (nullable).
//  CreatedAt – row creation timestamp (DB format, UTC).
type Tenant struct {
	ID        uint64  // tenants.id
	Name      string  // tenants.name
	Email     *string // tenants.email (nullable)
	Phone     *string // tenants.phone (nullable)
	CreatedAt string  // tenants.created_at
}
