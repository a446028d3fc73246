package domain

import "time"

// Tenant is the root isolation unit. Every other entity belongs to exactly
// one tenant and is invisible outside it.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Vehicle struct {
	ID       string
	TenantID string
	Plate    string
	Name     string
}
