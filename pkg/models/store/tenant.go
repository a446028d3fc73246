package store

import "time"

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
