package store

import (
	"time"

	"github.com/shopspring/decimal"
)

type CostCenter struct {
	ID        string
	TenantID  string
	Name      string
	Kind      string
	VehicleID string
	Driver    string
	Active    bool
}

type CostPosting struct {
	ID           string
	TenantID     string
	CostCenterID string
	Item         string
	Amount       decimal.Decimal
	PeriodStart  time.Time
	PeriodEnd    time.Time
	CreatedAt    time.Time
}

type TransportOrder struct {
	ID          string
	TenantID    string
	OrderDate   time.Time
	Origin      string
	Destination string
	DistanceKM  decimal.Decimal
	Revenue     decimal.Decimal
	VehicleID   string
	Status      string
}
