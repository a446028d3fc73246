package store

import (
	"time"

	"github.com/shopspring/decimal"
)

type CostRateSnapshot struct {
	ID           string
	TenantID     string
	CostCenterID string
	// Name and kind come from a join against cost_centers on reads; both
	// are ignored on writes.
	CostCenterName string
	CostCenterKind string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	Basis          string
	TotalCost      decimal.Decimal
	TotalUnits     decimal.Decimal
	Rate           decimal.Decimal
	Status         string
	GeneratedAt    time.Time
}

type OrderCostBreakdown struct {
	ID            string
	TenantID      string
	OrderID       string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	VehicleAlloc  decimal.Decimal
	OverheadAlloc decimal.Decimal
	DirectCost    decimal.Decimal
	TotalCost     decimal.Decimal
	Revenue       decimal.Decimal
	Profit        decimal.Decimal
	Margin        decimal.Decimal
	Status        string
	GeneratedAt   time.Time
}
