package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SchemaVersion identifies the shape of persisted calculation output.
// Incremented on any breaking field change.
const SchemaVersion = 1

type SnapshotStatus string

const (
	SnapshotOK SnapshotStatus = "OK"
	// SnapshotMissingActivity marks a KM/HOUR/TRIP basis center with zero
	// units in the period. The snapshot is still produced and persisted.
	SnapshotMissingActivity SnapshotStatus = "MISSING_ACTIVITY"
)

type BreakdownStatus string

const (
	BreakdownOK BreakdownStatus = "OK"
	// BreakdownMissingRate marks an order whose assigned vehicle has no
	// usable vehicle-center rate. The breakdown is still produced with a
	// zero vehicle allocation.
	BreakdownMissingRate BreakdownStatus = "MISSING_RATE"
)

// CostRateSnapshot is the persisted per-unit rate of one cost center for
// one period. Recalculation replaces prior snapshots for the same tenant
// and period, never appends.
type CostRateSnapshot struct {
	ID             string
	TenantID       string
	CostCenterID   string
	CostCenterName string
	CostCenterKind CostCenterKind
	Period         Period
	Basis          BasisUnit
	TotalCost      decimal.Decimal
	TotalUnits     decimal.Decimal
	Rate           decimal.Decimal
	Status         SnapshotStatus
	GeneratedAt    time.Time
}

// OrderCostBreakdown is the persisted cost/profit allocation of a single
// order for one period. Same replace-existing lifecycle as snapshots.
type OrderCostBreakdown struct {
	ID            string
	TenantID      string
	OrderID       string
	Period        Period
	VehicleAlloc  decimal.Decimal
	OverheadAlloc decimal.Decimal
	DirectCost    decimal.Decimal
	TotalCost     decimal.Decimal
	Revenue       decimal.Decimal
	Profit        decimal.Decimal
	Margin        decimal.Decimal
	Status        BreakdownStatus
	GeneratedAt   time.Time
}

type CalculationMeta struct {
	TenantID      string
	Period        Period
	GeneratedAt   time.Time
	SchemaVersion int
	EngineVersion string
}

type CalculationSummary struct {
	TotalCost       decimal.Decimal
	TotalRevenue    decimal.Decimal
	TotalProfit     decimal.Decimal
	AverageMargin   decimal.Decimal
	SnapshotCount   int
	BreakdownCount  int
	OrderCount      int
	MissingActivity int
	MissingRate     int
}

// CalculationResult is the full output of one engine run for a tenant and
// period.
type CalculationResult struct {
	Meta       CalculationMeta
	Snapshots  []CostRateSnapshot
	Breakdowns []OrderCostBreakdown
	Summary    CalculationSummary
}
