package domain

import "github.com/shopspring/decimal"

// KPISummary aggregates previously persisted snapshots and breakdowns for
// one period. It never triggers a recalculation.
type KPISummary struct {
	Period          Period
	TotalCost       decimal.Decimal
	TotalRevenue    decimal.Decimal
	TotalProfit     decimal.Decimal
	AverageMargin   decimal.Decimal
	SnapshotCount   int
	BreakdownCount  int
	MissingActivity int
	MissingRate     int
}

// CostStructureEntry is one cost center's share of a period's total
// cost. Entries are ordered by total cost, largest first.
type CostStructureEntry struct {
	CostCenterID   string
	CostCenterName string
	Kind           CostCenterKind
	TotalCost      decimal.Decimal
	SharePct       decimal.Decimal
}

// TrendPoint is one calculated period's totals. Cost comes from the
// persisted snapshots, revenue and profit from the persisted breakdowns.
type TrendPoint struct {
	Period       Period
	TotalCost    decimal.Decimal
	TotalRevenue decimal.Decimal
	TotalProfit  decimal.Decimal
	OrderCount   int
}
