package api

import "time"

type CalculationMeta struct {
	TenantId      string    `json:"tenant_id"`
	PeriodStart   string    `json:"period_start"`
	PeriodEnd     string    `json:"period_end"`
	GeneratedAt   time.Time `json:"generated_at"`
	SchemaVersion int       `json:"schema_version"`
	EngineVersion string    `json:"engine_version"`
	DryRun        bool      `json:"dry_run"`
}

type CalculationSummary struct {
	TotalCost       string `json:"total_cost"`
	TotalRevenue    string `json:"total_revenue"`
	TotalProfit     string `json:"total_profit"`
	AverageMargin   string `json:"average_margin"`
	SnapshotCount   int    `json:"snapshot_count"`
	BreakdownCount  int    `json:"breakdown_count"`
	OrderCount      int    `json:"order_count"`
	MissingActivity int    `json:"missing_activity"`
	MissingRate     int    `json:"missing_rate"`
}

type CalculationResult struct {
	Meta       CalculationMeta      `json:"meta"`
	Snapshots  []CostRateSnapshot   `json:"snapshots"`
	Breakdowns []OrderCostBreakdown `json:"breakdowns,omitempty"`
	Summary    CalculationSummary   `json:"summary"`
}
