package api

type KpiSummary struct {
	PeriodStart     string `json:"period_start"`
	PeriodEnd       string `json:"period_end"`
	TotalCost       string `json:"total_cost"`
	TotalRevenue    string `json:"total_revenue"`
	TotalProfit     string `json:"total_profit"`
	AverageMargin   string `json:"average_margin"`
	SnapshotCount   int    `json:"snapshot_count"`
	BreakdownCount  int    `json:"breakdown_count"`
	MissingActivity int    `json:"missing_activity"`
	MissingRate     int    `json:"missing_rate"`
}

type CostStructureEntry struct {
	CostCenter CostCenterRef `json:"cost_center"`
	TotalCost  string        `json:"total_cost"`
	SharePct   string        `json:"share_pct"`
}

type TrendPoint struct {
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
	TotalCost    string `json:"total_cost"`
	TotalRevenue string `json:"total_revenue"`
	TotalProfit  string `json:"total_profit"`
	OrderCount   int    `json:"order_count"`
}
