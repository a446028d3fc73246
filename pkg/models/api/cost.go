package api

import "time"

type CostCenterRef struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type CostRateSnapshot struct {
	Id          string        `json:"id"`
	CostCenter  CostCenterRef `json:"cost_center"`
	PeriodStart string        `json:"period_start"`
	PeriodEnd   string        `json:"period_end"`
	BasisUnit   string        `json:"basis_unit"`
	TotalCost   string        `json:"total_cost"`
	TotalUnits  string        `json:"total_units"`
	Rate        string        `json:"rate"`
	Status      string        `json:"status"`
	GeneratedAt time.Time     `json:"generated_at"`
}

type OrderCostBreakdown struct {
	Id            string    `json:"id"`
	OrderId       string    `json:"order_id"`
	PeriodStart   string    `json:"period_start"`
	PeriodEnd     string    `json:"period_end"`
	VehicleAlloc  string    `json:"vehicle_alloc"`
	OverheadAlloc string    `json:"overhead_alloc"`
	DirectCost    string    `json:"direct_cost"`
	TotalCost     string    `json:"total_cost"`
	Revenue       string    `json:"revenue"`
	Profit        string    `json:"profit"`
	Margin        string    `json:"margin"`
	Status        string    `json:"status"`
	GeneratedAt   time.Time `json:"generated_at"`
}
