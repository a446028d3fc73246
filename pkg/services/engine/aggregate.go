package engine

import (
	"github.com/shopspring/decimal"

	"github.com/fleetworks/costengine/pkg/models/domain"
)

// AggregateByCostCenter sums posting amounts per cost center. Postings
// carry exact decimals, so the sums are exact.
func AggregateByCostCenter(postings []domain.CostPosting) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, posting := range postings {
		totals[posting.CostCenterID] = totals[posting.CostCenterID].Add(posting.Amount)
	}
	return totals
}

// ActivityTotals holds the activity units extracted from one period's
// orders. KMByVehicle only has entries for orders with an assigned
// vehicle; unassigned distance still counts toward TotalKM.
type ActivityTotals struct {
	TotalKM      decimal.Decimal
	TotalRevenue decimal.Decimal
	KMByVehicle  map[string]decimal.Decimal
	OrderCount   int
}

func ComputeActivityTotals(orders []domain.TransportOrder) ActivityTotals {
	totals := ActivityTotals{
		KMByVehicle: make(map[string]decimal.Decimal),
		OrderCount:  len(orders),
	}

	for _, order := range orders {
		totals.TotalKM = totals.TotalKM.Add(order.DistanceKM)
		totals.TotalRevenue = totals.TotalRevenue.Add(order.Revenue)

		if order.VehicleID != "" {
			totals.KMByVehicle[order.VehicleID] = totals.KMByVehicle[order.VehicleID].Add(order.DistanceKM)
		}
	}

	return totals
}
