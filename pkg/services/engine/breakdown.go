package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetworks/costengine/pkg/models/domain"
)

// orderRates carries the rate lookups feeding one order's breakdown.
// vehicleFound is false when the order's assigned vehicle has no usable
// vehicle-center rate; the overhead rate defaults to zero when the
// tenant has no overhead center.
type orderRates struct {
	vehicleRate  decimal.Decimal
	vehicleFound bool
	overheadRate decimal.Decimal
}

// buildBreakdown allocates period costs to a single order. A failed
// vehicle rate lookup marks the breakdown MISSING_RATE but still scores
// the order with a zero vehicle allocation; an order with no assigned
// vehicle is scored normally.
func buildBreakdown(
	order domain.TransportOrder,
	rates orderRates,
	period domain.Period,
	generatedAt time.Time,
) domain.OrderCostBreakdown {
	status := domain.BreakdownOK

	vehicleAlloc := decimal.Zero
	if order.VehicleID != "" {
		if rates.vehicleFound {
			vehicleAlloc = domain.RoundMoney(order.DistanceKM.Mul(rates.vehicleRate))
		} else {
			status = domain.BreakdownMissingRate
		}
	}

	overheadAlloc := domain.RoundMoney(order.Revenue.Mul(rates.overheadRate))

	// No order-level direct cost inputs are modeled yet; the column is
	// carried so adding them later is not a schema change.
	directCost := decimal.Zero

	totalCost := vehicleAlloc.Add(overheadAlloc).Add(directCost)
	revenue := domain.RoundMoney(order.Revenue)
	profit := revenue.Sub(totalCost)

	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = domain.PercentOf(profit, revenue)
	}

	return domain.OrderCostBreakdown{
		TenantID:      order.TenantID,
		OrderID:       order.ID,
		Period:        period,
		VehicleAlloc:  vehicleAlloc,
		OverheadAlloc: overheadAlloc,
		DirectCost:    directCost,
		TotalCost:     totalCost,
		Revenue:       revenue,
		Profit:        profit,
		Margin:        margin,
		Status:        status,
		GeneratedAt:   generatedAt,
	}
}
