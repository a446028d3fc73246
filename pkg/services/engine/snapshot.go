package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetworks/costengine/pkg/models/domain"
)

// buildSnapshot derives the per-unit rate of one cost center. A KM, HOUR
// or TRIP basis with zero units yields rate 0 and MISSING_ACTIVITY; a
// REVENUE basis with zero revenue yields rate 0 with status OK, since no
// orders in a period is a legitimate state for an overhead center.
func buildSnapshot(
	center domain.CostCenter,
	totalCost, totalUnits decimal.Decimal,
	basis domain.BasisUnit,
	period domain.Period,
	generatedAt time.Time,
) domain.CostRateSnapshot {
	totalCost = domain.RoundMoney(totalCost)
	totalUnits = domain.RoundMoney(totalUnits)

	rate := decimal.Zero
	status := domain.SnapshotOK

	if totalUnits.IsPositive() {
		rate = domain.UnitRate(totalCost, totalUnits)
	} else if basis != domain.BasisRevenue {
		status = domain.SnapshotMissingActivity
	}

	return domain.CostRateSnapshot{
		TenantID:       center.TenantID,
		CostCenterID:   center.ID,
		CostCenterName: center.Name,
		CostCenterKind: center.Kind,
		Period:         period,
		Basis:          basis,
		TotalCost:      totalCost,
		TotalUnits:     totalUnits,
		Rate:           rate,
		Status:         status,
		GeneratedAt:    generatedAt,
	}
}
