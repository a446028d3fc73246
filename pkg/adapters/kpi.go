package adapters

import (
	"github.com/fleetworks/costengine/pkg/models/api"
	"github.com/fleetworks/costengine/pkg/models/domain"
)

func MapKpiSummaryDomainToApi(k domain.KPISummary) api.KpiSummary {
	return api.KpiSummary{
		PeriodStart:     k.Period.Start.Format(domain.DateFormat),
		PeriodEnd:       k.Period.End.Format(domain.DateFormat),
		TotalCost:       k.TotalCost.StringFixed(domain.MoneyPlaces),
		TotalRevenue:    k.TotalRevenue.StringFixed(domain.MoneyPlaces),
		TotalProfit:     k.TotalProfit.StringFixed(domain.MoneyPlaces),
		AverageMargin:   k.AverageMargin.StringFixed(domain.PercentPlaces),
		SnapshotCount:   k.SnapshotCount,
		BreakdownCount:  k.BreakdownCount,
		MissingActivity: k.MissingActivity,
		MissingRate:     k.MissingRate,
	}
}

func MapCostStructureDomainToApi(entries []domain.CostStructureEntry) []api.CostStructureEntry {
	out := make([]api.CostStructureEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.CostStructureEntry{
			CostCenter: api.CostCenterRef{
				Id:   e.CostCenterID,
				Name: e.CostCenterName,
				Kind: string(e.Kind),
			},
			TotalCost: e.TotalCost.StringFixed(domain.MoneyPlaces),
			SharePct:  e.SharePct.StringFixed(domain.PercentPlaces),
		})
	}
	return out
}

func MapTrendDomainToApi(points []domain.TrendPoint) []api.TrendPoint {
	out := make([]api.TrendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, api.TrendPoint{
			PeriodStart:  p.Period.Start.Format(domain.DateFormat),
			PeriodEnd:    p.Period.End.Format(domain.DateFormat),
			TotalCost:    p.TotalCost.StringFixed(domain.MoneyPlaces),
			TotalRevenue: p.TotalRevenue.StringFixed(domain.MoneyPlaces),
			TotalProfit:  p.TotalProfit.StringFixed(domain.MoneyPlaces),
			OrderCount:   p.OrderCount,
		})
	}
	return out
}
