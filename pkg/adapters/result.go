package adapters

import (
	"github.com/fleetworks/costengine/pkg/models/api"
	"github.com/fleetworks/costengine/pkg/models/domain"
)

func MapCalculationMetaDomainToApi(m domain.CalculationMeta, dryRun bool) api.CalculationMeta {
	return api.CalculationMeta{
		TenantId:      m.TenantID,
		PeriodStart:   m.Period.Start.Format(domain.DateFormat),
		PeriodEnd:     m.Period.End.Format(domain.DateFormat),
		GeneratedAt:   m.GeneratedAt,
		SchemaVersion: m.SchemaVersion,
		EngineVersion: m.EngineVersion,
		DryRun:        dryRun,
	}
}

func MapCalculationSummaryDomainToApi(s domain.CalculationSummary) api.CalculationSummary {
	return api.CalculationSummary{
		TotalCost:       s.TotalCost.StringFixed(domain.MoneyPlaces),
		TotalRevenue:    s.TotalRevenue.StringFixed(domain.MoneyPlaces),
		TotalProfit:     s.TotalProfit.StringFixed(domain.MoneyPlaces),
		AverageMargin:   s.AverageMargin.StringFixed(domain.PercentPlaces),
		SnapshotCount:   s.SnapshotCount,
		BreakdownCount:  s.BreakdownCount,
		OrderCount:      s.OrderCount,
		MissingActivity: s.MissingActivity,
		MissingRate:     s.MissingRate,
	}
}

// MapCalculationResultDomainToApi converts a full engine run. Breakdowns
// are omitted from the response when includeBreakdowns is false, and
// snapshots with zero total cost and zero rate are dropped when
// onlyNonzero is set.
func MapCalculationResultDomainToApi(r domain.CalculationResult, dryRun, includeBreakdowns, onlyNonzero bool) api.CalculationResult {
	result := api.CalculationResult{
		Meta:      MapCalculationMetaDomainToApi(r.Meta, dryRun),
		Snapshots: []api.CostRateSnapshot{},
		Summary:   MapCalculationSummaryDomainToApi(r.Summary),
	}

	for _, s := range r.Snapshots {
		if onlyNonzero && s.TotalCost.IsZero() && s.Rate.IsZero() {
			continue
		}
		result.Snapshots = append(result.Snapshots, MapSnapshotDomainToApi(s))
	}

	if includeBreakdowns {
		result.Breakdowns = []api.OrderCostBreakdown{}
		for _, b := range r.Breakdowns {
			result.Breakdowns = append(result.Breakdowns, MapBreakdownDomainToApi(b))
		}
	}

	return result
}
