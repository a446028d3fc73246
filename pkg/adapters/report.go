package adapters

import (
	"fmt"
	"strconv"

	"github.com/fleetworks/costengine/pkg/models/domain"
)

const reportCurrency = "EUR"

// MapCalculationResultToReport renders an engine run as a printable
// report with one section for cost center rates and one for order
// profitability.
func MapCalculationResultToReport(result domain.CalculationResult) *domain.Report {
	report := &domain.Report{
		Title:     "Cost Allocation Run",
		Period:    mapPeriod(result.Meta.Period),
		Currency:  reportCurrency,
		TotalCost: result.Summary.TotalCost.StringFixed(domain.MoneyPlaces),
	}

	rates := snapshotSection(result.Snapshots)
	rates.Summary = []domain.SummaryLine{
		{Label: "Snapshots", Value: strconv.Itoa(result.Summary.SnapshotCount)},
		{Label: "Missing activity", Value: strconv.Itoa(result.Summary.MissingActivity)},
	}
	report.Sections = append(report.Sections, rates)

	orders := breakdownSection(result.Breakdowns)
	orders.Summary = []domain.SummaryLine{
		{Label: "Orders", Value: strconv.Itoa(result.Summary.OrderCount)},
		{Label: "Missing rate", Value: strconv.Itoa(result.Summary.MissingRate)},
		{Label: "Total revenue", Value: result.Summary.TotalRevenue.StringFixed(domain.MoneyPlaces)},
		{Label: "Total profit", Value: result.Summary.TotalProfit.StringFixed(domain.MoneyPlaces)},
		{Label: "Average margin", Value: result.Summary.AverageMargin.StringFixed(domain.PercentPlaces) + " %"},
	}
	report.Sections = append(report.Sections, orders)

	return report
}

// MapPeriodResultsToReport renders previously persisted results the same
// way, for reporting without a recalculation.
func MapPeriodResultsToReport(
	summary domain.KPISummary,
	snapshots []domain.CostRateSnapshot,
	breakdowns []domain.OrderCostBreakdown,
) *domain.Report {
	report := &domain.Report{
		Title:     "Cost Allocation Results",
		Period:    mapPeriod(summary.Period),
		Currency:  reportCurrency,
		TotalCost: summary.TotalCost.StringFixed(domain.MoneyPlaces),
	}

	rates := snapshotSection(snapshots)
	rates.Summary = []domain.SummaryLine{
		{Label: "Snapshots", Value: strconv.Itoa(summary.SnapshotCount)},
		{Label: "Missing activity", Value: strconv.Itoa(summary.MissingActivity)},
	}
	report.Sections = append(report.Sections, rates)

	orders := breakdownSection(breakdowns)
	orders.Summary = []domain.SummaryLine{
		{Label: "Orders", Value: strconv.Itoa(summary.BreakdownCount)},
		{Label: "Missing rate", Value: strconv.Itoa(summary.MissingRate)},
		{Label: "Total revenue", Value: summary.TotalRevenue.StringFixed(domain.MoneyPlaces)},
		{Label: "Total profit", Value: summary.TotalProfit.StringFixed(domain.MoneyPlaces)},
		{Label: "Average margin", Value: summary.AverageMargin.StringFixed(domain.PercentPlaces) + " %"},
	}
	report.Sections = append(report.Sections, orders)

	return report
}

func mapPeriod(p domain.Period) domain.TimePeriod {
	return domain.TimePeriod{
		Start:    p.Start,
		End:      p.End,
		Duration: int(p.End.Sub(p.Start).Hours()/24) + 1,
	}
}

func snapshotSection(snapshots []domain.CostRateSnapshot) domain.ReportSection {
	section := domain.ReportSection{Title: "Cost Center Rates"}

	for _, s := range snapshots {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:  s.CostCenterName,
			Value: s.Rate.StringFixed(domain.RatePlaces),
			Unit:  fmt.Sprintf("%s/%s", reportCurrency, s.Basis),
			Description: fmt.Sprintf("%s %s over %s units, status %s",
				reportCurrency,
				s.TotalCost.StringFixed(domain.MoneyPlaces),
				s.TotalUnits.StringFixed(domain.MoneyPlaces),
				s.Status),
		})
	}

	return section
}

func breakdownSection(breakdowns []domain.OrderCostBreakdown) domain.ReportSection {
	section := domain.ReportSection{Title: "Order Profitability"}

	for _, b := range breakdowns {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:  b.OrderID,
			Value: b.TotalCost.StringFixed(domain.MoneyPlaces),
			Unit:  reportCurrency,
			Description: fmt.Sprintf("profit %s, margin %s %%, status %s",
				b.Profit.StringFixed(domain.MoneyPlaces),
				b.Margin.StringFixed(domain.PercentPlaces),
				b.Status),
		})
	}

	return section
}
