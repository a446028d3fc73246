// Package analytics reads previously persisted calculation results and
// derives KPI views from them. It never runs the calculation pipeline;
// a period that was never calculated simply reads as empty.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetworks/costengine/pkg/adapters"
	"github.com/fleetworks/costengine/pkg/models/domain"
	"github.com/fleetworks/costengine/pkg/store/sqlite/results"
)

type Reader interface {
	// PeriodSnapshots returns the persisted snapshots of one calculation
	// period, ordered by cost center name.
	PeriodSnapshots(ctx context.Context, period domain.Period) ([]domain.CostRateSnapshot, error)
	PeriodBreakdowns(ctx context.Context, period domain.Period) ([]domain.OrderCostBreakdown, error)

	// SnapshotHistory returns snapshots across all periods, newest period
	// first, capped by limit.
	SnapshotHistory(ctx context.Context, limit int) ([]domain.CostRateSnapshot, error)
	BreakdownHistory(ctx context.Context, limit int) ([]domain.OrderCostBreakdown, error)

	// Summary rolls one period up: cost from the snapshot side, revenue
	// and profit from the breakdown side.
	Summary(ctx context.Context, period domain.Period) (domain.KPISummary, error)
	// CostStructure returns each cost center's share of the period's
	// total cost, largest share first.
	CostStructure(ctx context.Context, period domain.Period) ([]domain.CostStructureEntry, error)
	// Trend returns one point per calculated period starting on or after
	// since, oldest first.
	Trend(ctx context.Context, since time.Time) ([]domain.TrendPoint, error)
}

type reader struct {
	results results.Store
}

func NewReader(resultStore results.Store) (Reader, error) {
	if resultStore == nil {
		return nil, fmt.Errorf("result store is nil")
	}
	return &reader{results: resultStore}, nil
}

func (r *reader) PeriodSnapshots(ctx context.Context, period domain.Period) ([]domain.CostRateSnapshot, error) {
	rows, err := r.results.ListSnapshots(ctx, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	snapshots := make([]domain.CostRateSnapshot, 0, len(rows))
	for _, row := range rows {
		snapshots = append(snapshots, adapters.MapSnapshotStoreToDomain(row))
	}
	return snapshots, nil
}

func (r *reader) PeriodBreakdowns(ctx context.Context, period domain.Period) ([]domain.OrderCostBreakdown, error) {
	rows, err := r.results.ListBreakdowns(ctx, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	breakdowns := make([]domain.OrderCostBreakdown, 0, len(rows))
	for _, row := range rows {
		breakdowns = append(breakdowns, adapters.MapBreakdownStoreToDomain(row))
	}
	return breakdowns, nil
}

func (r *reader) SnapshotHistory(ctx context.Context, limit int) ([]domain.CostRateSnapshot, error) {
	rows, err := r.results.ListSnapshotHistory(ctx, limit)
	if err != nil {
		return nil, err
	}
	snapshots := make([]domain.CostRateSnapshot, 0, len(rows))
	for _, row := range rows {
		snapshots = append(snapshots, adapters.MapSnapshotStoreToDomain(row))
	}
	return snapshots, nil
}

func (r *reader) BreakdownHistory(ctx context.Context, limit int) ([]domain.OrderCostBreakdown, error) {
	rows, err := r.results.ListBreakdownHistory(ctx, limit)
	if err != nil {
		return nil, err
	}
	breakdowns := make([]domain.OrderCostBreakdown, 0, len(rows))
	for _, row := range rows {
		breakdowns = append(breakdowns, adapters.MapBreakdownStoreToDomain(row))
	}
	return breakdowns, nil
}

func (r *reader) Summary(ctx context.Context, period domain.Period) (domain.KPISummary, error) {
	snapshots, err := r.PeriodSnapshots(ctx, period)
	if err != nil {
		return domain.KPISummary{}, err
	}
	breakdowns, err := r.PeriodBreakdowns(ctx, period)
	if err != nil {
		return domain.KPISummary{}, err
	}

	summary := domain.KPISummary{
		Period:         period,
		SnapshotCount:  len(snapshots),
		BreakdownCount: len(breakdowns),
	}

	totalCost := decimal.Zero
	for _, s := range snapshots {
		totalCost = totalCost.Add(s.TotalCost)
		if s.Status == domain.SnapshotMissingActivity {
			summary.MissingActivity++
		}
	}

	totalRevenue := decimal.Zero
	totalProfit := decimal.Zero
	for _, b := range breakdowns {
		totalRevenue = totalRevenue.Add(b.Revenue)
		totalProfit = totalProfit.Add(b.Profit)
		if b.Status == domain.BreakdownMissingRate {
			summary.MissingRate++
		}
	}

	summary.TotalCost = domain.RoundMoney(totalCost)
	summary.TotalRevenue = domain.RoundMoney(totalRevenue)
	summary.TotalProfit = domain.RoundMoney(totalProfit)
	if totalRevenue.IsPositive() {
		summary.AverageMargin = domain.PercentOf(totalProfit, totalRevenue)
	} else {
		summary.AverageMargin = decimal.Zero
	}

	return summary, nil
}

func (r *reader) CostStructure(ctx context.Context, period domain.Period) ([]domain.CostStructureEntry, error) {
	snapshots, err := r.PeriodSnapshots(ctx, period)
	if err != nil {
		return nil, err
	}

	grandTotal := decimal.Zero
	for _, s := range snapshots {
		grandTotal = grandTotal.Add(s.TotalCost)
	}

	entries := make([]domain.CostStructureEntry, 0, len(snapshots))
	for _, s := range snapshots {
		share := decimal.Zero
		if grandTotal.IsPositive() {
			share = domain.PercentOf(s.TotalCost, grandTotal)
		}
		entries = append(entries, domain.CostStructureEntry{
			CostCenterID:   s.CostCenterID,
			CostCenterName: s.CostCenterName,
			Kind:           s.CostCenterKind,
			TotalCost:      s.TotalCost,
			SharePct:       share,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if cmp := entries[i].TotalCost.Cmp(entries[j].TotalCost); cmp != 0 {
			return cmp > 0
		}
		return entries[i].CostCenterName < entries[j].CostCenterName
	})

	return entries, nil
}

func (r *reader) Trend(ctx context.Context, since time.Time) ([]domain.TrendPoint, error) {
	snapshots, err := r.results.ListSnapshotsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	breakdowns, err := r.results.ListBreakdownsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	points := make(map[string]*domain.TrendPoint)
	key := func(start, end time.Time) string {
		return start.Format(domain.DateFormat) + ".." + end.Format(domain.DateFormat)
	}
	point := func(start, end time.Time) *domain.TrendPoint {
		k := key(start, end)
		if p, ok := points[k]; ok {
			return p
		}
		p := &domain.TrendPoint{Period: domain.Period{Start: start, End: end}}
		points[k] = p
		return p
	}

	for _, s := range snapshots {
		p := point(s.PeriodStart, s.PeriodEnd)
		p.TotalCost = p.TotalCost.Add(s.TotalCost)
	}
	for _, b := range breakdowns {
		p := point(b.PeriodStart, b.PeriodEnd)
		p.TotalRevenue = p.TotalRevenue.Add(b.Revenue)
		p.TotalProfit = p.TotalProfit.Add(b.Profit)
		p.OrderCount++
	}

	series := make([]domain.TrendPoint, 0, len(points))
	for _, p := range points {
		p.TotalCost = domain.RoundMoney(p.TotalCost)
		p.TotalRevenue = domain.RoundMoney(p.TotalRevenue)
		p.TotalProfit = domain.RoundMoney(p.TotalProfit)
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Period.Start.Before(series[j].Period.Start)
	})

	return series, nil
}
