// Package engine runs the cost allocation pipeline for one tenant and
// period: read postings and orders, aggregate costs per center, derive
// per-unit rate snapshots, allocate costs to individual orders and
// atomically replace the persisted result set. The pipeline never aborts
// on missing activity or missing rates; those conditions are recorded as
// status values on the produced rows.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fleetworks/costengine/pkg/adapters"
	"github.com/fleetworks/costengine/pkg/models/domain"
	"github.com/fleetworks/costengine/pkg/models/store"
	"github.com/fleetworks/costengine/pkg/store/sqlite"
	"github.com/fleetworks/costengine/pkg/store/sqlite/activity"
	"github.com/fleetworks/costengine/pkg/store/sqlite/results"
	"github.com/fleetworks/costengine/pkg/tenant"
)

// Version is stamped into every calculation's meta block.
const Version = "1.0.0"

type Calculator interface {
	// Calculate runs the pipeline for the scoped tenant and atomically
	// replaces the persisted snapshots and breakdowns for the period.
	// Rerunning with unchanged inputs reproduces the same values and
	// leaves the row counts unchanged.
	Calculate(ctx context.Context, period domain.Period) (domain.CalculationResult, error)
	// CalculateDry runs the same pipeline without persisting anything.
	CalculateDry(ctx context.Context, period domain.Period) (domain.CalculationResult, error)
}

type calculator struct {
	db       *sql.DB
	activity activity.Store
	results  results.Store
}

func NewCalculator(db *sql.DB, activityStore activity.Store, resultStore results.Store) (Calculator, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if activityStore == nil {
		return nil, fmt.Errorf("activity store is nil")
	}
	if resultStore == nil {
		return nil, fmt.Errorf("result store is nil")
	}
	return &calculator{db: db, activity: activityStore, results: resultStore}, nil
}

func (c *calculator) Calculate(ctx context.Context, period domain.Period) (domain.CalculationResult, error) {
	result, err := c.compute(ctx, period)
	if err != nil {
		return domain.CalculationResult{}, err
	}

	snapshots := make([]store.CostRateSnapshot, 0, len(result.Snapshots))
	for _, s := range result.Snapshots {
		snapshots = append(snapshots, adapters.MapSnapshotDomainToStore(s))
	}
	breakdowns := make([]store.OrderCostBreakdown, 0, len(result.Breakdowns))
	for _, b := range result.Breakdowns {
		breakdowns = append(breakdowns, adapters.MapBreakdownDomainToStore(b))
	}

	err = sqlite.WithTx(ctx, c.db, func(ctx context.Context) error {
		if err := c.results.ReplaceSnapshots(ctx, period.Start, period.End, snapshots); err != nil {
			return err
		}
		return c.results.ReplaceBreakdowns(ctx, period.Start, period.End, breakdowns)
	})
	if err != nil {
		return domain.CalculationResult{}, fmt.Errorf("persist calculation results: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("tenant_id", result.Meta.TenantID).
		Str("period", period.String()).
		Int("snapshots", len(result.Snapshots)).
		Int("breakdowns", len(result.Breakdowns)).
		Msg("cost calculation persisted")

	return result, nil
}

func (c *calculator) CalculateDry(ctx context.Context, period domain.Period) (domain.CalculationResult, error) {
	return c.compute(ctx, period)
}

func (c *calculator) compute(ctx context.Context, period domain.Period) (domain.CalculationResult, error) {
	scope, err := tenant.RequireScope(ctx)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	if err := period.Validate(); err != nil {
		return domain.CalculationResult{}, err
	}

	centerRows, err := c.activity.ListActiveCostCenters(ctx)
	if err != nil {
		return domain.CalculationResult{}, fmt.Errorf("read cost centers: %w", err)
	}
	postingRows, err := c.activity.ListCostPostings(ctx, period.Start, period.End)
	if err != nil {
		return domain.CalculationResult{}, fmt.Errorf("read cost postings: %w", err)
	}
	orderRows, err := c.activity.ListTransportOrders(ctx, period.Start, period.End)
	if err != nil {
		return domain.CalculationResult{}, fmt.Errorf("read transport orders: %w", err)
	}

	centers := make([]domain.CostCenter, 0, len(centerRows))
	for _, row := range centerRows {
		centers = append(centers, adapters.MapCostCenterStoreToDomain(row))
	}
	postings := make([]domain.CostPosting, 0, len(postingRows))
	for _, row := range postingRows {
		postings = append(postings, adapters.MapPostingStoreToDomain(row))
	}
	orders := make([]domain.TransportOrder, 0, len(orderRows))
	for _, row := range orderRows {
		orders = append(orders, adapters.MapOrderStoreToDomain(row))
	}

	totals := ComputeActivityTotals(orders)
	costByCenter := AggregateByCostCenter(postings)
	generatedAt := time.Now().UTC()

	// Centers arrive ordered by name, so the overhead rate applied to
	// orders is deterministic when a tenant has several overhead centers.
	snapshots := make([]domain.CostRateSnapshot, 0, len(centers))
	snapshotByCenter := make(map[string]domain.CostRateSnapshot, len(centers))
	vehicleCenterID := make(map[string]string)
	overheadRate := decimal.Zero
	overheadFound := false

	for _, center := range centers {
		var (
			basis domain.BasisUnit
			units decimal.Decimal
		)
		if center.Kind == domain.CostCenterOverhead {
			basis = domain.BasisRevenue
			units = totals.TotalRevenue
		} else {
			basis = domain.BasisKM
			if center.VehicleID != "" {
				units = totals.KMByVehicle[center.VehicleID]
				vehicleCenterID[center.VehicleID] = center.ID
			} else {
				units = totals.TotalKM
			}
		}

		snapshot := buildSnapshot(center, costByCenter[center.ID], units, basis, period, generatedAt)
		snapshots = append(snapshots, snapshot)
		snapshotByCenter[center.ID] = snapshot

		if center.Kind == domain.CostCenterOverhead && !overheadFound {
			overheadRate = snapshot.Rate
			overheadFound = true
		}
	}

	breakdowns := make([]domain.OrderCostBreakdown, 0, len(orders))
	for _, order := range orders {
		rates := orderRates{overheadRate: overheadRate}
		if order.VehicleID != "" {
			if centerID, ok := vehicleCenterID[order.VehicleID]; ok {
				if snapshot := snapshotByCenter[centerID]; snapshot.Status == domain.SnapshotOK {
					rates.vehicleRate = snapshot.Rate
					rates.vehicleFound = true
				}
			}
		}
		breakdowns = append(breakdowns, buildBreakdown(order, rates, period, generatedAt))
	}

	return domain.CalculationResult{
		Meta: domain.CalculationMeta{
			TenantID:      scope.TenantID,
			Period:        period,
			GeneratedAt:   generatedAt,
			SchemaVersion: domain.SchemaVersion,
			EngineVersion: Version,
		},
		Snapshots:  snapshots,
		Breakdowns: breakdowns,
		Summary:    summarize(snapshots, breakdowns, totals.OrderCount),
	}, nil
}

// summarize rolls the run up: total cost comes from the snapshot side,
// revenue and profit from the breakdown side, and the average margin is
// revenue weighted rather than a plain mean of per-order margins.
func summarize(
	snapshots []domain.CostRateSnapshot,
	breakdowns []domain.OrderCostBreakdown,
	orderCount int,
) domain.CalculationSummary {
	totalCost := decimal.Zero
	missingActivity := 0
	for _, s := range snapshots {
		totalCost = totalCost.Add(s.TotalCost)
		if s.Status == domain.SnapshotMissingActivity {
			missingActivity++
		}
	}

	totalRevenue := decimal.Zero
	totalProfit := decimal.Zero
	missingRate := 0
	for _, b := range breakdowns {
		totalRevenue = totalRevenue.Add(b.Revenue)
		totalProfit = totalProfit.Add(b.Profit)
		if b.Status == domain.BreakdownMissingRate {
			missingRate++
		}
	}

	averageMargin := decimal.Zero
	if totalRevenue.IsPositive() {
		averageMargin = domain.PercentOf(totalProfit, totalRevenue)
	}

	return domain.CalculationSummary{
		TotalCost:       domain.RoundMoney(totalCost),
		TotalRevenue:    domain.RoundMoney(totalRevenue),
		TotalProfit:     domain.RoundMoney(totalProfit),
		AverageMargin:   averageMargin,
		SnapshotCount:   len(snapshots),
		BreakdownCount:  len(breakdowns),
		OrderCount:      orderCount,
		MissingActivity: missingActivity,
		MissingRate:     missingRate,
	}
}
