// Package results persists what a calculation run produced: cost rate
// snapshots and order cost breakdowns. Saves replace all prior rows for
// the same tenant and period inside one transaction, so re-running a
// period can never duplicate or half-write its results. Reads are bound
// to the tenant scope in the context and fail closed without one.
package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetworks/costengine/pkg/models/store"
	"github.com/fleetworks/costengine/pkg/store/sqlite"
	"github.com/fleetworks/costengine/pkg/tenant"
)

// HistoryLimitDefault and HistoryLimitMax bound the history queries.
const (
	HistoryLimitDefault = 500
	HistoryLimitMax     = 2000
)

type Store interface {
	// ReplaceSnapshots atomically swaps the scoped tenant's snapshots for
	// the period with the given set.
	ReplaceSnapshots(ctx context.Context, periodStart, periodEnd time.Time, snapshots []store.CostRateSnapshot) error
	// ReplaceBreakdowns is the same contract for order breakdowns.
	ReplaceBreakdowns(ctx context.Context, periodStart, periodEnd time.Time, breakdowns []store.OrderCostBreakdown) error

	GetSnapshot(ctx context.Context, costCenterID string, periodStart, periodEnd time.Time) (store.CostRateSnapshot, error)
	ListSnapshots(ctx context.Context, periodStart, periodEnd time.Time) ([]store.CostRateSnapshot, error)
	// ListSnapshotHistory returns the scoped tenant's snapshots across all
	// periods, newest first.
	ListSnapshotHistory(ctx context.Context, limit int) ([]store.CostRateSnapshot, error)
	// ListSnapshotsSince returns snapshots of periods starting on or after
	// the given date, oldest first.
	ListSnapshotsSince(ctx context.Context, since time.Time) ([]store.CostRateSnapshot, error)

	GetBreakdown(ctx context.Context, orderID string, periodStart, periodEnd time.Time) (store.OrderCostBreakdown, error)
	ListBreakdowns(ctx context.Context, periodStart, periodEnd time.Time) ([]store.OrderCostBreakdown, error)
	ListBreakdownHistory(ctx context.Context, limit int) ([]store.OrderCostBreakdown, error)
	// ListBreakdownsSince returns breakdowns of periods starting on or
	// after the given date, oldest first. Trend queries build on it.
	ListBreakdownsSince(ctx context.Context, since time.Time) ([]store.OrderCostBreakdown, error)
}

type resultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &resultStore{db: db}, nil
}

// NormalizeLimit clamps a caller-supplied history limit to the allowed
// range, applying the default when the limit is unset.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return HistoryLimitDefault
	}
	if limit > HistoryLimitMax {
		return HistoryLimitMax
	}
	return limit
}

func (r *resultStore) ReplaceSnapshots(ctx context.Context, periodStart, periodEnd time.Time, snapshots []store.CostRateSnapshot) error {
	scope, err := tenant.RequireScope(ctx)
	if err != nil {
		return err
	}
	for _, s := range snapshots {
		if s.TenantID != "" && s.TenantID != scope.TenantID {
			return tenant.ErrScopeMismatch
		}
	}

	if sqlite.GetTransaction(ctx) == nil {
		return sqlite.WithTx(ctx, r.db, func(ctx context.Context) error {
			return r.ReplaceSnapshots(ctx, periodStart, periodEnd, snapshots)
		})
	}
	tx := sqlite.GetTransaction(ctx)

	_, err = tx.ExecContext(ctx, `
		DELETE FROM cost_rate_snapshots
		WHERE tenant_id = ? AND period_start = ? AND period_end = ?
	`, scope.TenantID, sqlite.FormatDate(periodStart), sqlite.FormatDate(periodEnd))
	if err != nil {
		return fmt.Errorf("delete prior snapshots: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cost_rate_snapshots (
			id, tenant_id, cost_center_id, period_start, period_end,
			basis_unit, total_cost, total_units, rate, status, generated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range snapshots {
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = stmt.ExecContext(ctx,
			id, scope.TenantID, s.CostCenterID,
			sqlite.FormatDate(periodStart), sqlite.FormatDate(periodEnd),
			s.Basis, s.TotalCost, s.TotalUnits, s.Rate, s.Status,
			sqlite.FormatTime(s.GeneratedAt),
		)
		if err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
	}
	return nil
}

func (r *resultStore) ReplaceBreakdowns(ctx context.Context, periodStart, periodEnd time.Time, breakdowns []store.OrderCostBreakdown) error {
	scope, err := tenant.RequireScope(ctx)
	if err != nil {
		return err
	}
	for _, b := range breakdowns {
		if b.TenantID != "" && b.TenantID != scope.TenantID {
			return tenant.ErrScopeMismatch
		}
	}

	if sqlite.GetTransaction(ctx) == nil {
		return sqlite.WithTx(ctx, r.db, func(ctx context.Context) error {
			return r.ReplaceBreakdowns(ctx, periodStart, periodEnd, breakdowns)
		})
	}
	tx := sqlite.GetTransaction(ctx)

	_, err = tx.ExecContext(ctx, `
		DELETE FROM order_cost_breakdowns
		WHERE tenant_id = ? AND period_start = ? AND period_end = ?
	`, scope.TenantID, sqlite.FormatDate(periodStart), sqlite.FormatDate(periodEnd))
	if err != nil {
		return fmt.Errorf("delete prior breakdowns: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_cost_breakdowns (
			id, tenant_id, order_id, period_start, period_end,
			vehicle_alloc, overhead_alloc, direct_cost, total_cost,
			revenue, profit, margin, status, generated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare breakdown insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range breakdowns {
		id := b.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = stmt.ExecContext(ctx,
			id, scope.TenantID, b.OrderID,
			sqlite.FormatDate(periodStart), sqlite.FormatDate(periodEnd),
			b.VehicleAlloc, b.OverheadAlloc, b.DirectCost, b.TotalCost,
			b.Revenue, b.Profit, b.Margin, b.Status,
			sqlite.FormatTime(b.GeneratedAt),
		)
		if err != nil {
			return fmt.Errorf("insert breakdown: %w", err)
		}
	}
	return nil
}

const snapshotColumns = `
	s.id, s.tenant_id, s.cost_center_id, c.name, c.kind,
	s.period_start, s.period_end, s.basis_unit,
	s.total_cost, s.total_units, s.rate, s.status, s.generated_at
`

func (r *resultStore) GetSnapshot(ctx context.Context, costCenterID string, periodStart, periodEnd time.Time) (store.CostRateSnapshot, error) {
	scope, ok := tenant.ScopeFromContext(ctx)
	if !ok {
		return store.CostRateSnapshot{}, store.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM cost_rate_snapshots s
		JOIN cost_centers c ON c.id = s.cost_center_id
		WHERE s.tenant_id = ? AND s.cost_center_id = ? AND s.period_start = ? AND s.period_end = ?
	`, scope.TenantID, costCenterID, sqlite.FormatDate(periodStart), sqlite.FormatDate(periodEnd))

	snapshot, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return store.CostRateSnapshot{}, store.ErrNotFound
	}
	if err != nil {
		return store.CostRateSnapshot{}, fmt.Errorf("query snapshot: %w", err)
	}
	return snapshot, nil
}

func (r *resultStore) ListSnapshots(ctx context.Context, periodStart, periodEnd time.Time) ([]store.CostRateSnapshot, error) {
	scope, ok := tenant.ScopeFromContext(ctx)
	if !ok {
		return []store.CostRateSnapshot{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM cost_rate_snapshots s
		JOIN cost_centers c ON c.id = s.cost_center_id
		WHERE s.tenant_id = ? AND s.period_start = ? AND s.period_end = ?
		ORDER BY c.name
	`, scope.TenantID, sqlite.FormatDate(periodStart), sqlite.FormatDate(periodEnd))
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()
	return scanSnapshotRows(rows)
}

func (r *resultStore) ListSnapshotHistory(ctx context.Context, limit int) ([]store.CostRateSnapshot, error) {
	scope, ok := tenant.ScopeFromContext(ctx)
	if !ok {
		return []store.CostRateSnapshot{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM cost_rate_snapshots s
		JOIN cost_centers c ON c.id = s.cost_center_id
		WHERE s.tenant_id = ?
		ORDER BY s.period_start DESC, c.name
		LIMIT ?
	`, scope.TenantID, NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query snapshot history: %w", err)
	}
	defer rows.Close()
	return scanSnapshotRows(rows)
}

func (r *resultStore) ListSnapshotsSince(ctx context.Context, since time.Time) ([]store.CostRateSnapshot, error) {
	scope, ok := tenant.ScopeFromContext(ctx)
	if !ok {
		return []store.CostRateSnapshot{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM cost_rate_snapshots s
		JOIN cost_centers c ON c.id = s.cost_center_id
		WHERE s.tenant_id = ? AND s.period_start >= ?
		ORDER BY s.period_start, c.name
	`, scope.TenantID, sqlite.FormatDate(since))
	if err != nil {
		return nil, fmt.Errorf("query snapshots since %s: %w", sqlite.FormatDate(since), err)
	}
	defer rows.Close()
	return scanSnapshotRows(rows)
}

const breakdownColumns = `
	id, tenant_id, order_id, period_start, period_end,
	vehicle_alloc, overhead_alloc, direct_cost, total_cost,
	revenue, profit, margin, status, generated_at
`

func (r *resultStore) GetBreakdown(ctx context.Context, orderID string, periodStart, periodEnd time.Time) (store.OrderCostBreakdown, error) {
	scope, ok := tenant.ScopeFromContext(ctx)
	if !ok {
		return store.OrderCostBreakdown{}, store.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+breakdownColumns+`
		FROM order_cost_breakdowns
		WHERE tenant_id = ? AND order_id = ? AND period_start = ? AND period_end = ?
	`, scope.TenantID, orderID, sqlite.FormatDate(periodStart), sqlite.FormatDate(periodEnd))

	breakdown, err := scanBreakdown(row)
	if err == sql.ErrNoRows {
		return store.OrderCostBreakdown{}, store.ErrNotFound
	}
	if err != nil {
		return store.OrderCostBreakdown{}, fmt.Errorf("query breakdown: %w", err)
	}
	return breakdown, nil
}

func (r *resultStore) ListBreakdowns(ctx context.Context, periodStart, periodEnd time.Time) ([]store.OrderCostBreakdown, error) {
	scope, ok := tenant.ScopeFromContext(ctx)
	if !ok {
		return []store.OrderCostBreakdown{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+breakdownColumns+`
		FROM order_cost_breakdowns
		WHERE tenant_id = ? AND period_start = ? AND period_end = ?
		ORDER BY order_id
	`, scope.TenantID, sqlite.FormatDate(periodStart), sqlite.FormatDate(periodEnd))
	if err != nil {
		return nil, fmt.Errorf("query breakdowns: %w", err)
	}
	defer rows.Close()
	return scanBreakdownRows(rows)
}

func (r *resultStore) ListBreakdownHistory(ctx context.Context, limit int) ([]store.OrderCostBreakdown, error) {
	scope, ok := tenant.ScopeFromContext(ctx)
	if !ok {
		return []store.OrderCostBreakdown{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+breakdownColumns+`
		FROM order_cost_breakdowns
		WHERE tenant_id = ?
		ORDER BY period_start DESC, order_id
		LIMIT ?
	`, scope.TenantID, NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query breakdown history: %w", err)
	}
	defer rows.Close()
	return scanBreakdownRows(rows)
}

func (r *resultStore) ListBreakdownsSince(ctx context.Context, since time.Time) ([]store.OrderCostBreakdown, error) {
	scope, ok := tenant.ScopeFromContext(ctx)
	if !ok {
		return []store.OrderCostBreakdown{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+breakdownColumns+`
		FROM order_cost_breakdowns
		WHERE tenant_id = ? AND period_start >= ?
		ORDER BY period_start, order_id
	`, scope.TenantID, sqlite.FormatDate(since))
	if err != nil {
		return nil, fmt.Errorf("query breakdowns since %s: %w", sqlite.FormatDate(since), err)
	}
	defer rows.Close()
	return scanBreakdownRows(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (store.CostRateSnapshot, error) {
	var (
		s                     store.CostRateSnapshot
		start, end, generated string
	)
	err := row.Scan(&s.ID, &s.TenantID, &s.CostCenterID, &s.CostCenterName, &s.CostCenterKind,
		&start, &end, &s.Basis, &s.TotalCost, &s.TotalUnits, &s.Rate, &s.Status, &generated)
	if err != nil {
		return store.CostRateSnapshot{}, err
	}

	if s.PeriodStart, err = sqlite.ParseDate(start); err != nil {
		return store.CostRateSnapshot{}, err
	}
	if s.PeriodEnd, err = sqlite.ParseDate(end); err != nil {
		return store.CostRateSnapshot{}, err
	}
	if s.GeneratedAt, err = sqlite.ParseTime(generated); err != nil {
		return store.CostRateSnapshot{}, err
	}
	return s, nil
}

func scanSnapshotRows(rows *sql.Rows) ([]store.CostRateSnapshot, error) {
	snapshots := make([]store.CostRateSnapshot, 0)
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

func scanBreakdown(row rowScanner) (store.OrderCostBreakdown, error) {
	var (
		b                     store.OrderCostBreakdown
		start, end, generated string
	)
	err := row.Scan(&b.ID, &b.TenantID, &b.OrderID, &start, &end,
		&b.VehicleAlloc, &b.OverheadAlloc, &b.DirectCost, &b.TotalCost,
		&b.Revenue, &b.Profit, &b.Margin, &b.Status, &generated)
	if err != nil {
		return store.OrderCostBreakdown{}, err
	}

	if b.PeriodStart, err = sqlite.ParseDate(start); err != nil {
		return store.OrderCostBreakdown{}, err
	}
	if b.PeriodEnd, err = sqlite.ParseDate(end); err != nil {
		return store.OrderCostBreakdown{}, err
	}
	if b.GeneratedAt, err = sqlite.ParseTime(generated); err != nil {
		return store.OrderCostBreakdown{}, err
	}
	return b, nil
}

func scanBreakdownRows(rows *sql.Rows) ([]store.OrderCostBreakdown, error) {
	breakdowns := make([]store.OrderCostBreakdown, 0)
	for rows.Next() {
		b, err := scanBreakdown(rows)
		if err != nil {
			return nil, err
		}
		breakdowns = append(breakdowns, b)
	}
	return breakdowns, rows.Err()
}
