// Package activity reads the raw inputs of a calculation run: cost
// postings, transport orders and the cost centers they allocate to.
// Every read is bound to the tenant scope carried in the context; a
// context without a scope sees an empty store.
package activity

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

type Store interface {
	// ListActiveCostCenters returns the scoped tenant's active centers,
	// ordered by name.
	ListActiveCostCenters(ctx context.Context) ([]store.CostCenter, error)
	// ListCostPostings returns postings whose interval overlaps the given
	// period.
	ListCostPostings(ctx context.Context, periodStart, periodEnd time.Time) ([]store.CostPosting, error)
	// ListTransportOrders returns orders dated within the given period.
	ListTransportOrders(ctx context.Context, periodStart, periodEnd time.Time) ([]store.TransportOrder, error)

	AddCostPosting(ctx context.Context, posting store.CostPosting) error
	AddTransportOrder(ctx context.Context, order store.TransportOrder) error
}

type activityStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &activityStore{db: db}, nil
}

func (a *activityStore) ListActiveCostCenters(ctx context.Context) ([]store.CostCenter, error) {
	scope, ok := tenant.ScopeFromContext(ctx)
	if !ok {
		return []store.CostCenter{}, nil
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, tenant_id, name, kind, vehicle_id, driver, active
		FROM cost_centers
		WHERE tenant_id = ? AND active = 1
		ORDER BY name
	`, scope.TenantID)
	if err != nil {
		return nil, fmt.Errorf("query cost centers: %w", err)
	}
	defer rows.Close()

	centers := make([]store.CostCenter, 0)
	for rows.Next() {
		var (
			c         store.CostCenter
			vehicleID sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Kind, &vehicleID, &c.Driver, &c.Active); err != nil {
			return nil, err
		}
		c.VehicleID = vehicleID.String
		centers = append(centers, c)
	}
	return centers, rows.Err()
}

func (a *activityStore) ListCostPostings(ctx context.Context, periodStart, periodEnd time.Time) ([]store.CostPosting, error) {
	scope, ok := tenant.ScopeFromContext(ctx)
	if !ok {
		return []store.CostPosting{}, nil
	}

	// Interval overlap: the posting's period touches the calculation
	// period when it starts before the calculation ends and ends after
	// the calculation starts.
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, tenant_id, cost_center_id, item, amount, period_start, period_end, created_at
		FROM cost_postings
		WHERE tenant_id = ? AND period_start <= ? AND period_end >= ?
		ORDER BY period_start, id
	`, scope.TenantID, sqlite.FormatDate(periodEnd), sqlite.FormatDate(periodStart))
	if err != nil {
		return nil, fmt.Errorf("query cost postings: %w", err)
	}
	defer rows.Close()
	return scanPostingRows(rows)
}

func (a *activityStore) ListTransportOrders(ctx context.Context, periodStart, periodEnd time.Time) ([]store.TransportOrder, error) {
	scope, ok := tenant.ScopeFromContext(ctx)
	if !ok {
		return []store.TransportOrder{}, nil
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, tenant_id, order_date, origin, destination, distance_km, revenue, vehicle_id, status
		FROM transport_orders
		WHERE tenant_id = ? AND order_date >= ? AND order_date <= ?
		ORDER BY order_date, id
	`, scope.TenantID, sqlite.FormatDate(periodStart), sqlite.FormatDate(periodEnd))
	if err != nil {
		return nil, fmt.Errorf("query transport orders: %w", err)
	}
	defer rows.Close()
	return scanOrderRows(rows)
}

func (a *activityStore) AddCostPosting(ctx context.Context, posting store.CostPosting) error {
	scope, err := tenant.RequireScope(ctx)
	if err != nil {
		return err
	}
	if posting.TenantID != "" && posting.TenantID != scope.TenantID {
		return tenant.ErrScopeMismatch
	}
	if posting.CostCenterID == "" {
		return fmt.Errorf("cost center id is required")
	}
	if posting.Amount.IsNegative() {
		return fmt.Errorf("posting amount must not be negative")
	}
	if posting.PeriodStart.After(posting.PeriodEnd) {
		return fmt.Errorf("posting period start is after end")
	}

	id := posting.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err = a.exec(ctx, `
		INSERT INTO cost_postings (id, tenant_id, cost_center_id, item, amount, period_start, period_end, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, scope.TenantID, posting.CostCenterID, posting.Item, posting.Amount,
		sqlite.FormatDate(posting.PeriodStart), sqlite.FormatDate(posting.PeriodEnd),
		sqlite.FormatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("insert cost posting: %w", err)
	}
	return nil
}

func (a *activityStore) AddTransportOrder(ctx context.Context, order store.TransportOrder) error {
	scope, err := tenant.RequireScope(ctx)
	if err != nil {
		return err
	}
	if order.TenantID != "" && order.TenantID != scope.TenantID {
		return tenant.ErrScopeMismatch
	}

	id := order.ID
	if id == "" {
		id = uuid.NewString()
	}
	status := order.Status
	if status == "" {
		status = "PENDING"
	}
	var vehicleID any
	if order.VehicleID != "" {
		vehicleID = order.VehicleID
	}

	_, err = a.exec(ctx, `
		INSERT INTO transport_orders (id, tenant_id, order_date, origin, destination, distance_km, revenue, vehicle_id, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, scope.TenantID, sqlite.FormatDate(order.OrderDate), order.Origin, order.Destination,
		order.DistanceKM, order.Revenue, vehicleID, status)
	if err != nil {
		return fmt.Errorf("insert transport order: %w", err)
	}
	return nil
}

func (a *activityStore) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if tx := sqlite.GetTransaction(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return a.db.ExecContext(ctx, query, args...)
}

func scanPostingRows(rows *sql.Rows) ([]store.CostPosting, error) {
	postings := make([]store.CostPosting, 0)
	for rows.Next() {
		var (
			p                      store.CostPosting
			start, end, createdAt string
		)
		if err := rows.Scan(&p.ID, &p.TenantID, &p.CostCenterID, &p.Item, &p.Amount, &start, &end, &createdAt); err != nil {
			return nil, err
		}

		var err error
		if p.PeriodStart, err = sqlite.ParseDate(start); err != nil {
			return nil, err
		}
		if p.PeriodEnd, err = sqlite.ParseDate(end); err != nil {
			return nil, err
		}
		if p.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

func scanOrderRows(rows *sql.Rows) ([]store.TransportOrder, error) {
	orders := make([]store.TransportOrder, 0)
	for rows.Next() {
		var (
			o         store.TransportOrder
			orderDate string
			vehicleID sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.TenantID, &orderDate, &o.Origin, &o.Destination,
			&o.DistanceKM, &o.Revenue, &vehicleID, &o.Status); err != nil {
			return nil, err
		}

		var err error
		if o.OrderDate, err = sqlite.ParseDate(orderDate); err != nil {
			return nil, err
		}
		o.VehicleID = vehicleID.String
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
