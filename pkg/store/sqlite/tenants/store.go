// Package tenants is the administrative directory: tenant, vehicle and
// cost center records. Its operations take explicit tenant arguments and
// run outside the ambient tenant scope; it is the whitelisted surface for
// provisioning, seeding and tests.
package tenants

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetworks/costengine/pkg/models/store"
	"github.com/fleetworks/costengine/pkg/store/sqlite"
)

type Store interface {
	CreateTenant(ctx context.Context, name string) (store.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (store.Tenant, error)
	GetTenantByName(ctx context.Context, name string) (store.Tenant, error)
	ListTenants(ctx context.Context) ([]store.Tenant, error)
	CreateVehicle(ctx context.Context, tenantID, plate, name string) (store.Vehicle, error)
	CreateCostCenter(ctx context.Context, center store.CostCenter) (store.CostCenter, error)
}

type tenantStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &tenantStore{db: db}, nil
}

func (s *tenantStore) CreateTenant(ctx context.Context, name string) (store.Tenant, error) {
	if name == "" {
		return store.Tenant{}, fmt.Errorf("tenant name is required")
	}

	t := store.Tenant{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tenants (id, name, created_at) VALUES (?, ?, ?)`,
		t.ID, t.Name, sqlite.FormatTime(t.CreatedAt),
	)
	if err != nil {
		return store.Tenant{}, fmt.Errorf("insert tenant: %w", err)
	}
	return t, nil
}

func (s *tenantStore) GetTenantByID(ctx context.Context, id string) (store.Tenant, error) {
	return s.getTenant(ctx, `SELECT id, name, created_at FROM tenants WHERE id = ?`, id)
}

func (s *tenantStore) GetTenantByName(ctx context.Context, name string) (store.Tenant, error) {
	return s.getTenant(ctx, `SELECT id, name, created_at FROM tenants WHERE name = ?`, name)
}

func (s *tenantStore) getTenant(ctx context.Context, query string, arg any) (store.Tenant, error) {
	var (
		t         store.Tenant
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&t.ID, &t.Name, &createdAt)
	if err == sql.ErrNoRows {
		return store.Tenant{}, store.ErrNotFound
	}
	if err != nil {
		return store.Tenant{}, fmt.Errorf("query tenant: %w", err)
	}

	t.CreatedAt, err = sqlite.ParseTime(createdAt)
	if err != nil {
		return store.Tenant{}, err
	}
	return t, nil
}

func (s *tenantStore) ListTenants(ctx context.Context) ([]store.Tenant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM tenants ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]store.Tenant, 0)
	for rows.Next() {
		var (
			t         store.Tenant
			createdAt string
		)
		if err := rows.Scan(&t.ID, &t.Name, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt, err = sqlite.ParseTime(createdAt)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (s *tenantStore) CreateVehicle(ctx context.Context, tenantID, plate, name string) (store.Vehicle, error) {
	if tenantID == "" {
		return store.Vehicle{}, fmt.Errorf("tenant id is required")
	}
	if plate == "" {
		return store.Vehicle{}, fmt.Errorf("vehicle plate is required")
	}

	v := store.Vehicle{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Plate:    plate,
		Name:     name,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO vehicles (id, tenant_id, plate, name) VALUES (?, ?, ?, ?)`,
		v.ID, v.TenantID, v.Plate, v.Name,
	)
	if err != nil {
		return store.Vehicle{}, fmt.Errorf("insert vehicle: %w", err)
	}
	return v, nil
}

func (s *tenantStore) CreateCostCenter(ctx context.Context, center store.CostCenter) (store.CostCenter, error) {
	if center.TenantID == "" {
		return store.CostCenter{}, fmt.Errorf("tenant id is required")
	}
	if center.Name == "" {
		return store.CostCenter{}, fmt.Errorf("cost center name is required")
	}

	center.ID = uuid.NewString()

	var vehicleID any
	if center.VehicleID != "" {
		vehicleID = center.VehicleID
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cost_centers (id, tenant_id, name, kind, vehicle_id, driver, active)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		center.ID, center.TenantID, center.Name, center.Kind, vehicleID, center.Driver, center.Active,
	)
	if err != nil {
		return store.CostCenter{}, fmt.Errorf("insert cost center: %w", err)
	}
	return center, nil
}
