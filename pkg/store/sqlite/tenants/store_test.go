package tenants

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetworks/costengine/pkg/models/store"
	"github.com/fleetworks/costengine/pkg/store/sqlite"
	"github.com/fleetworks/costengine/pkg/store/sqlite/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sqlite.NewDB(sqlite.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, migrations.Up(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTenantStore(t *testing.T) {
	db := setupTestDB(t)
	s, err := NewStore(db)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("create and fetch tenant", func(t *testing.T) {
		created, err := s.CreateTenant(ctx, "Hellas Logistics")
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		byID, err := s.GetTenantByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Name, byID.Name)

		byName, err := s.GetTenantByName(ctx, "Hellas Logistics")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byName.ID)
	})

	t.Run("unknown tenant yields ErrNotFound", func(t *testing.T) {
		_, err := s.GetTenantByID(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.GetTenantByName(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate tenant name is rejected", func(t *testing.T) {
		_, err := s.CreateTenant(ctx, "Hellas Logistics")
		assert.Error(t, err)
	})

	t.Run("list is sorted by name", func(t *testing.T) {
		_, err := s.CreateTenant(ctx, "Aegean Cargo")
		require.NoError(t, err)

		tenants, err := s.ListTenants(ctx)
		require.NoError(t, err)
		require.Len(t, tenants, 2)
		assert.Equal(t, "Aegean Cargo", tenants[0].Name)
		assert.Equal(t, "Hellas Logistics", tenants[1].Name)
	})
}

func TestVehicleAndCostCenter(t *testing.T) {
	db := setupTestDB(t)
	s, err := NewStore(db)
	require.NoError(t, err)
	ctx := context.Background()

	tn, err := s.CreateTenant(ctx, "Demo Fleet")
	require.NoError(t, err)

	vehicle, err := s.CreateVehicle(ctx, tn.ID, "DEMO-001", "Demo truck")
	require.NoError(t, err)
	assert.NotEmpty(t, vehicle.ID)

	t.Run("vehicle center links to vehicle", func(t *testing.T) {
		center, err := s.CreateCostCenter(ctx, store.CostCenter{
			TenantID:  tn.ID,
			Name:      "Vehicle - DEMO-001",
			Kind:      "VEHICLE",
			VehicleID: vehicle.ID,
			Active:    true,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, center.ID)
	})

	t.Run("overhead center without vehicle", func(t *testing.T) {
		center, err := s.CreateCostCenter(ctx, store.CostCenter{
			TenantID: tn.ID,
			Name:     "Overhead-General",
			Kind:     "OVERHEAD",
			Active:   true,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, center.ID)
	})

	t.Run("duplicate center name per tenant is rejected", func(t *testing.T) {
		_, err := s.CreateCostCenter(ctx, store.CostCenter{
			TenantID: tn.ID,
			Name:     "Overhead-General",
			Kind:     "OVERHEAD",
			Active:   true,
		})
		assert.Error(t, err)
	})
}
