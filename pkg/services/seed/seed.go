// Package seed provisions the demo fixture used by examples and smoke
// tests: one tenant with a single truck, a linked vehicle cost center,
// an overhead center, two postings and one completed order.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetworks/costengine/pkg/models/domain"
	"github.com/fleetworks/costengine/pkg/models/store"
	"github.com/fleetworks/costengine/pkg/store/sqlite/activity"
	"github.com/fleetworks/costengine/pkg/store/sqlite/tenants"
	"github.com/fleetworks/costengine/pkg/tenant"
)

const (
	DemoTenantName = "Demo Fleet Ops"

	demoPlate          = "DEMO-001"
	demoVehicleName    = "Demo Truck"
	demoOverheadCenter = "Overhead-General"
)

// Demo creates the demo tenant and its activity for the given period.
// Once the tenant exists the call is a no-op, so reseeding an existing
// database never duplicates postings or orders.
func Demo(ctx context.Context, db *sql.DB, period domain.Period) (store.Tenant, error) {
	directory, err := tenants.NewStore(db)
	if err != nil {
		return store.Tenant{}, err
	}
	activityStore, err := activity.NewStore(db)
	if err != nil {
		return store.Tenant{}, err
	}

	existing, err := directory.GetTenantByName(ctx, DemoTenantName)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return store.Tenant{}, fmt.Errorf("look up demo tenant: %w", err)
	}

	t, err := directory.CreateTenant(ctx, DemoTenantName)
	if err != nil {
		return store.Tenant{}, fmt.Errorf("create demo tenant: %w", err)
	}

	vehicle, err := directory.CreateVehicle(ctx, t.ID, demoPlate, demoVehicleName)
	if err != nil {
		return store.Tenant{}, fmt.Errorf("create demo vehicle: %w", err)
	}

	vehicleCenter, err := directory.CreateCostCenter(ctx, store.CostCenter{
		TenantID:  t.ID,
		Name:      fmt.Sprintf("Vehicle - %s", demoPlate),
		Kind:      string(domain.CostCenterVehicle),
		VehicleID: vehicle.ID,
		Active:    true,
	})
	if err != nil {
		return store.Tenant{}, fmt.Errorf("create vehicle cost center: %w", err)
	}

	overheadCenter, err := directory.CreateCostCenter(ctx, store.CostCenter{
		TenantID: t.ID,
		Name:     demoOverheadCenter,
		Kind:     string(domain.CostCenterOverhead),
		Active:   true,
	})
	if err != nil {
		return store.Tenant{}, fmt.Errorf("create overhead cost center: %w", err)
	}

	scoped := tenant.WithScope(ctx, tenant.Scope{TenantID: t.ID})

	postings := []store.CostPosting{
		{
			CostCenterID: vehicleCenter.ID,
			Item:         "Fuel and maintenance",
			Amount:       decimal.NewFromInt(1000),
			PeriodStart:  period.Start,
			PeriodEnd:    period.End,
		},
		{
			CostCenterID: overheadCenter.ID,
			Item:         "Office rent",
			Amount:       decimal.NewFromInt(300),
			PeriodStart:  period.Start,
			PeriodEnd:    period.End,
		},
	}
	for _, posting := range postings {
		if err := activityStore.AddCostPosting(scoped, posting); err != nil {
			return store.Tenant{}, fmt.Errorf("seed posting %q: %w", posting.Item, err)
		}
	}

	order := store.TransportOrder{
		OrderDate:   period.Start.AddDate(0, 0, 9),
		Origin:      "Athens",
		Destination: "Thessaloniki",
		DistanceKM:  decimal.NewFromInt(500),
		Revenue:     decimal.NewFromInt(2000),
		VehicleID:   vehicle.ID,
		Status:      string(domain.OrderCompleted),
	}
	if err := activityStore.AddTransportOrder(scoped, order); err != nil {
		return store.Tenant{}, fmt.Errorf("seed transport order: %w", err)
	}

	return t, nil
}
