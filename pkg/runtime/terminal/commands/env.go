package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fleetworks/costengine/pkg/models/store"
	"github.com/fleetworks/costengine/pkg/services/analytics"
	"github.com/fleetworks/costengine/pkg/services/config"
	"github.com/fleetworks/costengine/pkg/services/engine"
	"github.com/fleetworks/costengine/pkg/store/sqlite"
	"github.com/fleetworks/costengine/pkg/store/sqlite/activity"
	"github.com/fleetworks/costengine/pkg/store/sqlite/migrations"
	"github.com/fleetworks/costengine/pkg/store/sqlite/results"
	"github.com/fleetworks/costengine/pkg/store/sqlite/tenants"
)

// env is the per-invocation runtime a command works against: the
// profile's database plus the services built on it. Opening an env
// brings the schema up to date, so commands work on a fresh profile
// without a prior migrate run.
type env struct {
	db         *sql.DB
	directory  tenants.Store
	calculator engine.Calculator
	analytics  analytics.Reader
}

func openEnv(ctx context.Context, registry config.Registry, profileName string) (*env, error) {
	profile, err := registry.GetProfile(ctx, profileName)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: profile.DBPath})
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	directory, err := tenants.NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	activityStore, err := activity.NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	resultStore, err := results.NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	calculator, err := engine.NewCalculator(db, activityStore, resultStore)
	if err != nil {
		db.Close()
		return nil, err
	}
	reader, err := analytics.NewReader(resultStore)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &env{
		db:         db,
		directory:  directory,
		calculator: calculator,
		analytics:  reader,
	}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}

// resolveTenant accepts a tenant name or id, name taking precedence.
func (e *env) resolveTenant(ctx context.Context, ref string) (store.Tenant, error) {
	t, err := e.directory.GetTenantByName(ctx, ref)
	if errors.Is(err, store.ErrNotFound) {
		t, err = e.directory.GetTenantByID(ctx, ref)
	}
	if errors.Is(err, store.ErrNotFound) {
		return store.Tenant{}, fmt.Errorf("unknown tenant %q", ref)
	}
	if err != nil {
		return store.Tenant{}, fmt.Errorf("resolve tenant %q: %w", ref, err)
	}
	return t, nil
}
