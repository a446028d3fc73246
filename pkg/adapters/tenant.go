package adapters

import (
	"github.com/fleetworks/costengine/pkg/models/api"
	"github.com/fleetworks/costengine/pkg/models/domain"
	"github.com/fleetworks/costengine/pkg/models/store"
)

func MapTenantStoreToDomain(t store.Tenant) domain.Tenant {
	return domain.Tenant{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
}

func MapTenantDomainToApi(t domain.Tenant) api.Tenant {
	return api.Tenant{
		Id:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
}
