package adapters

import (
	"github.com/fleetworks/costengine/pkg/models/domain"
	"github.com/fleetworks/costengine/pkg/models/store"
)

func MapCostCenterStoreToDomain(c store.CostCenter) domain.CostCenter {
	return domain.CostCenter{
		ID:        c.ID,
		TenantID:  c.TenantID,
		Name:      c.Name,
		Kind:      domain.CostCenterKind(c.Kind),
		VehicleID: c.VehicleID,
		Driver:    c.Driver,
		Active:    c.Active,
	}
}

func MapPostingStoreToDomain(p store.CostPosting) domain.CostPosting {
	return domain.CostPosting{
		ID:           p.ID,
		TenantID:     p.TenantID,
		CostCenterID: p.CostCenterID,
		Item:         p.Item,
		Amount:       p.Amount,
		PeriodStart:  p.PeriodStart,
		PeriodEnd:    p.PeriodEnd,
	}
}

func MapPostingDomainToStore(p domain.CostPosting) store.CostPosting {
	return store.CostPosting{
		ID:           p.ID,
		TenantID:     p.TenantID,
		CostCenterID: p.CostCenterID,
		Item:         p.Item,
		Amount:       p.Amount,
		PeriodStart:  p.PeriodStart,
		PeriodEnd:    p.PeriodEnd,
	}
}

func MapOrderStoreToDomain(o store.TransportOrder) domain.TransportOrder {
	return domain.TransportOrder{
		ID:          o.ID,
		TenantID:    o.TenantID,
		OrderDate:   o.OrderDate,
		Origin:      o.Origin,
		Destination: o.Destination,
		DistanceKM:  o.DistanceKM,
		Revenue:     o.Revenue,
		VehicleID:   o.VehicleID,
		Status:      domain.OrderStatus(o.Status),
	}
}

func MapOrderDomainToStore(o domain.TransportOrder) store.TransportOrder {
	return store.TransportOrder{
		ID:          o.ID,
		TenantID:    o.TenantID,
		OrderDate:   o.OrderDate,
		Origin:      o.Origin,
		Destination: o.Destination,
		DistanceKM:  o.DistanceKM,
		Revenue:     o.Revenue,
		VehicleID:   o.VehicleID,
		Status:      string(o.Status),
	}
}
