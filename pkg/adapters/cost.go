package adapters

import (
	"github.com/fleetworks/costengine/pkg/models/api"
	"github.com/fleetworks/costengine/pkg/models/domain"
	"github.com/fleetworks/costengine/pkg/models/store"
)

func MapSnapshotDomainToStore(s domain.CostRateSnapshot) store.CostRateSnapshot {
	return store.CostRateSnapshot{
		ID:           s.ID,
		TenantID:     s.TenantID,
		CostCenterID: s.CostCenterID,
		PeriodStart:  s.Period.Start,
		PeriodEnd:    s.Period.End,
		Basis:        string(s.Basis),
		TotalCost:    s.TotalCost,
		TotalUnits:   s.TotalUnits,
		Rate:         s.Rate,
		Status:       string(s.Status),
		GeneratedAt:  s.GeneratedAt,
	}
}

func MapSnapshotStoreToDomain(s store.CostRateSnapshot) domain.CostRateSnapshot {
	return domain.CostRateSnapshot{
		ID:             s.ID,
		TenantID:       s.TenantID,
		CostCenterID:   s.CostCenterID,
		CostCenterName: s.CostCenterName,
		CostCenterKind: domain.CostCenterKind(s.CostCenterKind),
		Period:         domain.Period{Start: s.PeriodStart, End: s.PeriodEnd},
		Basis:          domain.BasisUnit(s.Basis),
		TotalCost:      s.TotalCost,
		TotalUnits:     s.TotalUnits,
		Rate:           s.Rate,
		Status:         domain.SnapshotStatus(s.Status),
		GeneratedAt:    s.GeneratedAt,
	}
}

func MapSnapshotDomainToApi(s domain.CostRateSnapshot) api.CostRateSnapshot {
	return api.CostRateSnapshot{
		Id: s.ID,
		CostCenter: api.CostCenterRef{
			Id:   s.CostCenterID,
			Name: s.CostCenterName,
			Kind: string(s.CostCenterKind),
		},
		PeriodStart: s.Period.Start.Format(domain.DateFormat),
		PeriodEnd:   s.Period.End.Format(domain.DateFormat),
		BasisUnit:   string(s.Basis),
		TotalCost:   s.TotalCost.StringFixed(domain.MoneyPlaces),
		TotalUnits:  s.TotalUnits.StringFixed(domain.MoneyPlaces),
		Rate:        s.Rate.StringFixed(domain.RatePlaces),
		Status:      string(s.Status),
		GeneratedAt: s.GeneratedAt,
	}
}

func MapBreakdownDomainToStore(b domain.OrderCostBreakdown) store.OrderCostBreakdown {
	return store.OrderCostBreakdown{
		ID:            b.ID,
		TenantID:      b.TenantID,
		OrderID:       b.OrderID,
		PeriodStart:   b.Period.Start,
		PeriodEnd:     b.Period.End,
		VehicleAlloc:  b.VehicleAlloc,
		OverheadAlloc: b.OverheadAlloc,
		DirectCost:    b.DirectCost,
		TotalCost:     b.TotalCost,
		Revenue:       b.Revenue,
		Profit:        b.Profit,
		Margin:        b.Margin,
		Status:        string(b.Status),
		GeneratedAt:   b.GeneratedAt,
	}
}

func MapBreakdownStoreToDomain(b store.OrderCostBreakdown) domain.OrderCostBreakdown {
	return domain.OrderCostBreakdown{
		ID:            b.ID,
		TenantID:      b.TenantID,
		OrderID:       b.OrderID,
		Period:        domain.Period{Start: b.PeriodStart, End: b.PeriodEnd},
		VehicleAlloc:  b.VehicleAlloc,
		OverheadAlloc: b.OverheadAlloc,
		DirectCost:    b.DirectCost,
		TotalCost:     b.TotalCost,
		Revenue:       b.Revenue,
		Profit:        b.Profit,
		Margin:        b.Margin,
		Status:        domain.BreakdownStatus(b.Status),
		GeneratedAt:   b.GeneratedAt,
	}
}

func MapBreakdownDomainToApi(b domain.OrderCostBreakdown) api.OrderCostBreakdown {
	return api.OrderCostBreakdown{
		Id:            b.ID,
		OrderId:       b.OrderID,
		PeriodStart:   b.Period.Start.Format(domain.DateFormat),
		PeriodEnd:     b.Period.End.Format(domain.DateFormat),
		VehicleAlloc:  b.VehicleAlloc.StringFixed(domain.MoneyPlaces),
		OverheadAlloc: b.OverheadAlloc.StringFixed(domain.MoneyPlaces),
		DirectCost:    b.DirectCost.StringFixed(domain.MoneyPlaces),
		TotalCost:     b.TotalCost.StringFixed(domain.MoneyPlaces),
		Revenue:       b.Revenue.StringFixed(domain.MoneyPlaces),
		Profit:        b.Profit.StringFixed(domain.MoneyPlaces),
		Margin:        b.Margin.StringFixed(domain.PercentPlaces),
		Status:        string(b.Status),
		GeneratedAt:   b.GeneratedAt,
	}
}
