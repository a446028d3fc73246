package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CostCenterKind string

const (
	CostCenterVehicle  CostCenterKind = "VEHICLE"
	CostCenterOverhead CostCenterKind = "OVERHEAD"
)

// BasisUnit is the activity measure a cost center's rate is expressed in.
type BasisUnit string

const (
	BasisKM      BasisUnit = "KM"
	BasisHour    BasisUnit = "HOUR"
	BasisTrip    BasisUnit = "TRIP"
	BasisRevenue BasisUnit = "REVENUE"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

type CostCenter struct {
	ID       string
	TenantID string
	Name     string
	Kind     CostCenterKind
	// VehicleID links a VEHICLE center to the vehicle it tracks; empty for
	// overhead centers and for vehicle centers not yet linked.
	VehicleID string
	Driver    string
	Active    bool
}

type CostPosting struct {
	ID           string
	TenantID     string
	CostCenterID string
	Item         string
	Amount       decimal.Decimal
	PeriodStart  time.Time
	PeriodEnd    time.Time
}

type TransportOrder struct {
	ID          string
	TenantID    string
	OrderDate   time.Time
	Origin      string
	Destination string
	DistanceKM  decimal.Decimal
	Revenue     decimal.Decimal
	// VehicleID is empty when no vehicle has been assigned.
	VehicleID string
	Status    OrderStatus
}
