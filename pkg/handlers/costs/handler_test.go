package costs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fleetworks/costengine/pkg/models/api"
	"github.com/fleetworks/costengine/pkg/models/domain"
	"github.com/fleetworks/costengine/pkg/tenant"
)

type mockCalculator struct {
	mock.Mock
}

func (m *mockCalculator) Calculate(ctx context.Context, period domain.Period) (domain.CalculationResult, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(domain.CalculationResult), args.Error(1)
}

func (m *mockCalculator) CalculateDry(ctx context.Context, period domain.Period) (domain.CalculationResult, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(domain.CalculationResult), args.Error(1)
}

type mockReader struct {
	mock.Mock
}

func (m *mockReader) PeriodSnapshots(ctx context.Context, period domain.Period) ([]domain.CostRateSnapshot, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]domain.CostRateSnapshot), args.Error(1)
}

func (m *mockReader) PeriodBreakdowns(ctx context.Context, period domain.Period) ([]domain.OrderCostBreakdown, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]domain.OrderCostBreakdown), args.Error(1)
}

func (m *mockReader) SnapshotHistory(ctx context.Context, limit int) ([]domain.CostRateSnapshot, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.CostRateSnapshot), args.Error(1)
}

func (m *mockReader) BreakdownHistory(ctx context.Context, limit int) ([]domain.OrderCostBreakdown, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.OrderCostBreakdown), args.Error(1)
}

func (m *mockReader) Summary(ctx context.Context, period domain.Period) (domain.KPISummary, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(domain.KPISummary), args.Error(1)
}

func (m *mockReader) CostStructure(ctx context.Context, period domain.Period) ([]domain.CostStructureEntry, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]domain.CostStructureEntry), args.Error(1)
}

func (m *mockReader) Trend(ctx context.Context, since time.Time) ([]domain.TrendPoint, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]domain.TrendPoint), args.Error(1)
}

func TestCalculate(t *testing.T) {
	july := domain.MonthPeriod(2025, time.July)
	generated := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)

	result := domain.CalculationResult{
		Meta: domain.CalculationMeta{
			TenantID:      "t-1",
			Period:        july,
			GeneratedAt:   generated,
			SchemaVersion: domain.SchemaVersion,
			EngineVersion: "1.0.0",
		},
		Summary: domain.CalculationSummary{
			TotalCost:     decimal.RequireFromString("1300.00"),
			TotalRevenue:  decimal.RequireFromString("2000.00"),
			TotalProfit:   decimal.RequireFromString("700.00"),
			AverageMargin: decimal.RequireFromString("35.00"),
		},
	}

	tests := []struct {
		name           string
		query          string
		setupMock      func(*mockCalculator)
		expectedStatus int
		expectDryRun   bool
	}{
		{
			name:  "persisting run",
			query: "period=2025-07",
			setupMock: func(m *mockCalculator) {
				m.On("Calculate", mock.Anything, july).Return(result, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "dry run skips persistence",
			query: "period=2025-07&dryRun=true",
			setupMock: func(m *mockCalculator) {
				m.On("CalculateDry", mock.Anything, july).Return(result, nil)
			},
			expectedStatus: http.StatusOK,
			expectDryRun:   true,
		},
		{
			name:           "invalid period",
			query:          "period=July",
			setupMock:      func(m *mockCalculator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid dryRun flag",
			query:          "period=2025-07&dryRun=maybe",
			setupMock:      func(m *mockCalculator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "missing scope maps to forbidden",
			query: "period=2025-07",
			setupMock: func(m *mockCalculator) {
				m.On("Calculate", mock.Anything, july).
					Return(domain.CalculationResult{}, fmt.Errorf("run calculation: %w", tenant.ErrNoScope))
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:  "engine failure maps to internal error",
			query: "period=2025-07",
			setupMock: func(m *mockCalculator) {
				m.On("Calculate", mock.Anything, july).
					Return(domain.CalculationResult{}, fmt.Errorf("query postings: disk I/O error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := new(mockCalculator)
			tt.setupMock(calc)
			handler := NewHandler(calc, new(mockReader))

			req := httptest.NewRequest("POST", "/calculate?"+tt.query, nil)
			rec := httptest.NewRecorder()

			handler.Calculate(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var response api.CalculationResult
				err := json.NewDecoder(rec.Body).Decode(&response)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectDryRun, response.Meta.DryRun)
				assert.Equal(t, "1300.00", response.Summary.TotalCost)
			}
			calc.AssertExpectations(t)
		})
	}
}

func TestListSnapshots(t *testing.T) {
	july := domain.MonthPeriod(2025, time.July)
	generated := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)

	snapshot := domain.CostRateSnapshot{
		ID:             "snap-1",
		TenantID:       "t-1",
		CostCenterID:   "cc-1",
		CostCenterName: "Vehicle - DEMO-001",
		CostCenterKind: domain.CostCenterVehicle,
		Period:         july,
		Basis:          domain.BasisKM,
		TotalCost:      decimal.RequireFromString("1000.00"),
		TotalUnits:     decimal.RequireFromString("500"),
		Rate:           decimal.RequireFromString("2"),
		Status:         domain.SnapshotOK,
		GeneratedAt:    generated,
	}

	tests := []struct {
		name           string
		query          string
		setupMock      func(*mockReader)
		expectedStatus int
		expectedBody   []api.CostRateSnapshot
	}{
		{
			name:  "single period",
			query: "period=2025-07",
			setupMock: func(m *mockReader) {
				m.On("PeriodSnapshots", mock.Anything, july).
					Return([]domain.CostRateSnapshot{snapshot}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: []api.CostRateSnapshot{{
				Id: "snap-1",
				CostCenter: api.CostCenterRef{
					Id:   "cc-1",
					Name: "Vehicle - DEMO-001",
					Kind: "VEHICLE",
				},
				PeriodStart: "2025-07-01",
				PeriodEnd:   "2025-07-31",
				BasisUnit:   "KM",
				TotalCost:   "1000.00",
				TotalUnits:  "500.00",
				Rate:        "2.000000",
				Status:      "OK",
				GeneratedAt: generated,
			}},
		},
		{
			name:  "history with limit",
			query: "limit=25",
			setupMock: func(m *mockReader) {
				m.On("SnapshotHistory", mock.Anything, 25).
					Return([]domain.CostRateSnapshot{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []api.CostRateSnapshot{},
		},
		{
			name:           "invalid limit",
			query:          "limit=many",
			setupMock:      func(m *mockReader) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := new(mockReader)
			tt.setupMock(reader)
			handler := NewHandler(new(mockCalculator), reader)

			req := httptest.NewRequest("GET", "/snapshots?"+tt.query, nil)
			rec := httptest.NewRecorder()

			handler.ListSnapshots(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var response []api.CostRateSnapshot
				err := json.NewDecoder(rec.Body).Decode(&response)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBody, response)
			}
			reader.AssertExpectations(t)
		})
	}
}

func TestKpiStructure(t *testing.T) {
	july := domain.MonthPeriod(2025, time.July)

	reader := new(mockReader)
	reader.On("CostStructure", mock.Anything, july).Return([]domain.CostStructureEntry{
		{
			CostCenterID:   "cc-1",
			CostCenterName: "Vehicle - DEMO-001",
			Kind:           domain.CostCenterVehicle,
			TotalCost:      decimal.RequireFromString("1000.00"),
			SharePct:       decimal.RequireFromString("76.92"),
		},
		{
			CostCenterID:   "cc-2",
			CostCenterName: "Overhead-General",
			Kind:           domain.CostCenterOverhead,
			TotalCost:      decimal.RequireFromString("300.00"),
			SharePct:       decimal.RequireFromString("23.08"),
		},
	}, nil)
	handler := NewHandler(new(mockCalculator), reader)

	req := httptest.NewRequest("GET", "/kpi/structure?period=2025-07", nil)
	rec := httptest.NewRecorder()

	handler.KpiStructure(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response []api.CostStructureEntry
	err := json.NewDecoder(rec.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, []api.CostStructureEntry{
		{
			CostCenter: api.CostCenterRef{Id: "cc-1", Name: "Vehicle - DEMO-001", Kind: "VEHICLE"},
			TotalCost:  "1000.00",
			SharePct:   "76.92",
		},
		{
			CostCenter: api.CostCenterRef{Id: "cc-2", Name: "Overhead-General", Kind: "OVERHEAD"},
			TotalCost:  "300.00",
			SharePct:   "23.08",
		},
	}, response)
	reader.AssertExpectations(t)
}

func TestKpiTrendRejectsBadMonths(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
	}{
		{name: "zero months", query: "months=0", expectedStatus: http.StatusBadRequest},
		{name: "negative months", query: "months=-2", expectedStatus: http.StatusBadRequest},
		{name: "non numeric months", query: "months=lots", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(new(mockCalculator), new(mockReader))

			req := httptest.NewRequest("GET", "/kpi/trend?"+tt.query, nil)
			rec := httptest.NewRecorder()

			handler.KpiTrend(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
