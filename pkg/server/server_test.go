package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fleetworks/costengine/pkg/models/api"
	"github.com/fleetworks/costengine/pkg/models/domain"
	"github.com/fleetworks/costengine/pkg/models/store"
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

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) CreateTenant(ctx context.Context, name string) (store.Tenant, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(store.Tenant), args.Error(1)
}

func (m *mockDirectory) GetTenantByID(ctx context.Context, id string) (store.Tenant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.Tenant), args.Error(1)
}

func (m *mockDirectory) GetTenantByName(ctx context.Context, name string) (store.Tenant, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(store.Tenant), args.Error(1)
}

func (m *mockDirectory) ListTenants(ctx context.Context) ([]store.Tenant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.Tenant), args.Error(1)
}

func (m *mockDirectory) CreateVehicle(ctx context.Context, tenantID, plate, name string) (store.Vehicle, error) {
	args := m.Called(ctx, tenantID, plate, name)
	return args.Get(0).(store.Vehicle), args.Error(1)
}

func (m *mockDirectory) CreateCostCenter(ctx context.Context, center store.CostCenter) (store.CostCenter, error) {
	args := m.Called(ctx, center)
	return args.Get(0).(store.CostCenter), args.Error(1)
}

func matchScope(tenantID string) interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		scope, ok := tenant.ScopeFromContext(ctx)
		return ok && scope.TenantID == tenantID
	})
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	mockCalc := new(mockCalculator)
	mockAnalytics := new(mockReader)
	mockDir := new(mockDirectory)

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Calculator: mockCalc,
			Analytics:  mockAnalytics,
			Directory:  mockDir,
			Logger:     logger,
			AdminToken: "topsecret",
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	july := domain.MonthPeriod(2025, time.July)
	generated := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)
	created := time.Date(2025, time.January, 5, 9, 30, 0, 0, time.UTC)

	demoTenant := store.Tenant{ID: "t-1", Name: "Demo Fleet Ops", CreatedAt: created}

	calcResult := domain.CalculationResult{
		Meta: domain.CalculationMeta{
			TenantID:      "t-1",
			Period:        july,
			GeneratedAt:   generated,
			SchemaVersion: domain.SchemaVersion,
			EngineVersion: "1.0.0",
		},
		Summary: domain.CalculationSummary{
			TotalCost:      decimal.RequireFromString("1300.00"),
			TotalRevenue:   decimal.RequireFromString("2000.00"),
			TotalProfit:    decimal.RequireFromString("700.00"),
			AverageMargin:  decimal.RequireFromString("35.00"),
			SnapshotCount:  2,
			BreakdownCount: 1,
			OrderCount:     1,
		},
	}

	tests := []struct {
		name           string
		method         string
		path           string
		headers        map[string]string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:    "Calculate",
			method:  http.MethodPost,
			path:    "/api/v1/tenants/t-1/costs/calculate?period=2025-07",
			headers: map[string]string{"X-Tenant-ID": "t-1"},
			setupMocks: func() {
				mockDir.On("GetTenantByID", mock.Anything, "t-1").Return(demoTenant, nil)
				mockCalc.On("Calculate", matchScope("t-1"), july).Return(calcResult, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.CalculationResult{
				Meta: api.CalculationMeta{
					TenantId:      "t-1",
					PeriodStart:   "2025-07-01",
					PeriodEnd:     "2025-07-31",
					GeneratedAt:   generated,
					SchemaVersion: domain.SchemaVersion,
					EngineVersion: "1.0.0",
				},
				Snapshots: []api.CostRateSnapshot{},
				Summary: api.CalculationSummary{
					TotalCost:      "1300.00",
					TotalRevenue:   "2000.00",
					TotalProfit:    "700.00",
					AverageMargin:  "35.00",
					SnapshotCount:  2,
					BreakdownCount: 1,
					OrderCount:     1,
				},
			},
			parseResponse: unmarshalResponse[api.CalculationResult](),
		},
		{
			name:           "Calculate_InvalidPeriod",
			method:         http.MethodPost,
			path:           "/api/v1/tenants/t-1/costs/calculate?period=2025-13",
			headers:        map[string]string{"X-Tenant-ID": "t-1"},
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       "validation failed: invalid period \"2025-13\", expected YYYY-MM or 'current'\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:           "Calculate_ScopeMismatch",
			method:         http.MethodPost,
			path:           "/api/v1/tenants/t-1/costs/calculate?period=2025-07",
			headers:        map[string]string{"X-Tenant-ID": "t-2"},
			setupMocks:     func() {},
			expectedStatus: http.StatusForbidden,
			expected:       "tenant scope mismatch\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:    "Calculate_UnknownTenant",
			method:  http.MethodPost,
			path:    "/api/v1/tenants/ghost/costs/calculate?period=2025-07",
			headers: map[string]string{"X-Tenant-ID": "ghost"},
			setupMocks: func() {
				mockDir.On("GetTenantByID", mock.Anything, "ghost").
					Return(store.Tenant{}, store.ErrNotFound)
				mockDir.On("GetTenantByName", mock.Anything, "ghost").
					Return(store.Tenant{}, store.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expected:       "unknown tenant\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:    "ListSnapshots_AdminOverride",
			method:  http.MethodGet,
			path:    "/api/v1/tenants/t-1/costs/snapshots",
			headers: map[string]string{"X-Admin-Token": "topsecret"},
			setupMocks: func() {
				mockAnalytics.On("SnapshotHistory", matchScope("t-1"), 0).
					Return([]domain.CostRateSnapshot{}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       []api.CostRateSnapshot{},
			parseResponse:  unmarshalResponse[[]api.CostRateSnapshot](),
		},
		{
			name:    "KpiSummary",
			method:  http.MethodGet,
			path:    "/api/v1/tenants/t-1/costs/kpi/summary?period=2025-07",
			headers: map[string]string{"X-Tenant-ID": "t-1"},
			setupMocks: func() {
				mockAnalytics.On("Summary", matchScope("t-1"), july).Return(domain.KPISummary{
					Period:         july,
					TotalCost:      decimal.RequireFromString("1300.00"),
					TotalRevenue:   decimal.RequireFromString("2000.00"),
					TotalProfit:    decimal.RequireFromString("700.00"),
					AverageMargin:  decimal.RequireFromString("35.00"),
					SnapshotCount:  2,
					BreakdownCount: 1,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.KpiSummary{
				PeriodStart:    "2025-07-01",
				PeriodEnd:      "2025-07-31",
				TotalCost:      "1300.00",
				TotalRevenue:   "2000.00",
				TotalProfit:    "700.00",
				AverageMargin:  "35.00",
				SnapshotCount:  2,
				BreakdownCount: 1,
			},
			parseResponse: unmarshalResponse[api.KpiSummary](),
		},
		{
			name:    "KpiTrend",
			method:  http.MethodGet,
			path:    "/api/v1/tenants/t-1/costs/kpi/trend?months=3",
			headers: map[string]string{"X-Tenant-ID": "t-1"},
			setupMocks: func() {
				mockAnalytics.On("Trend", matchScope("t-1"), mock.MatchedBy(func(since time.Time) bool {
					// The cutoff is always the first day of a month.
					return since.Day() == 1
				})).Return([]domain.TrendPoint{{
					Period:       july,
					TotalCost:    decimal.RequireFromString("1300.00"),
					TotalRevenue: decimal.RequireFromString("2000.00"),
					TotalProfit:  decimal.RequireFromString("700.00"),
					OrderCount:   1,
				}}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: []api.TrendPoint{{
				PeriodStart:  "2025-07-01",
				PeriodEnd:    "2025-07-31",
				TotalCost:    "1300.00",
				TotalRevenue: "2000.00",
				TotalProfit:  "700.00",
				OrderCount:   1,
			}},
			parseResponse: unmarshalResponse[[]api.TrendPoint](),
		},
		{
			name:           "ListTenants_NoToken",
			method:         http.MethodGet,
			path:           "/api/v1/tenants",
			setupMocks:     func() {},
			expectedStatus: http.StatusForbidden,
			expected:       "admin access required\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:    "ListTenants_WithToken",
			method:  http.MethodGet,
			path:    "/api/v1/tenants",
			headers: map[string]string{"X-Admin-Token": "topsecret"},
			setupMocks: func() {
				mockDir.On("ListTenants", mock.Anything).
					Return([]store.Tenant{demoTenant}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: []api.Tenant{{
				Id:        "t-1",
				Name:      "Demo Fleet Ops",
				CreatedAt: created,
			}},
			parseResponse: unmarshalResponse[[]api.Tenant](),
		},
		{
			name:           "Healthz",
			method:         http.MethodGet,
			path:           "/healthz",
			setupMocks:     func() {},
			expectedStatus: http.StatusOK,
			expected:       "ok",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, nil)
			require.NoError(t, err, "Failed to build request")
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			resp, err := testServer.Client().Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
