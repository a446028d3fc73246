package costs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetworks/costengine/pkg/adapters"
	"github.com/fleetworks/costengine/pkg/models/api"
	"github.com/fleetworks/costengine/pkg/models/domain"
	"github.com/fleetworks/costengine/pkg/models/store"
	"github.com/fleetworks/costengine/pkg/services/analytics"
	"github.com/fleetworks/costengine/pkg/services/engine"
	"github.com/fleetworks/costengine/pkg/tenant"
)

const (
	defaultTrendMonths = 6
	maxTrendMonths     = 60
)

type Handler struct {
	calculator engine.Calculator
	analytics  analytics.Reader
}

func NewHandler(calculator engine.Calculator, reader analytics.Reader) *Handler {
	return &Handler{
		calculator: calculator,
		analytics:  reader,
	}
}

// Calculate runs the allocation pipeline for the scoped tenant and one
// calendar month. Persistence is skipped when dryRun is set; the
// response shape is identical either way.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	period, err := domain.ParseMonth(r.URL.Query().Get("period"), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	dryRun, ok := boolParam(w, r, "dryRun", false)
	if !ok {
		return
	}
	onlyNonzero, ok := boolParam(w, r, "onlyNonzero", false)
	if !ok {
		return
	}
	includeBreakdowns, ok := boolParam(w, r, "includeBreakdowns", true)
	if !ok {
		return
	}

	var result domain.CalculationResult
	if dryRun {
		result, err = h.calculator.CalculateDry(ctx, period)
	} else {
		result, err = h.calculator.Calculate(ctx, period)
	}
	if err != nil {
		logger.Error().
			Err(err).
			Str("period", period.String()).
			Msg("cost calculation failed")
		writeError(w, err)
		return
	}

	response := adapters.MapCalculationResultDomainToApi(result, dryRun, includeBreakdowns, onlyNonzero)
	encode(w, logger, response)
}

// ListSnapshots returns persisted snapshots. With a period parameter it
// lists exactly that calculation period; without one it pages through
// history, newest period first.
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var (
		snapshots []domain.CostRateSnapshot
		err       error
	)
	if periodParam := r.URL.Query().Get("period"); periodParam != "" {
		var period domain.Period
		period, err = domain.ParseMonth(periodParam, time.Now())
		if err != nil {
			writeError(w, err)
			return
		}
		snapshots, err = h.analytics.PeriodSnapshots(ctx, period)
	} else {
		limit, ok := intParam(w, r, "limit", 0)
		if !ok {
			return
		}
		snapshots, err = h.analytics.SnapshotHistory(ctx, limit)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to list snapshots")
		writeError(w, err)
		return
	}

	response := make([]api.CostRateSnapshot, 0, len(snapshots))
	for _, s := range snapshots {
		response = append(response, adapters.MapSnapshotDomainToApi(s))
	}
	encode(w, logger, response)
}

func (h *Handler) ListBreakdowns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var (
		breakdowns []domain.OrderCostBreakdown
		err        error
	)
	if periodParam := r.URL.Query().Get("period"); periodParam != "" {
		var period domain.Period
		period, err = domain.ParseMonth(periodParam, time.Now())
		if err != nil {
			writeError(w, err)
			return
		}
		breakdowns, err = h.analytics.PeriodBreakdowns(ctx, period)
	} else {
		limit, ok := intParam(w, r, "limit", 0)
		if !ok {
			return
		}
		breakdowns, err = h.analytics.BreakdownHistory(ctx, limit)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to list breakdowns")
		writeError(w, err)
		return
	}

	response := make([]api.OrderCostBreakdown, 0, len(breakdowns))
	for _, b := range breakdowns {
		response = append(response, adapters.MapBreakdownDomainToApi(b))
	}
	encode(w, logger, response)
}

func (h *Handler) KpiSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	period, err := domain.ParseMonth(r.URL.Query().Get("period"), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.analytics.Summary(ctx, period)
	if err != nil {
		logger.Error().
			Err(err).
			Str("period", period.String()).
			Msg("failed to build kpi summary")
		writeError(w, err)
		return
	}
	encode(w, logger, adapters.MapKpiSummaryDomainToApi(summary))
}

func (h *Handler) KpiStructure(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	period, err := domain.ParseMonth(r.URL.Query().Get("period"), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.analytics.CostStructure(ctx, period)
	if err != nil {
		logger.Error().
			Err(err).
			Str("period", period.String()).
			Msg("failed to build cost structure")
		writeError(w, err)
		return
	}
	encode(w, logger, adapters.MapCostStructureDomainToApi(entries))
}

// KpiTrend returns one point per calculated period within the last N
// months, oldest first.
func (h *Handler) KpiTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	months, ok := intParam(w, r, "months", defaultTrendMonths)
	if !ok {
		return
	}
	if months < 1 {
		http.Error(w, "invalid 'months' value, expected a positive integer", http.StatusBadRequest)
		return
	}
	if months > maxTrendMonths {
		months = maxTrendMonths
	}

	now := time.Now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(months - 1), 0)

	points, err := h.analytics.Trend(ctx, since)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build trend")
		writeError(w, err)
		return
	}
	encode(w, logger, adapters.MapTrendDomainToApi(points))
}

func boolParam(w http.ResponseWriter, r *http.Request, name string, fallback bool) (bool, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback, true
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		http.Error(w, "invalid '"+name+"' value, expected true or false", http.StatusBadRequest)
		return false, false
	}
	return parsed, true
}

func intParam(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		http.Error(w, "invalid '"+name+"' value, expected an integer", http.StatusBadRequest)
		return 0, false
	}
	return parsed, true
}

func encode(w http.ResponseWriter, logger *zerolog.Logger, response any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, tenant.ErrNoScope), errors.Is(err, tenant.ErrScopeMismatch):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
