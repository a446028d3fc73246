package tenants

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fleetworks/costengine/pkg/adapters"
	"github.com/fleetworks/costengine/pkg/models/api"
	tenantstore "github.com/fleetworks/costengine/pkg/store/sqlite/tenants"
)

type Handler struct {
	directory tenantstore.Store
}

func NewHandler(directory tenantstore.Store) *Handler {
	return &Handler{directory: directory}
}

func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	records, err := h.directory.ListTenants(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list tenants")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	response := make([]api.Tenant, 0, len(records))
	for _, record := range records {
		response = append(response, adapters.MapTenantDomainToApi(adapters.MapTenantStoreToDomain(record)))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode tenants")
	}
}
