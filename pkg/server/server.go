package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	costshandler "github.com/fleetworks/costengine/pkg/handlers/costs"
	tenantshandler "github.com/fleetworks/costengine/pkg/handlers/tenants"
	costenginemiddleware "github.com/fleetworks/costengine/pkg/server/middleware"
	"github.com/fleetworks/costengine/pkg/services/analytics"
	"github.com/fleetworks/costengine/pkg/services/engine"
	tenantstore "github.com/fleetworks/costengine/pkg/store/sqlite/tenants"
)

const defaultShutdownTimeout = 15 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Calculator engine.Calculator
	Analytics  analytics.Reader
	Directory  tenantstore.Store
	Logger     zerolog.Logger
	// AdminToken gates the tenant directory endpoint and the
	// cross-tenant override. Empty disables both.
	AdminToken string
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	costs := costshandler.NewHandler(deps.Calculator, deps.Analytics)
	directory := tenantshandler.NewHandler(deps.Directory)

	router := chi.NewRouter()

	logger := deps.Logger
	router.Use(costenginemiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.With(costenginemiddleware.Admin(deps.AdminToken)).
			Get("/tenants", directory.ListTenants)

		r.Route("/tenants/{tenantID}/costs", func(r chi.Router) {
			r.Use(costenginemiddleware.TenantScope(deps.Directory, deps.AdminToken))
			r.Post("/calculate", costs.Calculate)
			r.Get("/snapshots", costs.ListSnapshots)
			r.Get("/breakdowns", costs.ListBreakdowns)
			r.Get("/kpi/summary", costs.KpiSummary)
			r.Get("/kpi/structure", costs.KpiStructure)
			r.Get("/kpi/trend", costs.KpiTrend)
		})
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
