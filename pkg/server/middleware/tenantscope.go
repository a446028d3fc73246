package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fleetworks/costengine/pkg/models/store"
	"github.com/fleetworks/costengine/pkg/store/sqlite/tenants"
	"github.com/fleetworks/costengine/pkg/tenant"
)

// TenantScope resolves the {tenantID} path segment against the tenant
// directory and binds the request context to that tenant. The path
// tenant is authoritative: the caller's X-Tenant-ID header must name
// the same tenant, unless a matching X-Admin-Token grants access to
// any tenant. An empty configured admin token disables the override.
func TenantScope(directory tenants.Store, adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			ref := chi.URLParam(req, "tenantID")

			t, err := directory.GetTenantByID(ctx, ref)
			if errors.Is(err, store.ErrNotFound) {
				t, err = directory.GetTenantByName(ctx, ref)
			}
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, "unknown tenant", http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, "tenant lookup failed", http.StatusInternalServerError)
				return
			}

			if !callerMayAccess(req, t.ID, adminToken) {
				http.Error(w, "tenant scope mismatch", http.StatusForbidden)
				return
			}

			ctx = tenant.WithScope(ctx, tenant.Scope{TenantID: t.ID})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// Admin gates endpoints that operate across tenants. With no token
// configured the surface stays closed.
func Admin(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if adminToken == "" || req.Header.Get("X-Admin-Token") != adminToken {
				http.Error(w, "admin access required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func callerMayAccess(req *http.Request, tenantID, adminToken string) bool {
	if adminToken != "" && req.Header.Get("X-Admin-Token") == adminToken {
		return true
	}
	return req.Header.Get("X-Tenant-ID") == tenantID
}
