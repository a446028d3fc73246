// Package tenant carries the active tenant scope through context. Every
// data-access call is bound by it: reads outside a scope return empty
// result sets, writes and calculations outside a scope fail hard. There
// is no fallback tenant.
package tenant

import (
	"context"
	"errors"
)

var (
	// ErrNoScope is returned when a write or calculation runs without an
	// active tenant scope.
	ErrNoScope = errors.New("no tenant scope in context")
	// ErrScopeMismatch is returned when an operation names a tenant other
	// than the one the context is scoped to.
	ErrScopeMismatch = errors.New("tenant scope mismatch")
)

// Scope identifies the tenant all data access in a context is bound to.
type Scope struct {
	TenantID string
}

type scopeKey struct{}

// WithScope derives a context bound to the given tenant. Nested calls
// override the scope for the derived context only; the parent context
// keeps its own scope.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

func ScopeFromContext(ctx context.Context) (Scope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(Scope)
	if !ok || scope.TenantID == "" {
		return Scope{}, false
	}
	return scope, true
}

// RequireScope returns the active scope or ErrNoScope. Write paths and
// the engine entry point call this before touching the store.
func RequireScope(ctx context.Context) (Scope, error) {
	scope, ok := ScopeFromContext(ctx)
	if !ok {
		return Scope{}, ErrNoScope
	}
	return scope, nil
}
