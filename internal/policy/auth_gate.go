package policy

import (
	"context"
	"errors"
	"net/http"

	"github.com/diewo77/stockchef/auth"
	"github.com/diewo77/stockchef/gate"
	"github.com/diewo77/stockchef/httpx"
	"github.com/diewo77/stockchef/internal/menus"
)

// AuthGate is the configured gate keyed by role, with the kitchen resource
// policies registered.
type AuthGate struct {
	Gate *gate.Gate[auth.Role]
}

// NewAuthGate builds the gate over the static role table.
func NewAuthGate(wf menus.Workflow) *AuthGate {
	g := gate.New[auth.Role](NewResolver())
	g.Register(ResourceMenu, NewMenuPolicy(wf))
	g.Register(ResourceProduit, NewProduitPolicy())
	return &AuthGate{Gate: g}
}

// Authorize checks the caller's role, taken from the request context.
func (ag *AuthGate) Authorize(ctx context.Context, action gate.Action, resourceType string, resource any) error {
	return ag.Gate.Authorize(ctx, auth.RoleFromContext(ctx), action, resourceType, resource)
}

func (ag *AuthGate) Can(ctx context.Context, action gate.Action, resourceType string, resource any) bool {
	return ag.Authorize(ctx, action, resourceType, resource) == nil
}

// RequirePermission returns middleware checking the profile permission only.
func (ag *AuthGate) RequirePermission(resourceType string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := ag.Authorize(r.Context(), action, resourceType, nil); err != nil {
				WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteError maps a gate error to a JSON response.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gate.ErrUnauthorized):
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", "", nil)
	default:
		httpx.JSONError(w, http.StatusForbidden, "forbidden", err.Error(), nil)
	}
}
