package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/stockchef/auth"
	"github.com/diewo77/stockchef/gate"
	"github.com/diewo77/stockchef/i18n"
	"github.com/diewo77/stockchef/internal/inventory"
	"github.com/diewo77/stockchef/internal/menus"
	"github.com/diewo77/stockchef/internal/policy"
	"github.com/diewo77/stockchef/internal/services"
)

// Deps is what the API needs to run.
type Deps struct {
	DB       *gorm.DB
	Issuer   *auth.Issuer
	Workflow menus.Workflow
	Clock    inventory.Clock

	// BudgetThreshold is the per-menu budget used by reports.
	BudgetThreshold float64
}

// NewRouter mounts every endpoint under /api.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()
	ag := policy.NewAuthGate(d.Workflow)
	guard := func(resource string, action gate.Action, h http.HandlerFunc) http.Handler {
		return ag.RequirePermission(resource, action)(h)
	}

	ah := NewAuthHandler(d.DB, d.Issuer)
	ph := NewProduitHandler(services.NewProduitService(d.DB, d.Clock))
	ms := services.NewMenuService(d.DB, d.Workflow)
	mh := NewMenuHandler(ms)
	rh := NewRapportHandler(ms, d.BudgetThreshold)

	// Public
	mux.HandleFunc("POST /api/auth/login", ah.Login)
	mux.Handle("GET /api/auth/me", auth.RequireAuth(http.HandlerFunc(ah.Me)))

	// Stock
	mux.Handle("GET /api/produits", guard(policy.ResourceProduit, gate.ActionList, ph.List))
	mux.Handle("GET /api/produits/{id}", guard(policy.ResourceProduit, gate.ActionView, ph.View))
	mux.Handle("POST /api/produits", guard(policy.ResourceProduit, gate.ActionCreate, ph.Create))
	mux.Handle("PUT /api/produits/{id}", guard(policy.ResourceProduit, gate.ActionUpdate, ph.Update))
	mux.Handle("DELETE /api/produits/{id}", guard(policy.ResourceProduit, gate.ActionDelete, ph.Delete))
	mux.Handle("PATCH /api/produits/{id}/stock", guard(policy.ResourceProduit, gate.ActionUpdate, ph.SetStock))
	mux.Handle("POST /api/inventory/produits/{id}/sortie", guard(policy.ResourceProduit, gate.ActionConsume, ph.Consume))
	mux.Handle("GET /api/inventory/alertes", guard(policy.ResourceAlerte, gate.ActionView, ph.Alerts))

	// Menus
	mux.Handle("GET /api/menus", guard(policy.ResourceMenu, gate.ActionList, mh.List))
	mux.Handle("GET /api/menus/{id}", guard(policy.ResourceMenu, gate.ActionView, mh.View))
	mux.Handle("POST /api/menus", guard(policy.ResourceMenu, gate.ActionCreate, mh.Create))
	mux.Handle("PUT /api/menus/{id}", guard(policy.ResourceMenu, gate.ActionUpdate, mh.Update))
	mux.Handle("DELETE /api/menus/{id}", guard(policy.ResourceMenu, gate.ActionDelete, mh.Delete))
	mux.Handle("POST /api/menus/{id}/ingredients", guard(policy.ResourceMenu, gate.ActionUpdate, mh.AddIngredient))
	mux.Handle("DELETE /api/menus/{id}/ingredients/{produitId}", guard(policy.ResourceMenu, gate.ActionUpdate, mh.RemoveIngredient))
	for _, method := range []string{"POST", "PATCH"} {
		mux.Handle(method+" /api/menus/{id}/confirmer", guard(policy.ResourceMenu, gate.ActionConfirm, mh.Transition(menus.Confirmer)))
		mux.Handle(method+" /api/menus/{id}/annuler", guard(policy.ResourceMenu, gate.ActionCancel, mh.Transition(menus.Annuler)))
		mux.Handle(method+" /api/menus/{id}/realiser", guard(policy.ResourceMenu, gate.ActionFulfil, mh.Transition(menus.Realiser)))
	}

	// Reports
	mux.Handle("GET /api/rapports", guard(policy.ResourceRapport, gate.ActionReport, rh.Report))

	return d.Issuer.Middleware(withLang(mux))
}

// withLang picks the response language from Accept-Language.
func withLang(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}
