package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/diewo77/stockchef/httpx"
	"github.com/diewo77/stockchef/internal/services"
)

// DefaultBudgetThreshold is the per-menu budget used when none is configured.
const DefaultBudgetThreshold = 4.5

// RapportHandler serves the menu cost report.
type RapportHandler struct {
	svc       *services.MenuService
	threshold float64
}

func NewRapportHandler(svc *services.MenuService, threshold float64) *RapportHandler {
	if threshold <= 0 {
		threshold = DefaultBudgetThreshold
	}
	return &RapportHandler{svc: svc, threshold: threshold}
}

// Report handles GET /rapports?from=&to=. An optional seuil overrides the
// configured budget threshold.
func (h *RapportHandler) Report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	threshold := h.threshold
	if s := strings.TrimSpace(q.Get("seuil")); s != "" {
		f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil || f < 0 {
			httpx.JSONError(w, http.StatusBadRequest, "bad_request", "seuil invalide", nil)
			return
		}
		threshold = f
	}
	rep, err := h.svc.Report(r.Context(), q.Get("from"), q.Get("to"), threshold)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rep)
}
