package handlers

import (
	"net/http"

	"github.com/diewo77/stockchef/httpx"
	"github.com/diewo77/stockchef/internal/models"
	"github.com/diewo77/stockchef/internal/services"
)

type ProduitHandler struct {
	svc *services.ProduitService
}

func NewProduitHandler(svc *services.ProduitService) *ProduitHandler {
	return &ProduitHandler{svc: svc}
}

func identity[T any](x T) T { return x }

func (h *ProduitHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), pageQuery(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSpringPage(page, identity[models.Product]))
}

func (h *ProduitHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *ProduitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *ProduitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.ProductInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *ProduitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

type stockRequest struct {
	Quantite float64 `json:"quantite"`
}

// SetStock handles PATCH /produits/{id}/stock.
func (h *ProduitHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req stockRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.svc.SetStock(r.Context(), id, req.Quantite)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Consume handles POST /inventory/produits/{id}/sortie.
func (h *ProduitHandler) Consume(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.ConsumeRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.svc.Consume(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Alerts handles GET /inventory/alertes.
func (h *ProduitHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Alerts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rep)
}
