package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/stockchef/httpx"
	"github.com/diewo77/stockchef/internal/menus"
	"github.com/diewo77/stockchef/internal/models"
	"github.com/diewo77/stockchef/internal/services"
)

// MenuView is a menu with its derived cost and margin.
type MenuView struct {
	models.Menu
	CoutTotal float64            `json:"coutTotal"`
	Marge     *float64           `json:"marge,omitempty"`
	Actions   []menus.Transition `json:"actions"`
}

func newMenuView(wf menus.Workflow) func(models.Menu) MenuView {
	return func(m models.Menu) MenuView {
		if m.Items == nil {
			m.Items = []models.MenuItem{}
		}
		total := menus.Total(m.Items)
		v := MenuView{
			Menu:      m,
			CoutTotal: total.Round(2).InexactFloat64(),
			Actions:   wf.Allowed(m.Statut),
		}
		if v.Actions == nil {
			v.Actions = []menus.Transition{}
		}
		if marge, ok := menus.Margin(m.PrixVente, total); ok {
			f := marge.Round(2).InexactFloat64()
			v.Marge = &f
		}
		return v
	}
}

type MenuHandler struct {
	svc  *services.MenuService
	view func(models.Menu) MenuView
}

func NewMenuHandler(svc *services.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc, view: newMenuView(svc.Workflow())}
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), pageQuery(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSpringPage(page, h.view))
}

func (h *MenuHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.view(*m))
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMenuRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, h.view(*m))
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.CreateMenuRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.view(*m))
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *MenuHandler) AddIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.AddIngredientRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := h.svc.AddIngredient(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, h.view(*m))
}

// Transition returns the handler for POST /menus/{id}/<t>.
func (h *MenuHandler) Transition(t menus.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		m, err := h.svc.Transition(r.Context(), id, t)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, h.view(*m))
	}
}

// RemoveIngredient handles DELETE /menus/{id}/ingredients/{produitId}.
func (h *MenuHandler) RemoveIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	produitID, err := strconv.ParseUint(r.PathValue("produitId"), 10, 64)
	if err != nil || produitID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "bad_id", "identifiant invalide", nil)
		return
	}
	m, err := h.svc.RemoveIngredient(r.Context(), id, uint(produitID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.view(*m))
}
