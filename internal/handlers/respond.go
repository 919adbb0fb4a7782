// Package handlers exposes the kitchen services as a JSON API shaped like the
// inventory backend the clients talk to.
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/diewo77/stockchef/httpx"
	"github.com/diewo77/stockchef/i18n"
	"github.com/diewo77/stockchef/internal/menus"
	"github.com/diewo77/stockchef/internal/models"
	"github.com/diewo77/stockchef/internal/services"
)

// SpringPage is the paged list shape of the backend.
type SpringPage[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func toSpringPage[T any, V any](p models.Page[T], conv func(T) V) SpringPage[V] {
	content := make([]V, len(p.Content))
	for i, x := range p.Content {
		content[i] = conv(x)
	}
	pages := 0
	if p.Size > 0 {
		pages = int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
	}
	return SpringPage[V]{
		Content:       content,
		Number:        p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    pages,
		First:         p.Page == 0,
		Last:          p.Page >= pages-1,
	}
}

func pageQuery(r *http.Request) models.PageQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	search := q.Get("search")
	if search == "" {
		search = q.Get("q")
	}
	return models.PageQuery{Page: page, Size: size, Search: search}.Normalize()
}

// pathID reads the {id} path value. It writes a 400 and returns false when
// the value is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "bad_id", "identifiant invalide", nil)
		return 0, false
	}
	return uint(id), true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return false
	}
	return true
}

// writeError maps a service error to a status code and JSON body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	lang := i18n.LangFromContext(r.Context())
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		msgs := verr.Violations.Messages(lang)
		httpx.JSONError(w, http.StatusBadRequest, "validation", msgs[0], verr.Violations)
	case errors.Is(err, services.ErrStockInsufficient):
		httpx.JSONError(w, http.StatusBadRequest, "stock_insufficient", err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", i18n.T(lang, "not_found"), nil)
	case errors.Is(err, services.ErrNotEditable),
		errors.Is(err, menus.ErrTerminalState),
		errors.Is(err, menus.ErrInvalidTransition):
		httpx.JSONError(w, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal", i18n.T(lang, "generic_error"), nil)
	}
}
