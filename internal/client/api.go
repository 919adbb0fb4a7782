package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/diewo77/stockchef/internal/inventory"
	"github.com/diewo77/stockchef/internal/models"
)

// PageQuery selects a page of a list endpoint.
type PageQuery = models.PageQuery

func pageValues(q PageQuery) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

func idPath(prefix string, id uint, suffix ...string) string {
	p := prefix + "/" + strconv.FormatUint(uint64(id), 10)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// ListProduits fetches one page of products.
func (c *Client) ListProduits(ctx context.Context, q PageQuery) (models.Page[models.Product], error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/produits", pageValues(q), nil, &raw); err != nil {
		return models.Page[models.Product]{}, err
	}
	return decodePage(raw, produitWire.product)
}

func (c *Client) GetProduit(ctx context.Context, id uint) (models.Product, error) {
	var w produitWire
	if err := c.do(ctx, http.MethodGet, idPath("/produits", id), nil, nil, &w); err != nil {
		return models.Product{}, err
	}
	return w.product(), nil
}

func (c *Client) CreateProduit(ctx context.Context, np models.NewProduit) (models.Product, error) {
	var w produitWire
	if err := c.do(ctx, http.MethodPost, "/produits", nil, np, &w); err != nil {
		return models.Product{}, err
	}
	return w.product(), nil
}

func (c *Client) UpdateProduit(ctx context.Context, id uint, np models.NewProduit) (models.Product, error) {
	var w produitWire
	if err := c.do(ctx, http.MethodPut, idPath("/produits", id), nil, np, &w); err != nil {
		return models.Product{}, err
	}
	return w.product(), nil
}

func (c *Client) DeleteProduit(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, idPath("/produits", id), nil, nil, nil)
}

// ConsommerProduit withdraws quantite from a product's stock. A 400 answer
// is reported as ErrStockInsufficient with the server's message.
func (c *Client) ConsommerProduit(ctx context.Context, id uint, quantite float64, motif string) (models.Product, error) {
	var w produitWire
	err := c.do(ctx, http.MethodPost, idPath("/inventory/produits", id, "sortie"), nil,
		models.ConsumeRequest{Quantite: quantite, Motif: motif}, &w)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
		return models.Product{}, fmt.Errorf("%w: %s", ErrStockInsufficient, apiErr.Message)
	}
	if err != nil {
		return models.Product{}, err
	}
	return w.product(), nil
}

// AlertReport is the answer of GET /inventory/alertes.
type AlertReport struct {
	Date     string            `json:"date"`
	Summary  inventory.Summary `json:"resume"`
	Perimes  []models.Product  `json:"perimes"`
	Proches  []models.Product  `json:"prochesExpiration"`
	StockBas []models.Product  `json:"stockBas"`
}

func (c *Client) Alertes(ctx context.Context) (AlertReport, error) {
	var rep AlertReport
	err := c.do(ctx, http.MethodGet, "/inventory/alertes", nil, nil, &rep)
	return rep, err
}

// ListMenus fetches one page of menus.
func (c *Client) ListMenus(ctx context.Context, q PageQuery) (models.Page[Menu], error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/menus", pageValues(q), nil, &raw); err != nil {
		return models.Page[Menu]{}, err
	}
	return decodePage(raw, menuWire.menu)
}

func (c *Client) GetMenu(ctx context.Context, id uint) (Menu, error) {
	return c.menuCall(ctx, http.MethodGet, idPath("/menus", id), nil)
}

func (c *Client) CreateMenu(ctx context.Context, req models.CreateMenuRequest) (Menu, error) {
	return c.menuCall(ctx, http.MethodPost, "/menus", req)
}

func (c *Client) UpdateMenu(ctx context.Context, id uint, req models.CreateMenuRequest) (Menu, error) {
	return c.menuCall(ctx, http.MethodPut, idPath("/menus", id), req)
}

func (c *Client) DeleteMenu(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, idPath("/menus", id), nil, nil, nil)
}

func (c *Client) ConfirmerMenu(ctx context.Context, id uint) (Menu, error) {
	return c.menuCall(ctx, http.MethodPost, idPath("/menus", id, "confirmer"), nil)
}

func (c *Client) AnnulerMenu(ctx context.Context, id uint) (Menu, error) {
	return c.menuCall(ctx, http.MethodPost, idPath("/menus", id, "annuler"), nil)
}

func (c *Client) RealiserMenu(ctx context.Context, id uint) (Menu, error) {
	return c.menuCall(ctx, http.MethodPost, idPath("/menus", id, "realiser"), nil)
}

func (c *Client) AddIngredient(ctx context.Context, id uint, req models.AddIngredientRequest) (Menu, error) {
	return c.menuCall(ctx, http.MethodPost, idPath("/menus", id, "ingredients"), req)
}

// RemoveIngredient drops the lines of menu id that use produitID.
func (c *Client) RemoveIngredient(ctx context.Context, id, produitID uint) (Menu, error) {
	return c.menuCall(ctx, http.MethodDelete,
		idPath("/menus", id, "ingredients", strconv.FormatUint(uint64(produitID), 10)), nil)
}

// Rapport fetches the cost report for menus served between from and to,
// both ISO dates.
func (c *Client) Rapport(ctx context.Context, from, to string) (models.Report, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	var rep models.Report
	if err := c.do(ctx, http.MethodGet, "/rapports", q, nil, &rep); err != nil {
		return models.Report{}, err
	}
	if rep.Menus == nil {
		rep.Menus = []models.ReportLine{}
	}
	return rep, nil
}

func (c *Client) menuCall(ctx context.Context, method, path string, body any) (Menu, error) {
	var w menuWire
	if err := c.do(ctx, method, path, nil, body, &w); err != nil {
		return Menu{}, err
	}
	return w.menu(), nil
}
