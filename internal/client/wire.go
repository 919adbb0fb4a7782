package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/diewo77/stockchef/internal/menus"
	"github.com/diewo77/stockchef/internal/models"
)

// rawPage accepts both the Spring shape ({content, number, ...}) and the
// simple one ({content, page, ...}).
type rawPage struct {
	Content       json.RawMessage `json:"content"`
	Page          *int            `json:"page"`
	Number        *int            `json:"number"`
	Size          int             `json:"size"`
	TotalElements *int64          `json:"totalElements"`
}

// decodePage reads a paged answer into the canonical Page. A bare JSON array
// is read as a single page holding everything.
func decodePage[W any, T any](data []byte, conv func(W) T) (models.Page[T], error) {
	data = bytes.TrimSpace(data)
	var items []W
	var p models.Page[T]
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &items); err != nil {
			return p, fmt.Errorf("decode list: %w", err)
		}
		p.Size = len(items)
		p.TotalElements = int64(len(items))
	} else {
		var rp rawPage
		if err := json.Unmarshal(data, &rp); err != nil {
			return p, fmt.Errorf("decode page: %w", err)
		}
		if len(rp.Content) > 0 && string(rp.Content) != "null" {
			if err := json.Unmarshal(rp.Content, &items); err != nil {
				return p, fmt.Errorf("decode page content: %w", err)
			}
		}
		switch {
		case rp.Number != nil:
			p.Page = *rp.Number
		case rp.Page != nil:
			p.Page = *rp.Page
		}
		p.Size = rp.Size
		if rp.TotalElements != nil {
			p.TotalElements = *rp.TotalElements
		} else {
			p.TotalElements = int64(len(items))
		}
	}
	p.Content = make([]T, len(items))
	for i, w := range items {
		p.Content[i] = conv(w)
	}
	return p, nil
}

// produitWire is a product as any backend sends it.
type produitWire struct {
	models.Product
	Quantite         *float64 `json:"quantite"`
	QuantiteStock    *float64 `json:"quantiteStock"`
	QuantiteInitiale *float64 `json:"quantiteInitiale"`
	Seuil            *float64 `json:"seuil"`
}

func (w produitWire) product() models.Product {
	p := w.Product
	switch {
	case w.QuantiteStock != nil:
		p.QuantiteStock = *w.QuantiteStock
	case w.Quantite != nil:
		p.QuantiteStock = *w.Quantite
	case w.QuantiteInitiale != nil:
		p.QuantiteStock = *w.QuantiteInitiale
	}
	if p.SeuilAlerte == nil && w.Seuil != nil {
		s := *w.Seuil
		p.SeuilAlerte = &s
	}
	return p
}

// ingredientWire is the backend's ingredient line.
type ingredientWire struct {
	ID                 uint            `json:"id"`
	ProduitID          json.RawMessage `json:"produitId"`
	ProduitNom         string          `json:"produitNom"`
	QuantiteNecessaire json.RawMessage `json:"quantiteNecessaire"`
	UniteUtilisee      string          `json:"uniteUtilisee"`
	PrixUnitaire       json.RawMessage `json:"prixUnitaire"`
	CoutIngredient     json.RawMessage `json:"coutIngredient"`
	Notes              string          `json:"notes"`
}

func (w ingredientWire) item() models.MenuItem {
	it := models.MenuItem{
		ID:       w.ID,
		Nom:      w.ProduitNom,
		Unite:    w.UniteUtilisee,
		Quantite: models.LenientFloat(w.QuantiteNecessaire),
		Notes:    w.Notes,
	}
	if id := models.LenientFloat(w.ProduitID); id > 0 {
		it.ProduitID = uint(id)
	}
	it.PrixUnitaire = models.LenientFloat(w.PrixUnitaire)
	if len(w.PrixUnitaire) == 0 && it.Quantite > 0 {
		cout := menus.Amount(models.LenientFloat(w.CoutIngredient))
		it.PrixUnitaire = cout.Div(menus.Amount(it.Quantite)).Round(4).InexactFloat64()
	}
	return it
}

// Menu is a menu as the API returned it. ReportedCost is the backend's own
// total; Cost always recomputes from Items.
type Menu struct {
	models.Menu
	ReportedCost *float64
}

// Cost is the exact sum of the item lines.
func (m Menu) Cost() decimal.Decimal { return menus.Total(m.Items) }

type menuWire struct {
	models.Menu
	Ingredients          []ingredientWire `json:"ingredients"`
	CoutTotal            *float64         `json:"coutTotal"`
	CoutTotalIngredients *float64         `json:"coutTotalIngredients"`
}

func (w menuWire) menu() Menu {
	m := Menu{Menu: w.Menu}
	if len(m.Items) == 0 && len(w.Ingredients) > 0 {
		m.Items = make([]models.MenuItem, len(w.Ingredients))
		for i, in := range w.Ingredients {
			m.Items[i] = in.item()
		}
	}
	if m.Items == nil {
		m.Items = []models.MenuItem{}
	}
	switch {
	case w.CoutTotal != nil:
		m.ReportedCost = w.CoutTotal
	case w.CoutTotalIngredients != nil:
		m.ReportedCost = w.CoutTotalIngredients
	}
	return m
}
