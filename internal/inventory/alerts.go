package inventory

import (
	"time"

	"github.com/diewo77/stockchef/internal/models"
)

// Summary counts products needing attention.
type Summary struct {
	TotalProduits int `json:"totalProduits"`
	Perimes       int `json:"produitsPerimes"`
	Proches       int `json:"produitsProchesExpiration"`
	StockBas      int `json:"produitsStockBas"`
}

// Summarize classifies every product once. A product can be both expiring
// and low on stock.
func Summarize(products []models.Product, today time.Time) Summary {
	s := Summary{TotalProduits: len(products)}
	for i := range products {
		switch ClassifyProduct(products[i], today) {
		case StatusPerime:
			s.Perimes++
		case StatusProche:
			s.Proches++
		}
		if products[i].LowStock() {
			s.StockBas++
		}
	}
	return s
}

// Filter returns the products whose status is one of statuses, keeping
// input order.
func Filter(products []models.Product, today time.Time, statuses ...ExpiryStatus) []models.Product {
	var out []models.Product
	for _, p := range products {
		st := ClassifyProduct(p, today)
		for _, want := range statuses {
			if st == want {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// LowStock returns the products at or under their alert threshold.
func LowStock(products []models.Product) []models.Product {
	var out []models.Product
	for _, p := range products {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out
}
