package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/diewo77/stockchef/internal/inventory"
	"github.com/diewo77/stockchef/internal/models"
	"github.com/diewo77/stockchef/validation"
)

// ProduitService manages the stock.
type ProduitService struct {
	db    *gorm.DB
	clock inventory.Clock
}

func NewProduitService(db *gorm.DB, clock inventory.Clock) *ProduitService {
	if clock == nil {
		clock = inventory.SystemClock
	}
	return &ProduitService{db: db, clock: clock}
}

// List returns one page of products ordered by name, filtered on the name
// when q.Search is set.
func (s *ProduitService) List(ctx context.Context, q models.PageQuery) (models.Page[models.Product], error) {
	q = q.Normalize()
	db := s.db.WithContext(ctx).Model(&models.Product{})
	if q.Search != "" {
		db = db.Where("LOWER(nom) LIKE LOWER(?)", "%"+q.Search+"%")
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return models.Page[models.Product]{}, err
	}
	produits := []models.Product{}
	if err := db.Order("nom, id").Limit(q.Size).Offset(q.Offset()).Find(&produits).Error; err != nil {
		return models.Page[models.Product]{}, err
	}
	return models.Page[models.Product]{Content: produits, Page: q.Page, Size: q.Size, TotalElements: total}, nil
}

// All returns every product.
func (s *ProduitService) All(ctx context.Context) ([]models.Product, error) {
	var produits []models.Product
	err := s.db.WithContext(ctx).Order("nom, id").Find(&produits).Error
	return produits, err
}

func (s *ProduitService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return findProduit(s.db.WithContext(ctx), id)
}

func findProduit(db *gorm.DB, id uint) (*models.Product, error) {
	var p models.Product
	if err := db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("produit %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// Create validates in with the quick-entry rules and stores it.
func (s *ProduitService) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	np, v := inventory.BuildNewProduit(in, inventory.SimpleRules)
	if err := invalid(v); err != nil {
		return nil, err
	}
	p := models.Product{
		Nom:            np.Nom,
		QuantiteStock:  np.QuantiteInitiale,
		Unite:          np.Unite,
		PrixUnitaire:   np.PrixUnitaire,
		SeuilAlerte:    np.SeuilAlerte,
		Description:    np.Description,
		DateEntree:     np.DateEntree,
		DatePeremption: np.DatePeremption,
	}
	if p.DateEntree == "" {
		p.DateEntree = models.FormatDate(s.clock.Now())
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	log.Printf("produit %d created: %s", p.ID, p.Nom)
	return &p, nil
}

// Update replaces the editable fields of a product. Edits follow the
// inventory backend's strict rules.
func (s *ProduitService) Update(ctx context.Context, id uint, in models.ProductInput) (*models.Product, error) {
	np, v := inventory.BuildNewProduit(in, inventory.StrictRules(s.clock.Now()))
	if err := invalid(v); err != nil {
		return nil, err
	}
	var out *models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findProduit(tx, id)
		if err != nil {
			return err
		}
		p.Nom = np.Nom
		p.QuantiteStock = np.QuantiteInitiale
		p.Unite = np.Unite
		p.PrixUnitaire = np.PrixUnitaire
		p.SeuilAlerte = np.SeuilAlerte
		p.Description = np.Description
		p.DateEntree = np.DateEntree
		p.DatePeremption = np.DatePeremption
		out = p
		return tx.Save(p).Error
	})
	return out, err
}

func (s *ProduitService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("produit %d: %w", id, ErrNotFound)
	}
	return nil
}

// SetStock overwrites the stock level after an inventory count.
func (s *ProduitService) SetStock(ctx context.Context, id uint, quantite float64) (*models.Product, error) {
	var v validation.Violations
	if _, ok := validation.NonNegative("quantity", formatQty(quantite), &v); !ok {
		return nil, invalid(v)
	}
	var out *models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findProduit(tx, id)
		if err != nil {
			return err
		}
		p.QuantiteStock = quantite
		out = p
		return tx.Save(p).Error
	})
	return out, err
}

// Consume withdraws req.Quantite from the stock. A quantity above the stock
// fails with ErrStockInsufficient and leaves the stock unchanged.
func (s *ProduitService) Consume(ctx context.Context, id uint, req models.ConsumeRequest) (*models.Product, error) {
	var v validation.Violations
	if !validation.PositiveFloat("consume_quantity", req.Quantite, &v) {
		return nil, invalid(v)
	}
	var out *models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findProduit(tx, id)
		if err != nil {
			return err
		}
		if req.Quantite > p.QuantiteStock {
			return fmt.Errorf("%w: %s (disponible %s, demandé %s)",
				ErrStockInsufficient, p.Nom, formatQty(p.QuantiteStock), formatQty(req.Quantite))
		}
		p.QuantiteStock -= req.Quantite
		out = p
		return tx.Save(p).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("produit %d: -%s (%s)", id, formatQty(req.Quantite), req.Motif)
	return out, nil
}

// AlertReport is the inventory dashboard payload.
type AlertReport struct {
	Date     string            `json:"date"`
	Summary  inventory.Summary `json:"resume"`
	Perimes  []models.Product  `json:"perimes"`
	Proches  []models.Product  `json:"prochesExpiration"`
	StockBas []models.Product  `json:"stockBas"`
}

// Alerts classifies the whole stock against today.
func (s *ProduitService) Alerts(ctx context.Context) (AlertReport, error) {
	produits, err := s.All(ctx)
	if err != nil {
		return AlertReport{}, err
	}
	today := s.clock.Now()
	return AlertReport{
		Date:     models.FormatDate(today),
		Summary:  inventory.Summarize(produits, today),
		Perimes:  nonNil(inventory.Filter(produits, today, inventory.StatusPerime)),
		Proches:  nonNil(inventory.Filter(produits, today, inventory.StatusProche)),
		StockBas: nonNil(inventory.LowStock(produits)),
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func formatQty(f float64) string {
	return fmt.Sprintf("%g", f)
}
