package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/stockchef/internal/menus"
	"github.com/diewo77/stockchef/internal/models"
	"github.com/diewo77/stockchef/validation"
)

// MenuService persists menus and drives their workflow.
type MenuService struct {
	db *gorm.DB
	wf menus.Workflow
}

func NewMenuService(db *gorm.DB, wf menus.Workflow) *MenuService {
	return &MenuService{db: db, wf: wf}
}

// Workflow returns the state machine in use.
func (s *MenuService) Workflow() menus.Workflow { return s.wf }

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position, id")
}

// List returns one page of menus, newest service date first.
func (s *MenuService) List(ctx context.Context, q models.PageQuery) (models.Page[models.Menu], error) {
	q = q.Normalize()
	db := s.db.WithContext(ctx).Model(&models.Menu{})
	if q.Search != "" {
		db = db.Where("LOWER(nom) LIKE LOWER(?)", "%"+q.Search+"%")
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return models.Page[models.Menu]{}, err
	}
	list := []models.Menu{}
	err := db.Preload("Items", preloadItems).
		Order("date_service DESC, id DESC").
		Limit(q.Size).Offset(q.Offset()).
		Find(&list).Error
	if err != nil {
		return models.Page[models.Menu]{}, err
	}
	return models.Page[models.Menu]{Content: list, Page: q.Page, Size: q.Size, TotalElements: total}, nil
}

func (s *MenuService) Get(ctx context.Context, id uint) (*models.Menu, error) {
	return findMenu(s.db.WithContext(ctx), id)
}

func findMenu(db *gorm.DB, id uint) (*models.Menu, error) {
	var m models.Menu
	if err := db.Preload("Items", preloadItems).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("menu %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &m, nil
}

// Create validates req and stores a new draft menu. Item lines referencing a
// product inherit its name, unit and price when they leave them empty.
func (s *MenuService) Create(ctx context.Context, req models.CreateMenuRequest) (*models.Menu, error) {
	if err := invalid(menus.ValidateMenu(req.Nom, req.Items)); err != nil {
		return nil, err
	}
	m := models.Menu{Statut: models.MenuBrouillon}
	applyRequest(&m, req)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := resolveItems(tx, req.Items)
		if err != nil {
			return err
		}
		m.Items = items
		return tx.Create(&m).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("menu %d created: %s (%d items)", m.ID, m.Nom, len(m.Items))
	return &m, nil
}

// Update replaces a draft menu's fields and items.
func (s *MenuService) Update(ctx context.Context, id uint, req models.CreateMenuRequest) (*models.Menu, error) {
	if err := invalid(menus.ValidateMenu(req.Nom, req.Items)); err != nil {
		return nil, err
	}
	var out *models.Menu
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findMenu(tx, id)
		if err != nil {
			return err
		}
		if !menus.CanEdit(m.Statut) {
			return fmt.Errorf("menu %d (%s): %w", id, m.Statut, ErrNotEditable)
		}
		items, err := resolveItems(tx, req.Items)
		if err != nil {
			return err
		}
		if err := tx.Where("menu_id = ?", m.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		applyRequest(m, req)
		m.Items = items
		if err := tx.Omit("Items").Save(m).Error; err != nil {
			return err
		}
		for i := range m.Items {
			m.Items[i].MenuID = m.ID
		}
		if len(m.Items) > 0 {
			if err := tx.Create(&m.Items).Error; err != nil {
				return err
			}
		}
		out = m
		return nil
	})
	return out, err
}

// Delete removes a draft menu and its items.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findMenu(tx, id)
		if err != nil {
			return err
		}
		if !menus.CanEdit(m.Statut) {
			return fmt.Errorf("menu %d (%s): %w", id, m.Statut, ErrNotEditable)
		}
		if err := tx.Where("menu_id = ?", m.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(m).Error
	})
}

// AddIngredient appends one product line to a draft menu.
func (s *MenuService) AddIngredient(ctx context.Context, id uint, req models.AddIngredientRequest) (*models.Menu, error) {
	var v validation.Violations
	validation.PositiveFloat("each_quantity", req.Quantite, &v)
	if req.ProduitID == 0 {
		v.Add("produitId", "ingredient_required")
	}
	if err := invalid(v); err != nil {
		return nil, err
	}
	var out *models.Menu
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findMenu(tx, id)
		if err != nil {
			return err
		}
		if !menus.CanEdit(m.Statut) {
			return fmt.Errorf("menu %d (%s): %w", id, m.Statut, ErrNotEditable)
		}
		p, err := findProduit(tx, req.ProduitID)
		if err != nil {
			return err
		}
		it := models.MenuItem{
			MenuID:       m.ID,
			ProduitID:    p.ID,
			Nom:          p.Nom,
			Unite:        string(p.Unite),
			PrixUnitaire: p.PrixUnitaire,
			Quantite:     req.Quantite,
			Notes:        req.Notes,
			Position:     len(m.Items),
		}
		if u := strings.TrimSpace(req.Unite); u != "" {
			it.Unite = u
		}
		if err := tx.Create(&it).Error; err != nil {
			return err
		}
		m.Items = append(m.Items, it)
		out = m
		return nil
	})
	return out, err
}

// RemoveIngredient drops every line of a draft menu that uses produitID and
// renumbers the remaining lines.
func (s *MenuService) RemoveIngredient(ctx context.Context, id, produitID uint) (*models.Menu, error) {
	var out *models.Menu
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findMenu(tx, id)
		if err != nil {
			return err
		}
		if !menus.CanEdit(m.Statut) {
			return fmt.Errorf("menu %d (%s): %w", id, m.Statut, ErrNotEditable)
		}
		kept := make([]models.MenuItem, 0, len(m.Items))
		for _, it := range m.Items {
			if it.ProduitID != produitID {
				kept = append(kept, it)
			}
		}
		if len(kept) == len(m.Items) {
			return fmt.Errorf("menu %d: ingredient %d: %w", id, produitID, ErrNotFound)
		}
		if err := tx.Where("menu_id = ? AND produit_id = ?", m.ID, produitID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		for i := range kept {
			if kept[i].Position == i {
				continue
			}
			kept[i].Position = i
			if err := tx.Model(&kept[i]).Update("position", i).Error; err != nil {
				return err
			}
		}
		log.Printf("menu %d: ingredient %d removed", m.ID, produitID)
		m.Items = kept
		out = m
		return nil
	})
	return out, err
}

// Report summarises the cost of the menus served between from and to.
// Both bounds are ISO dates and are included.
func (s *MenuService) Report(ctx context.Context, from, to string, threshold float64) (models.Report, error) {
	var v validation.Violations
	start := reportBound("from", from, &v)
	end := reportBound("to", to, &v)
	if start != nil && end != nil && end.Before(*start) {
		v.Add("to", "date_range")
	}
	if err := invalid(v); err != nil {
		return models.Report{}, err
	}
	var list []models.Menu
	err := s.db.WithContext(ctx).
		Preload("Items", preloadItems).
		Where("date_service >= ? AND date_service <= ?", models.FormatDate(*start), models.FormatDate(*end)).
		Where("statut <> ?", models.MenuAnnule).
		Order("date_service, id").
		Find(&list).Error
	if err != nil {
		return models.Report{}, err
	}
	return menus.BuildReport(list, *start, *end, menus.Amount(threshold)), nil
}

func reportBound(field, s string, v *validation.Violations) *time.Time {
	if strings.TrimSpace(s) == "" {
		v.Add(field, "required")
		return nil
	}
	t, err := models.ParseDate(s)
	if err != nil {
		v.Add(field, "date_invalid")
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// Transition moves a menu through the workflow. Confirming requires the
// stock to cover every ingredient; realising consumes it.
func (s *MenuService) Transition(ctx context.Context, id uint, t menus.Transition) (*models.Menu, error) {
	var out *models.Menu
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findMenu(tx, id)
		if err != nil {
			return err
		}
		from := m.Statut
		if err := s.wf.Apply(m, t); err != nil {
			return err
		}
		switch t {
		case menus.Confirmer:
			if _, err := checkStock(tx, m.Items); err != nil {
				return err
			}
		case menus.Realiser:
			if err := consumeStock(tx, m.Items); err != nil {
				return err
			}
		}
		if err := tx.Model(m).Update("statut", m.Statut).Error; err != nil {
			return err
		}
		log.Printf("menu %d: %s -> %s", m.ID, from, m.Statut)
		out = m
		return nil
	})
	return out, err
}

func applyRequest(m *models.Menu, req models.CreateMenuRequest) {
	m.Nom = strings.TrimSpace(req.Nom)
	m.Description = strings.TrimSpace(req.Description)
	m.DateService = strings.TrimSpace(req.DateService)
	m.NombrePortions = req.NombrePortions
	m.PrixVente = req.PrixVente
	m.ChefResponsable = strings.TrimSpace(req.ChefResponsable)
}

// resolveItems copies the request lines, filling blanks from the referenced
// products and numbering positions.
func resolveItems(tx *gorm.DB, in []models.MenuItem) ([]models.MenuItem, error) {
	out := make([]models.MenuItem, len(in))
	for i, it := range in {
		it.ID = 0
		it.MenuID = 0
		it.Position = i
		if it.ProduitID != 0 {
			p, err := findProduit(tx, it.ProduitID)
			if err != nil {
				return nil, err
			}
			// A bare reference takes the product's price unless one is given;
			// a named line keeps its own price, zero included.
			if strings.TrimSpace(it.Nom) == "" {
				it.Nom = p.Nom
				if it.PrixUnitaire == 0 {
					it.PrixUnitaire = p.PrixUnitaire
				}
			}
			if strings.TrimSpace(it.Unite) == "" {
				it.Unite = string(p.Unite)
			}
		}
		out[i] = it
	}
	return out, nil
}

// needs sums the quantity required per product.
func needs(items []models.MenuItem) (map[uint]float64, []uint) {
	need := make(map[uint]float64)
	var order []uint
	for _, it := range items {
		if it.ProduitID == 0 {
			continue
		}
		if _, seen := need[it.ProduitID]; !seen {
			order = append(order, it.ProduitID)
		}
		need[it.ProduitID] += it.Quantite
	}
	return need, order
}

func checkStock(tx *gorm.DB, items []models.MenuItem) ([]*models.Product, error) {
	need, order := needs(items)
	var short []string
	produits := make([]*models.Product, 0, len(order))
	for _, id := range order {
		p, err := findProduit(tx, id)
		if err != nil {
			return nil, err
		}
		if need[id] > p.QuantiteStock {
			short = append(short, fmt.Sprintf("%s (disponible %s, requis %s)",
				p.Nom, formatQty(p.QuantiteStock), formatQty(need[id])))
		}
		produits = append(produits, p)
	}
	if len(short) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrStockInsufficient, strings.Join(short, ", "))
	}
	return produits, nil
}

func consumeStock(tx *gorm.DB, items []models.MenuItem) error {
	produits, err := checkStock(tx, items)
	if err != nil {
		return err
	}
	need, _ := needs(items)
	for _, p := range produits {
		p.QuantiteStock -= need[p.ID]
		if err := tx.Model(p).Update("quantite_stock", p.QuantiteStock).Error; err != nil {
			return err
		}
	}
	return nil
}
