package menus

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diewo77/stockchef/internal/models"
	"github.com/diewo77/stockchef/validation"
)

// ItemPatch carries the fields of an item edit; nil fields are left alone.
type ItemPatch struct {
	ProduitID    *uint
	Nom          *string
	Unite        *string
	PrixUnitaire *float64
	Quantite     *float64
}

// Draft is a menu form being edited. Errors only appear on Submit; every
// later edit drops the shown errors that full validation no longer reports.
type Draft struct {
	nom    string
	items  []models.MenuItem
	errors validation.Violations
}

// NewDraft returns an empty form.
func NewDraft() *Draft {
	return &Draft{}
}

func (d *Draft) Name() string { return d.nom }

// Items returns a copy of the ingredient lines.
func (d *Draft) Items() []models.MenuItem {
	return append([]models.MenuItem(nil), d.items...)
}

// Errors returns the violations currently shown.
func (d *Draft) Errors() validation.Violations { return d.errors }

// Total is the live cost of the current lines.
func (d *Draft) Total() decimal.Decimal { return Total(d.items) }

func (d *Draft) SetName(nom string) {
	d.nom = nom
	d.refresh()
}

// AddItem appends an empty line and returns its index.
func (d *Draft) AddItem() int {
	d.items = append(d.items, models.MenuItem{})
	d.refresh()
	return len(d.items) - 1
}

// RemoveItem deletes the line at idx.
func (d *Draft) RemoveItem(idx int) error {
	if err := d.check(idx); err != nil {
		return err
	}
	d.items = append(d.items[:idx], d.items[idx+1:]...)
	d.refresh()
	return nil
}

// UpdateItem applies patch to the line at idx.
func (d *Draft) UpdateItem(idx int, patch ItemPatch) error {
	if err := d.check(idx); err != nil {
		return err
	}
	it := &d.items[idx]
	if patch.ProduitID != nil {
		it.ProduitID = *patch.ProduitID
	}
	if patch.Nom != nil {
		it.Nom = *patch.Nom
	}
	if patch.Unite != nil {
		it.Unite = *patch.Unite
	}
	if patch.PrixUnitaire != nil {
		it.PrixUnitaire = *patch.PrixUnitaire
	}
	if patch.Quantite != nil {
		it.Quantite = *patch.Quantite
	}
	d.refresh()
	return nil
}

// SelectProduct fills the line at idx from p. Name, unit and price remain
// editable afterwards.
func (d *Draft) SelectProduct(idx int, p models.Product) error {
	id, nom, unite, prix := p.ID, p.Nom, string(p.Unite), p.PrixUnitaire
	return d.UpdateItem(idx, ItemPatch{ProduitID: &id, Nom: &nom, Unite: &unite, PrixUnitaire: &prix})
}

// Submit validates the whole form. On success it returns the request to send
// and clears the shown errors; the form content is kept until Reset.
func (d *Draft) Submit() (models.CreateMenuRequest, validation.Violations) {
	d.errors = ValidateMenu(d.nom, d.items)
	if !d.errors.Empty() {
		return models.CreateMenuRequest{}, d.errors
	}
	items := make([]models.MenuItem, len(d.items))
	for i, it := range d.items {
		it.Position = i
		items[i] = it
	}
	return models.CreateMenuRequest{Nom: strings.TrimSpace(d.nom), Items: items}, nil
}

// Reset empties the form after a successful save.
func (d *Draft) Reset() {
	d.nom = ""
	d.items = nil
	d.errors = nil
}

func (d *Draft) refresh() {
	if d.errors.Empty() {
		return
	}
	d.errors = d.errors.Intersect(ValidateMenu(d.nom, d.items))
}

func (d *Draft) check(idx int) error {
	if idx < 0 || idx >= len(d.items) {
		return fmt.Errorf("menu item %d out of range (0..%d)", idx, len(d.items)-1)
	}
	return nil
}
