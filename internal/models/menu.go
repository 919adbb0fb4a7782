package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// MenuStatus is the lifecycle state of a menu.
type MenuStatus string

const (
	MenuBrouillon MenuStatus = "BROUILLON"
	MenuConfirme  MenuStatus = "CONFIRME"
	MenuRealise   MenuStatus = "REALISE"
	MenuAnnule    MenuStatus = "ANNULE"
)

// Terminal reports whether no transition may leave s.
func (s MenuStatus) Terminal() bool {
	return s == MenuRealise || s == MenuAnnule
}

// Menu is a composition of ingredients. Its cost is always derived from
// Items and never stored.
type Menu struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time  `json:"dateCreation"`
	UpdatedAt       time.Time  `json:"dateModification"`
	Nom             string     `gorm:"size:255;not null" json:"nom"`
	Description     string     `gorm:"type:text" json:"description,omitempty"`
	DateService     string     `gorm:"size:10" json:"dateService,omitempty"`
	Statut          MenuStatus `gorm:"size:20;default:'BROUILLON'" json:"statut"`
	PrixVente       *float64   `json:"prixVente,omitempty"`
	NombrePortions  int        `json:"nombrePortions,omitempty"`
	ChefResponsable string     `gorm:"size:255" json:"chefResponsable,omitempty"`

	// Items in display order.
	Items []MenuItem `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"items"`
}

// MenuItem is an ingredient line. Nom, Unite and PrixUnitaire are copied
// from the selected product and stay editable afterwards. ProduitID 0 means
// no product has been picked yet.
type MenuItem struct {
	ID           uint    `gorm:"primaryKey" json:"id,omitempty"`
	MenuID       uint    `gorm:"index;not null" json:"-"`
	ProduitID    uint    `gorm:"index" json:"produitId"`
	Nom          string  `gorm:"size:255" json:"nom"`
	Unite        string  `gorm:"size:50" json:"unite"`
	PrixUnitaire float64 `json:"prixUnitaire"`
	Quantite     float64 `json:"quantite"`
	Notes        string  `gorm:"size:500" json:"notes,omitempty"`
	Position     int     `gorm:"default:0" json:"-"`
}

// UnmarshalJSON decodes numbers leniently: numeric strings are parsed and
// anything else (null, garbage, NaN) becomes 0 rather than an error.
func (it *MenuItem) UnmarshalJSON(b []byte) error {
	type alias MenuItem
	var raw struct {
		alias
		ProduitID    json.RawMessage `json:"produitId"`
		PrixUnitaire json.RawMessage `json:"prixUnitaire"`
		Quantite     json.RawMessage `json:"quantite"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*it = MenuItem(raw.alias)
	it.ProduitID = uint(math.Max(LenientFloat(raw.ProduitID), 0))
	it.PrixUnitaire = LenientFloat(raw.PrixUnitaire)
	it.Quantite = LenientFloat(raw.Quantite)
	return nil
}

// LenientFloat reads a JSON number or numeric string, returning 0 for
// anything it cannot read.
func LenientFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(s, ",", ".", 1)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// CreateMenuRequest is the payload for POST /menus and PUT /menus/{id}.
type CreateMenuRequest struct {
	Nom             string     `json:"nom"`
	Description     string     `json:"description,omitempty"`
	DateService     string     `json:"dateService,omitempty"`
	NombrePortions  int        `json:"nombrePortions,omitempty"`
	PrixVente       *float64   `json:"prixVente,omitempty"`
	ChefResponsable string     `json:"chefResponsable,omitempty"`
	Items           []MenuItem `json:"items,omitempty"`
}

// AddIngredientRequest attaches one ingredient line to an existing menu.
type AddIngredientRequest struct {
	ProduitID uint    `json:"produitId"`
	Quantite  float64 `json:"quantiteNecessaire"`
	Unite     string  `json:"uniteUtilisee,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

// ReportLine is one menu in a cost report.
type ReportLine struct {
	ID      uint    `json:"id"`
	Nom     string  `json:"nom"`
	Date    string  `json:"date"`
	Total   float64 `json:"total"`
	Depasse bool    `json:"depasse"`
}

// Report summarises menu costs over a date range.
type Report struct {
	CoutMoyen      float64      `json:"coutMoyen"`
	NbDepassements int          `json:"nbDepassements"`
	Menus          []ReportLine `json:"menus"`
}
