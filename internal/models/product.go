package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Unit is a unit of measure. The backend knows a closed set; older data may
// carry free-form strings ("kg", "u") which are kept as-is.
type Unit string

const (
	UnitKilogramme Unit = "KILOGRAMME"
	UnitPiece      Unit = "PIECE"
	UnitLitre      Unit = "LITRE"
	UnitGramme     Unit = "GRAMME"
)

// Known reports whether u belongs to the closed backend set.
func (u Unit) Known() bool {
	switch u {
	case UnitKilogramme, UnitPiece, UnitLitre, UnitGramme:
		return true
	}
	return false
}

// NormalizeUnit maps common abbreviations onto the closed set and keeps
// anything else untouched.
func NormalizeUnit(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg", "kilogramme", "kilogrammes":
		return UnitKilogramme
	case "g", "gramme", "grammes":
		return UnitGramme
	case "l", "litre", "litres":
		return UnitLitre
	case "u", "piece", "pièce", "pieces", "pièces":
		return UnitPiece
	}
	return Unit(strings.TrimSpace(s))
}

// Product is a stock item. Dates are calendar dates in DateLayout.
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"dateCreation"`
	UpdatedAt     time.Time `json:"dateModification"`
	Nom           string    `gorm:"size:255;not null;index" json:"nom"`
	QuantiteStock float64   `gorm:"not null;default:0" json:"quantiteStock"`
	Unite         Unit      `gorm:"size:50" json:"unite"`
	PrixUnitaire  float64   `gorm:"not null;default:0" json:"prixUnitaire"`
	// SeuilAlerte is the low-stock threshold; nil means no alert.
	SeuilAlerte    *float64 `json:"seuilAlerte,omitempty"`
	Description    string   `gorm:"type:text" json:"description,omitempty"`
	DateEntree     string   `gorm:"size:10" json:"dateEntree,omitempty"`
	DatePeremption string   `gorm:"size:10;index" json:"datePeremption,omitempty"`
}

// Expiry returns the parsed expiry date, nil when absent or unparseable.
func (p *Product) Expiry() *time.Time {
	d, err := ParseDate(p.DatePeremption)
	if err != nil {
		return nil
	}
	return d
}

// LowStock reports whether stock is at or under the alert threshold.
func (p *Product) LowStock() bool {
	return p.SeuilAlerte != nil && p.QuantiteStock <= *p.SeuilAlerte
}

// NewProduit is the creation payload sent to the API.
type NewProduit struct {
	Nom              string   `json:"nom"`
	QuantiteInitiale float64  `json:"quantiteInitiale"`
	Unite            Unit     `json:"unite"`
	PrixUnitaire     float64  `json:"prixUnitaire"`
	SeuilAlerte      *float64 `json:"seuilAlerte,omitempty"`
	Description      string   `json:"description,omitempty"`
	DateEntree       string   `json:"dateEntree,omitempty"`
	DatePeremption   string   `json:"datePeremption,omitempty"`
}

// ProductInput holds raw form values. Numbers stay strings so that an empty
// field can be told apart from zero.
type ProductInput struct {
	Nom            string `json:"nom"`
	Quantite       string `json:"quantite"`
	Unite          string `json:"unite"`
	PrixUnitaire   string `json:"prixUnitaire"`
	SeuilAlerte    string `json:"seuilAlerte,omitempty"`
	Description    string `json:"description,omitempty"`
	DateEntree     string `json:"dateEntree,omitempty"`
	DatePeremption string `json:"datePeremption,omitempty"`
}

// ConsumeRequest removes Quantite from a product's stock.
type ConsumeRequest struct {
	Quantite float64 `json:"quantite"`
	Motif    string  `json:"motif,omitempty"`
}

// UnmarshalJSON reads an API body into raw form values. Numeric fields
// accept JSON numbers or strings; an absent or null field stays "" so that
// the validator can tell a missing quantity from 0. The quantity is read
// from "quantite", then "quantiteInitiale", then "quantiteStock".
func (in *ProductInput) UnmarshalJSON(b []byte) error {
	type alias ProductInput
	var raw struct {
		alias
		Quantite         json.RawMessage `json:"quantite"`
		QuantiteInitiale json.RawMessage `json:"quantiteInitiale"`
		QuantiteStock    json.RawMessage `json:"quantiteStock"`
		PrixUnitaire     json.RawMessage `json:"prixUnitaire"`
		SeuilAlerte      json.RawMessage `json:"seuilAlerte"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*in = ProductInput(raw.alias)
	in.Quantite = rawValue(raw.Quantite)
	if in.Quantite == "" {
		in.Quantite = rawValue(raw.QuantiteInitiale)
	}
	if in.Quantite == "" {
		in.Quantite = rawValue(raw.QuantiteStock)
	}
	in.PrixUnitaire = rawValue(raw.PrixUnitaire)
	in.SeuilAlerte = rawValue(raw.SeuilAlerte)
	return nil
}

// rawValue renders a JSON scalar as form text: strings are unquoted, null
// and absent values are empty, anything else keeps its literal text.
func rawValue(raw json.RawMessage) string {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
