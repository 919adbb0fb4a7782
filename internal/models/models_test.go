package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMenuItem_UnmarshalJSON_Lenient(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantPrice float64
		wantQty   float64
	}{
		{"numbers", `{"prixUnitaire":1.9,"quantite":2}`, 1.9, 2},
		{"numeric strings", `{"prixUnitaire":"1,9","quantite":"2"}`, 1.9, 2},
		{"garbage", `{"prixUnitaire":"abc","quantite":{}}`, 0, 0},
		{"null and missing", `{"prixUnitaire":null}`, 0, 0},
		{"nan string", `{"prixUnitaire":"NaN","quantite":"3"}`, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var it MenuItem
			if err := json.Unmarshal([]byte(tt.body), &it); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if it.PrixUnitaire != tt.wantPrice || it.Quantite != tt.wantQty {
				t.Errorf("got price=%v qty=%v, want %v %v", it.PrixUnitaire, it.Quantite, tt.wantPrice, tt.wantQty)
			}
		})
	}
}

func TestMenuItem_UnmarshalJSON_KeepsOtherFields(t *testing.T) {
	var it MenuItem
	if err := json.Unmarshal([]byte(`{"produitId":7,"nom":"Farine","unite":"kg","quantite":1}`), &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if it.ProduitID != 7 || it.Nom != "Farine" || it.Unite != "kg" {
		t.Errorf("unexpected item %+v", it)
	}
}

func TestMenuStatus_Terminal(t *testing.T) {
	for s, want := range map[MenuStatus]bool{
		MenuBrouillon: false,
		MenuConfirme:  false,
		MenuRealise:   true,
		MenuAnnule:    true,
	} {
		if s.Terminal() != want {
			t.Errorf("%s.Terminal() = %v, want %v", s, !want, want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-10-15")
	if err != nil || d == nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !d.Equal(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date %v", d)
	}
	if d, err := ParseDate(""); d != nil || err != nil {
		t.Errorf("empty date should be nil, nil")
	}
	if _, err := ParseDate("15/10/2025"); err == nil {
		t.Errorf("expected error for non-ISO date")
	}
}

func TestProduct_LowStock(t *testing.T) {
	seuil := 5.0
	p := &Product{QuantiteStock: 5, SeuilAlerte: &seuil}
	if !p.LowStock() {
		t.Error("stock equal to threshold should be low")
	}
	p.QuantiteStock = 6
	if p.LowStock() {
		t.Error("stock above threshold should not be low")
	}
	p.SeuilAlerte = nil
	p.QuantiteStock = 0
	if p.LowStock() {
		t.Error("no threshold means no alert")
	}
}

func TestNormalizeUnit(t *testing.T) {
	if NormalizeUnit("kg") != UnitKilogramme || NormalizeUnit(" L ") != UnitLitre {
		t.Error("abbreviations should map to the closed set")
	}
	if u := NormalizeUnit("botte"); u != "botte" || u.Known() {
		t.Errorf("free-form unit should be kept, got %q", u)
	}
}

func TestProductInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		quantite string
		prix     string
		seuil    string
	}{
		{"missing quantity stays empty", `{"nom":"Sel","prixUnitaire":1}`, "", "1", ""},
		{"quantite", `{"quantite":5,"prixUnitaire":2.5}`, "5", "2.5", ""},
		{"quantiteInitiale", `{"quantiteInitiale":"3"}`, "3", "", ""},
		{"quantiteStock", `{"quantiteStock":0}`, "0", "", ""},
		{"quantite wins", `{"quantite":1,"quantiteInitiale":9}`, "1", "", ""},
		{"null threshold", `{"quantite":1,"seuilAlerte":null}`, "1", "", ""},
		{"string threshold", `{"quantite":1,"seuilAlerte":"2,5"}`, "1", "", "2,5"},
		{"bool kept as text", `{"quantite":true}`, "true", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in ProductInput
			if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if in.Quantite != tt.quantite || in.PrixUnitaire != tt.prix || in.SeuilAlerte != tt.seuil {
				t.Errorf("got quantite=%q prix=%q seuil=%q", in.Quantite, in.PrixUnitaire, in.SeuilAlerte)
			}
		})
	}
}
