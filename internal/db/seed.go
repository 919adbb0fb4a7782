package db

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/stockchef/auth"
	"github.com/diewo77/stockchef/internal/models"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "stockchef"

// Seed creates one account per role and, on an empty table, a few products.
// Expiry dates are relative to now so every alert state is represented.
func Seed(db *gorm.DB, now time.Time) error {
	if err := SeedUsers(db); err != nil {
		return err
	}
	return SeedProduits(db, now)
}

// SeedUsers creates <role>@stockchef.local for each role if missing.
func SeedUsers(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	for _, role := range auth.Roles {
		name := strings.ToLower(string(role))
		u := models.User{
			Email:    name + "@stockchef.local",
			FullName: strings.ToUpper(name[:1]) + name[1:],
			Password: string(hash),
			Role:     role.BackendRole(),
		}
		if err := db.Where("email = ?", u.Email).FirstOrCreate(&u).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}
	return nil
}

// SeedProduits inserts the demo stock when no product exists.
func SeedProduits(db *gorm.DB, now time.Time) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	day := func(offset int) string { return models.FormatDate(now.AddDate(0, 0, offset)) }
	seuil := func(f float64) *float64 { return &f }
	produits := []models.Product{
		{Nom: "Farine", QuantiteStock: 18, Unite: models.UnitKilogramme, PrixUnitaire: 1.9, SeuilAlerte: seuil(5), DateEntree: day(-30), DatePeremption: day(60)},
		{Nom: "Lait", QuantiteStock: 6, Unite: models.UnitLitre, PrixUnitaire: 0.95, SeuilAlerte: seuil(10), DateEntree: day(-5), DatePeremption: day(2)},
		{Nom: "Oeufs", QuantiteStock: 60, Unite: models.UnitPiece, PrixUnitaire: 0.25, SeuilAlerte: seuil(24), DateEntree: day(-10), DatePeremption: day(-1)},
		{Nom: "Beurre", QuantiteStock: 2, Unite: models.UnitKilogramme, PrixUnitaire: 8.5, SeuilAlerte: seuil(3), DateEntree: day(-3), DatePeremption: day(20)},
		{Nom: "Tomates", QuantiteStock: 12, Unite: models.UnitKilogramme, PrixUnitaire: 2.4, DateEntree: day(-1), DatePeremption: day(3)},
		{Nom: "Sel", QuantiteStock: 4, Unite: models.UnitKilogramme, PrixUnitaire: 0.6},
	}
	return db.Create(&produits).Error
}
