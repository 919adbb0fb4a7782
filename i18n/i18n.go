// Package i18n holds the translation catalogs for the codes produced by the
// validation and client layers. French is the default language.
package i18n

import (
	"context"
	"strings"
)

const DefaultLang = "fr"

type langKey struct{}

var catalogs = map[string]map[string]string{
	"fr": {
		"required":                  "Requis",
		"name_required":             "Le nom est requis",
		"quantity_non_negative":     "La quantité doit être ≥ 0",
		"price_non_negative":        "Le prix doit être ≥ 0",
		"price_positive":            "Le prix unitaire doit être supérieur à 0",
		"threshold_non_negative":    "Le seuil d'alerte doit être supérieur ou égal à 0",
		"description_required":      "La description est requise",
		"expiry_required":           "La date de péremption est requise",
		"expiry_after_entry":        "La date de péremption doit être après la date d'entrée",
		"expiry_in_past":            "La date de péremption ne peut pas être dans le passé",
		"date_invalid":              "Date invalide",
		"ingredient_required":       "Au moins un ingrédient",
		"each_quantity_positive":    "Chaque quantité doit être > 0",
		"consume_quantity_positive": "La quantité doit être supérieure à 0",
		"consume_exceeds_stock":     "Quantité supérieure au stock disponible",
		"stock_insufficient":        "Stock insuffisant pour cette quantité",
		"not_found":                 "Ressource introuvable",
		"unauthorized":              "Session expirée, veuillez vous reconnecter",
		"generic_error":             "Une erreur est survenue. Merci de réessayer",
		"invalid_credentials":       "Email ou mot de passe incorrect",
		"menu_not_editable":         "Seuls les menus en brouillon sont modifiables",
		"save_failed":               "Erreur lors de l’enregistrement",
		"status_ok":                 "OK",
		"status_proche":             "Proche",
		"status_perime":             "Périmé",
		"budget_ok":                 "Budget OK",
		"budget_depassement":        "Dépassement",
		"stock_low":                 "Stock bas",
		"forbidden":                 "Action non autorisée pour votre rôle",
		"date_range":                "La date de fin doit suivre la date de début",
	},
	"en": {
		"required":                  "Required",
		"name_required":             "Name is required",
		"quantity_non_negative":     "Quantity must be ≥ 0",
		"price_non_negative":        "Price must be ≥ 0",
		"price_positive":            "Unit price must be greater than 0",
		"threshold_non_negative":    "Alert threshold must be ≥ 0",
		"description_required":      "Description is required",
		"expiry_required":           "Expiry date is required",
		"expiry_after_entry":        "Expiry date must be after entry date",
		"expiry_in_past":            "Expiry date cannot be in the past",
		"date_invalid":              "Invalid date",
		"ingredient_required":       "At least one ingredient required",
		"each_quantity_positive":    "Each quantity must be > 0",
		"consume_quantity_positive": "Quantity must be greater than 0",
		"consume_exceeds_stock":     "Quantity exceeds available stock",
		"stock_insufficient":        "Insufficient stock for this quantity",
		"not_found":                 "Resource not found",
		"unauthorized":              "Session expired, please sign in again",
		"generic_error":             "Something went wrong. Please try again",
		"invalid_credentials":       "Invalid email or password",
		"menu_not_editable":         "Only draft menus can be edited",
		"save_failed":               "Saving failed",
		"status_ok":                 "OK",
		"status_proche":             "Expiring soon",
		"status_perime":             "Expired",
		"budget_ok":                 "Within budget",
		"budget_depassement":        "Over budget",
		"stock_low":                 "Low stock",
		"forbidden":                 "Your role cannot perform this action",
		"date_range":                "End date must not precede start date",
	},
}

// T translates code into lang. Unknown languages fall back to French and
// unknown codes are returned unchanged.
func T(lang, code string) string {
	if m, ok := catalogs[normalize(lang)]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalogs[DefaultLang][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language header
// or a LANG-style value ("en_US.UTF-8").
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		if _, ok := catalogs[normalize(tag)]; ok {
			return normalize(tag)
		}
	}
	return DefaultLang
}

func normalize(tag string) string {
	tag = strings.ToLower(tag)
	if i := strings.IndexAny(tag, "-_."); i >= 0 {
		tag = tag[:i]
	}
	return tag
}

// WithLang stores the language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the language stored in ctx, or DefaultLang.
func LangFromContext(ctx context.Context) string {
	if l, ok := ctx.Value(langKey{}).(string); ok && l != "" {
		return l
	}
	return DefaultLang
}
