package policy

import (
	"context"

	"github.com/diewo77/stockchef/auth"
	"github.com/diewo77/stockchef/gate"
	"github.com/diewo77/stockchef/internal/menus"
	"github.com/diewo77/stockchef/internal/models"
)

func menuOf(resource any) (*models.Menu, bool) {
	switch m := resource.(type) {
	case *models.Menu:
		return m, m != nil
	case models.Menu:
		return &m, true
	}
	return nil, false
}

// NewMenuPolicy allows edits only on drafts and status changes only when the
// workflow permits them.
func NewMenuPolicy(wf menus.Workflow) gate.Policy[auth.Role] {
	return gate.PolicyFunc[auth.Role](func(_ context.Context, _ auth.Role, action gate.Action, resource any) bool {
		m, ok := menuOf(resource)
		if !ok {
			return false
		}
		switch action {
		case gate.ActionUpdate, gate.ActionDelete:
			return menus.CanEdit(m.Statut)
		case gate.ActionConfirm:
			_, err := wf.Next(m.Statut, menus.Confirmer)
			return err == nil
		case gate.ActionCancel:
			_, err := wf.Next(m.Statut, menus.Annuler)
			return err == nil
		case gate.ActionFulfil:
			_, err := wf.Next(m.Statut, menus.Realiser)
			return err == nil
		}
		return true
	})
}

// NewProduitPolicy forbids consuming from an empty stock.
func NewProduitPolicy() gate.Policy[auth.Role] {
	return gate.PolicyFunc[auth.Role](func(_ context.Context, _ auth.Role, action gate.Action, resource any) bool {
		var p *models.Product
		switch v := resource.(type) {
		case *models.Product:
			p = v
		case models.Product:
			p = &v
		}
		if p == nil {
			return false
		}
		if action == gate.ActionConsume {
			return p.QuantiteStock > 0
		}
		return true
	})
}
