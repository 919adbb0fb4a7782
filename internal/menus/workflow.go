package menus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/stockchef/internal/models"
)

var (
	ErrTerminalState     = errors.New("menu is in a terminal state")
	ErrInvalidTransition = errors.New("invalid menu transition")
)

// Transition names a workflow step.
type Transition string

const (
	Confirmer Transition = "confirmer"
	Annuler   Transition = "annuler"
	Realiser  Transition = "realiser"
)

// CancelPolicy decides where "annuler" leads from CONFIRME.
type CancelPolicy int

const (
	// CancelToAnnule ends the menu in the terminal ANNULE state.
	CancelToAnnule CancelPolicy = iota
	// CancelToDraft sends the menu back to BROUILLON.
	CancelToDraft
)

func (p CancelPolicy) String() string {
	if p == CancelToDraft {
		return "brouillon"
	}
	return "annule"
}

// ParseCancelPolicy reads "annule" or "brouillon" (case-insensitive).
func ParseCancelPolicy(s string) (CancelPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "annule", "annulé":
		return CancelToAnnule, nil
	case "brouillon", "draft":
		return CancelToDraft, nil
	}
	return CancelToAnnule, fmt.Errorf("unknown cancel policy %q", s)
}

// Workflow is the menu state machine:
//
//	BROUILLON --confirmer--> CONFIRME --realiser--> REALISE
//	CONFIRME --annuler--> ANNULE (or BROUILLON with CancelToDraft)
//
// REALISE and ANNULE are terminal.
type Workflow struct {
	Cancel CancelPolicy
}

// Next returns the state reached from `from` by t.
func (w Workflow) Next(from models.MenuStatus, t Transition) (models.MenuStatus, error) {
	if from.Terminal() {
		return from, fmt.Errorf("%w: cannot %s a %s menu", ErrTerminalState, t, from)
	}
	switch {
	case t == Confirmer && from == models.MenuBrouillon:
		return models.MenuConfirme, nil
	case t == Annuler && from == models.MenuConfirme:
		if w.Cancel == CancelToDraft {
			return models.MenuBrouillon, nil
		}
		return models.MenuAnnule, nil
	case t == Realiser && from == models.MenuConfirme:
		return models.MenuRealise, nil
	}
	return from, fmt.Errorf("%w: cannot %s a %s menu", ErrInvalidTransition, t, from)
}

// Apply moves m through t. m is left untouched on error.
func (w Workflow) Apply(m *models.Menu, t Transition) error {
	next, err := w.Next(m.Statut, t)
	if err != nil {
		return err
	}
	m.Statut = next
	return nil
}

// Allowed lists the transitions valid from s.
func (w Workflow) Allowed(s models.MenuStatus) []Transition {
	var out []Transition
	for _, t := range []Transition{Confirmer, Annuler, Realiser} {
		if _, err := w.Next(s, t); err == nil {
			out = append(out, t)
		}
	}
	return out
}

// CanEdit reports whether a menu in s may change name or ingredients.
func CanEdit(s models.MenuStatus) bool {
	return s == models.MenuBrouillon
}
