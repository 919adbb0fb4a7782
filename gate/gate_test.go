package gate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/stockchef/gate"
)

type lockedResource struct {
	Locked bool
}

// lockPolicy denies updates on locked resources.
var lockPolicy = gate.PolicyFunc[string](func(_ context.Context, _ string, action gate.Action, resource any) bool {
	r, ok := resource.(*lockedResource)
	if !ok {
		return false
	}
	return action != gate.ActionUpdate || !r.Locked
})

func newTestGate() *gate.Gate[string] {
	resolver := gate.NewStaticResolver[string]()
	resolver.Set("chef", gate.NewStaticProfile("chef",
		gate.NewPermission("menu", gate.ActionCreate),
		gate.NewPermission("menu", gate.ActionUpdate),
		gate.NewPermission("menu", gate.ActionView),
	))
	resolver.Set("employee", gate.NewStaticProfile("employee", "*:view", "*:list"))
	return gate.New[string](resolver)
}

func TestGate_ProfileOnly(t *testing.T) {
	g := newTestGate()
	ctx := context.Background()

	if !g.Can(ctx, "chef", gate.ActionCreate, "menu", nil) {
		t.Error("chef should create menus")
	}
	if g.Can(ctx, "chef", gate.ActionDelete, "menu", nil) {
		t.Error("chef should not delete menus")
	}
	if !g.Can(ctx, "employee", gate.ActionList, "produit", nil) {
		t.Error("employee should list products through *:list")
	}
	if g.Can(ctx, "employee", gate.ActionConsume, "produit", nil) {
		t.Error("employee should not consume products")
	}
}

func TestGate_Authorize_Errors(t *testing.T) {
	g := newTestGate()
	ctx := context.Background()

	if err := g.Authorize(ctx, "", gate.ActionView, "menu", nil); err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if err := g.Authorize(ctx, "ghost", gate.ActionView, "menu", nil); err != gate.ErrNoProfile {
		t.Errorf("expected ErrNoProfile, got %v", err)
	}
	if err := g.Authorize(ctx, "chef", gate.ActionDelete, "menu", nil); err != gate.ErrForbidden {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestGate_ResolverError(t *testing.T) {
	boom := errors.New("boom")
	g := gate.New[string](failingResolver{err: boom})
	if err := g.Authorize(context.Background(), "chef", gate.ActionView, "menu", nil); !errors.Is(err, boom) {
		t.Errorf("expected resolver error, got %v", err)
	}
}

func TestGate_WithResourcePolicy(t *testing.T) {
	g := newTestGate()
	g.Register("menu", lockPolicy)
	ctx := context.Background()

	if !g.Can(ctx, "chef", gate.ActionUpdate, "menu", &lockedResource{Locked: false}) {
		t.Error("unlocked menu should be editable")
	}
	if g.Can(ctx, "chef", gate.ActionUpdate, "menu", &lockedResource{Locked: true}) {
		t.Error("locked menu should not be editable")
	}
	if !g.Can(ctx, "chef", gate.ActionView, "menu", &lockedResource{Locked: true}) {
		t.Error("locked menu should still be viewable")
	}
}

func TestGate_CanProfile_IgnoresPolicy(t *testing.T) {
	g := newTestGate()
	g.Register("menu", gate.PolicyFunc[string](func(context.Context, string, gate.Action, any) bool { return false }))

	if !g.CanProfile(context.Background(), "chef", gate.ActionUpdate, "menu") {
		t.Error("CanProfile should ignore resource policies")
	}
}

type failingResolver struct{ err error }

func (r failingResolver) Resolve(context.Context, string) (gate.Profile, error) {
	return nil, r.err
}
