// Package gate is a small profile/policy authorization layer.
//
// A Gate resolves the subject to a Profile and checks the "resource:action"
// permission, then runs the resource policy registered for that resource
// type when a concrete resource is supplied. The package knows nothing about
// the domain; U is any comparable subject type (a role name, a user id...).
package gate

import "context"

// Gate combines profile permissions with per-resource policies.
type Gate[U comparable] struct {
	resolver ProfileResolver[U]
	policies map[string]Policy[U]
}

// New creates a gate backed by resolver.
func New[U comparable](resolver ProfileResolver[U]) *Gate[U] {
	return &Gate[U]{
		resolver: resolver,
		policies: make(map[string]Policy[U]),
	}
}

// Register adds a resource policy, replacing any previous one.
func (g *Gate[U]) Register(resourceType string, p Policy[U]) {
	g.policies[resourceType] = p
}

// Authorize checks, in order:
//  1. subject is not the zero value (ErrUnauthorized)
//  2. subject resolves to a profile (ErrNoProfile)
//  3. the profile grants resource:action (ErrForbidden)
//  4. the resource policy, when resource is non-nil (ErrForbidden)
func (g *Gate[U]) Authorize(ctx context.Context, subject U, action Action, resourceType string, resource any) error {
	var zero U
	if subject == zero {
		return ErrUnauthorized
	}
	profile, err := g.resolver.Resolve(ctx, subject)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNoProfile
	}
	if !profile.HasPermission(NewPermission(resourceType, action)) {
		return ErrForbidden
	}
	if resource != nil {
		if p, ok := g.policies[resourceType]; ok && !p.Can(ctx, subject, action, resource) {
			return ErrForbidden
		}
	}
	return nil
}

// Can is Authorize returning a bool.
func (g *Gate[U]) Can(ctx context.Context, subject U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, subject, action, resourceType, resource) == nil
}

// CanProfile checks only the profile permission. Useful to show or hide an
// action before a specific resource is loaded.
func (g *Gate[U]) CanProfile(ctx context.Context, subject U, action Action, resourceType string) bool {
	return g.Authorize(ctx, subject, action, resourceType, nil) == nil
}
