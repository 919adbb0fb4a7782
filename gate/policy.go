package gate

import "context"

// Policy defines resource-level rules for a resource type, checked after the
// profile permission. U is the subject type (a role, a user id, claims...).
type Policy[U any] interface {
	// Can reports whether subject may perform action on resource.
	// resource is never nil when Can is called by the Gate.
	Can(ctx context.Context, subject U, action Action, resource any) bool
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc[U any] func(ctx context.Context, subject U, action Action, resource any) bool

func (f PolicyFunc[U]) Can(ctx context.Context, subject U, action Action, resource any) bool {
	return f(ctx, subject, action, resource)
}
