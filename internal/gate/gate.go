// Package gate authorizes document operations. A user's profile grants
// "resource:action" permissions; a resource policy registered for the
// resource type may additionally restrict access to a specific record
// (template authorship, for instance).
package gate

import (
	"context"
	"errors"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoProfile    = errors.New("no profile assigned")
)

// Action describes the kind of operation a user wants to perform.
type Action string

const (
	ActionView      Action = "view"
	ActionList      Action = "list"
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionGenerate  Action = "generate"
	ActionDuplicate Action = "duplicate"
	ActionActivate  Action = "activate"
)

// Resource types guarded by the gate.
const (
	ResourceTemplate    = "template"
	ResourceDocument    = "document"
	ResourceReservation = "reservation"
	ResourceProfile     = "profile"
)

// Policy restricts an action on a concrete resource. resource is nil for
// list and create checks.
type Policy[U any] interface {
	Can(ctx context.Context, user U, action Action, resource any) bool
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc[U any] func(ctx context.Context, user U, action Action, resource any) bool

func (f PolicyFunc[U]) Can(ctx context.Context, user U, action Action, resource any) bool {
	return f(ctx, user, action, resource)
}

// Gate combines profile permissions with per-resource policies.
type Gate[U comparable] struct {
	resolver ProfileResolver[U]
	policies map[string]Policy[U]
}

func New[U comparable](resolver ProfileResolver[U]) *Gate[U] {
	return &Gate[U]{resolver: resolver, policies: make(map[string]Policy[U])}
}

// Register sets the policy for resourceType, replacing any previous one.
// Registration is expected at startup, before concurrent use.
func (g *Gate[U]) Register(resourceType string, p Policy[U]) {
	g.policies[resourceType] = p
}

// Authorize returns nil when user may perform action on the resource.
// The policy runs only when a resource is supplied.
func (g *Gate[U]) Authorize(ctx context.Context, user U, action Action, resourceType string, resource any) error {
	profile, err := g.profile(ctx, user)
	if err != nil {
		return err
	}
	if !profile.HasPermission(NewPermission(resourceType, action)) {
		return ErrUnauthorized
	}
	if resource == nil {
		return nil
	}
	if p, ok := g.policies[resourceType]; ok && !p.Can(ctx, user, action, resource) {
		return ErrUnauthorized
	}
	return nil
}

func (g *Gate[U]) Can(ctx context.Context, user U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, user, action, resourceType, resource) == nil
}

// CanProfile checks the profile permission only.
func (g *Gate[U]) CanProfile(ctx context.Context, user U, action Action, resourceType string) bool {
	profile, err := g.profile(ctx, user)
	return err == nil && profile.HasPermission(NewPermission(resourceType, action))
}

// IsAdmin reports whether the user's profile holds the superadmin permission.
func (g *Gate[U]) IsAdmin(ctx context.Context, user U) bool {
	profile, err := g.profile(ctx, user)
	return err == nil && profile.HasPermission(PermissionSuperAdmin)
}

func (g *Gate[U]) profile(ctx context.Context, user U) (Profile, error) {
	var zero U
	if user == zero {
		return nil, ErrUnauthorized
	}
	profile, err := g.resolver.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNoProfile
	}
	return profile, nil
}
