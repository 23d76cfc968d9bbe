package policy

import (
	"context"

	"github.com/diewo77/go-hebergement/internal/gate"
)

// Authored is implemented by records that remember their author.
type Authored interface {
	GetUserID() uint
}

// AuthorshipPolicy lets authors change their own templates. Builtin
// templates (author zero) can only be changed by admins. Viewing,
// listing, generating and duplicating are open to anyone holding the
// profile permission.
type AuthorshipPolicy struct{}

func NewAuthorshipPolicy() *AuthorshipPolicy {
	return &AuthorshipPolicy{}
}

func (p *AuthorshipPolicy) Can(_ context.Context, userID uint, action gate.Action, resource any) bool {
	switch action {
	case gate.ActionView, gate.ActionList, gate.ActionGenerate, gate.ActionDuplicate, gate.ActionCreate:
		return true
	}
	if resource == nil {
		return true
	}
	a, ok := resource.(Authored)
	if !ok {
		return false
	}
	return a.GetUserID() != 0 && a.GetUserID() == userID
}

// AdminBypassPolicy allows admins everything and defers to inner for
// other users.
type AdminBypassPolicy struct {
	inner   gate.Policy[uint]
	isAdmin func(ctx context.Context, userID uint) bool
}

func NewAdminBypassPolicy(inner gate.Policy[uint], isAdmin func(ctx context.Context, userID uint) bool) *AdminBypassPolicy {
	return &AdminBypassPolicy{inner: inner, isAdmin: isAdmin}
}

func (p *AdminBypassPolicy) Can(ctx context.Context, userID uint, action gate.Action, resource any) bool {
	if p.isAdmin(ctx, userID) {
		return true
	}
	return p.inner.Can(ctx, userID, action, resource)
}
