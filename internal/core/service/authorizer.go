package service

import (
	"context"
	"errors"

	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

// RoleAuthorizer is the authorization gate: it resolves a verified subject to
// its account and role set and evaluates the endpoint's role requirement as a
// pure predicate. The account is re-resolved on every request, so role
// changes and soft deletions take effect immediately even though outstanding
// tokens stay cryptographically valid.
type RoleAuthorizer struct {
	users ports.UserRepository
}

func NewRoleAuthorizer(users ports.UserRepository) *RoleAuthorizer {
	return &RoleAuthorizer{users: users}
}

// Authorize looks the subject up among non-deleted users and permits the
// action iff requiredRole is empty or present in the user's role set. An
// absent account is an authentication failure, distinguishable from an
// authorization failure.
func (a *RoleAuthorizer) Authorize(ctx context.Context, username, requiredRole string) (domain.Identity, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Identity{}, domain.ErrUnauthenticated
		}
		return domain.Identity{}, err
	}

	identity := domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		Roles:    user.Roles,
	}

	if requiredRole != "" && !user.HasRole(requiredRole) {
		return domain.Identity{}, domain.ErrForbidden
	}
	return identity, nil
}
