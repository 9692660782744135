package ports

import (
	"context"
	"time"

	"github.com/example/user-product-api/internal/core/domain"
)

// ListFilter carries the persistence-level query parameters for paged
// listings. Offsets are computed from the 0-based Page and Size.
type ListFilter struct {
	Search string
	Page   int
	Size   int
}

// UserRepository defines persistence operations for user accounts. All read
// methods exclude soft-deleted rows; a soft-deleted user is reported as
// domain.ErrUserNotFound, indistinguishable from an absent one.
type UserRepository interface {
	// Create persists the user and its role associations. The returned user
	// carries server-assigned fields (ID, timestamps) and resolved role names.
	Create(ctx context.Context, user *domain.User, roleIDs []int64) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns one page of non-deleted users matching filter plus the
	// total matching count, ordered by id.
	List(ctx context.Context, filter ListFilter) ([]*domain.User, int64, error)
	// Update overwrites the mutable columns and refreshes updated_at. A nil
	// roleIDs leaves the role associations untouched; non-nil replaces them.
	Update(ctx context.Context, user *domain.User, roleIDs []int64) (*domain.User, error)
	// SoftDelete stamps deleted_at. Returns domain.ErrUserNotFound when the
	// row is absent or already soft-deleted.
	SoftDelete(ctx context.Context, id int64, at time.Time) error
	Count(ctx context.Context) (int64, error)
}

// RoleRepository defines persistence operations for the immutable role set.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	// FindByNames resolves the given role names to roles, silently dropping
	// names that do not exist.
	FindByNames(ctx context.Context, names []string) ([]domain.Role, error)
	Count(ctx context.Context) (int64, error)
}
