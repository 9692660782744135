package ports

import (
	"context"
	"time"
)

// CreateUserInput carries the fields accepted when creating (or registering)
// a user. Roles holds role names; unknown names are dropped during
// resolution and an empty resolution falls back to ROLE_USER.
type CreateUserInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Roles    []string
}

// UpdateUserInput carries the mutable user fields. Name and Email always
// overwrite; Roles only replaces the stored set when at least one of the
// supplied names resolves to an existing role.
type UpdateUserInput struct {
	Name  string
	Email string
	Roles []string
}

// UserView is the public representation of a user. It never exposes the
// password hash.
type UserView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserService implements the user lifecycle: creation, lookup, paged listing,
// partial update and soft delete.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*UserView, error)
	GetByID(ctx context.Context, id int64) (*UserView, error)
	List(ctx context.Context, in ListInput) (*Page[UserView], error)
	Update(ctx context.Context, id int64, in UpdateUserInput) (*UserView, error)
	Delete(ctx context.Context, id int64) error
}
