package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// UserLifecycleService implements the user lifecycle with soft-delete
// semantics: deleted records persist but disappear from every read path.
type UserLifecycleService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserLifecycleService(users ports.UserRepository, roles ports.RoleRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserLifecycleService {
	return &UserLifecycleService{
		users:  users,
		roles:  roles,
		hasher: hasher,
		logger: logger,
	}
}

// Create hashes the password, resolves the requested role names and persists
// the account. Unknown role names are silently dropped; when nothing
// resolves, ROLE_USER is substituted so every user ends up with at least one
// role.
func (s *UserLifecycleService) Create(ctx context.Context, in ports.CreateUserInput) (*ports.UserView, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	roles, err := s.resolveRoles(ctx, in.Roles)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}

	created, err := s.users.Create(ctx, user, roleIDs(roles))
	if err != nil {
		s.logger.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return userView(created), nil
}

func (s *UserLifecycleService) GetByID(ctx context.Context, id int64) (*ports.UserView, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return userView(user), nil
}

func (s *UserLifecycleService) List(ctx context.Context, in ports.ListInput) (*ports.Page[ports.UserView], error) {
	page, size := normalizePaging(in.Page, in.Size)

	users, total, err := s.users.List(ctx, ports.ListFilter{Search: in.Search, Page: page, Size: size})
	if err != nil {
		return nil, err
	}

	views := make([]ports.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, *userView(u))
	}
	return ports.NewPage(views, page, size, total), nil
}

// Update overwrites name and email unconditionally. Roles are only replaced
// when at least one supplied name resolves to an existing role; otherwise the
// stored set stays untouched.
func (s *UserLifecycleService) Update(ctx context.Context, id int64, in ports.UpdateUserInput) (*ports.UserView, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Email = in.Email

	var ids []int64
	if len(in.Roles) > 0 {
		resolved, err := s.roles.FindByNames(ctx, in.Roles)
		if err != nil {
			return nil, err
		}
		if len(resolved) > 0 {
			ids = roleIDs(resolved)
		}
	}

	updated, err := s.users.Update(ctx, user, ids)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Msg("user updated")
	return userView(updated), nil
}

// Delete soft-deletes the user: the row persists with deleted_at set and is
// excluded from all subsequent reads.
func (s *UserLifecycleService) Delete(ctx context.Context, id int64) error {
	if err := s.users.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// resolveRoles maps role names to stored roles, dropping unknown names and
// falling back to ROLE_USER when nothing remains.
func (s *UserLifecycleService) resolveRoles(ctx context.Context, names []string) ([]domain.Role, error) {
	if len(names) > 0 {
		roles, err := s.roles.FindByNames(ctx, names)
		if err != nil {
			return nil, err
		}
		if len(roles) > 0 {
			return roles, nil
		}
	}

	fallback, err := s.roles.FindByName(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return []domain.Role{*fallback}, nil
}

func roleIDs(roles []domain.Role) []int64 {
	ids := make([]int64, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.ID)
	}
	return ids
}

func userView(u *domain.User) *ports.UserView {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &ports.UserView{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     roles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func normalizePaging(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
