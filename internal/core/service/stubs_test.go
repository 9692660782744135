package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

// In-memory repository stubs shared by the service tests.

type stubRoleRepo struct {
	nextID int64
	roles  map[string]domain.Role
}

func newStubRoleRepo(names ...string) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]domain.Role)}
	for _, name := range names {
		_, _ = r.Create(context.Background(), &domain.Role{Name: name})
	}
	return r
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	r.nextID++
	created := domain.Role{ID: r.nextID, Name: role.Name}
	r.roles[role.Name] = created
	return &created, nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return &role, nil
}

func (r *stubRoleRepo) FindByNames(_ context.Context, names []string) ([]domain.Role, error) {
	var out []domain.Role
	for _, name := range names {
		if role, ok := r.roles[name]; ok {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *stubRoleRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.roles)), nil
}

func (r *stubRoleRepo) nameByID(id int64) string {
	for _, role := range r.roles {
		if role.ID == id {
			return role.Name
		}
	}
	return ""
}

type stubUserRepo struct {
	roles  *stubRoleRepo
	nextID int64
	users  map[int64]*domain.User
}

func newStubUserRepo(roles *stubRoleRepo) *stubUserRepo {
	return &stubUserRepo{roles: roles, users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User, roleIDs []int64) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.DeletedAt != nil {
			continue
		}
		if existing.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	r.nextID++
	now := time.Now().UTC()
	stored := cloneUser(user)
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.Roles = nil
	for _, id := range roleIDs {
		if name := r.roles.nameByID(id); name != "" {
			stored.Roles = append(stored.Roles, name)
		}
	}
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.DeletedAt == nil && user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, user := range r.users {
		if user.DeletedAt != nil {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(user.Name, filter.Search) &&
			!strings.Contains(user.Username, filter.Search) &&
			!strings.Contains(user.Email, filter.Search) {
			continue
		}
		matched = append(matched, cloneUser(user))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := filter.Page * filter.Size
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User, roleIDs []int64) (*domain.User, error) {
	stored, ok := r.users[user.ID]
	if !ok || stored.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.UpdatedAt = time.Now().UTC()
	if roleIDs != nil {
		stored.Roles = nil
		for _, id := range roleIDs {
			if name := r.roles.nameByID(id); name != "" {
				stored.Roles = append(stored.Roles, name)
			}
		}
	}
	return cloneUser(stored), nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id int64, at time.Time) error {
	stored, ok := r.users[id]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrUserNotFound
	}
	stored.DeletedAt = &at
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubProductRepo struct {
	nextID   int64
	products map[int64]*domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[int64]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.nextID++
	now := time.Now().UTC()
	stored := cloneProduct(product)
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.products[stored.ID] = stored
	return cloneProduct(stored), nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok || product.DeletedAt != nil {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(product), nil
}

func (r *stubProductRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.Product, int64, error) {
	var matched []*domain.Product
	for _, product := range r.products {
		if product.DeletedAt != nil {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(product.Name, filter.Search) &&
			!strings.Contains(product.Description, filter.Search) {
			continue
		}
		matched = append(matched, cloneProduct(product))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := filter.Page * filter.Size
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	stored, ok := r.products[product.ID]
	if !ok || stored.DeletedAt != nil {
		return nil, domain.ErrProductNotFound
	}
	stored.Name = product.Name
	stored.Description = product.Description
	stored.Price = product.Price
	stored.Stock = product.Stock
	stored.UpdatedAt = time.Now().UTC()
	return cloneProduct(stored), nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id int64, at time.Time) error {
	stored, ok := r.products[id]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrProductNotFound
	}
	stored.DeletedAt = &at
	return nil
}
