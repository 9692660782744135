package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

func newUserFixture(t *testing.T) (*UserLifecycleService, *stubUserRepo, *stubRoleRepo) {
	t.Helper()
	roles := newStubRoleRepo(domain.RoleUser, domain.RoleAdmin)
	users := newStubUserRepo(roles)
	svc := NewUserLifecycleService(users, roles, NewBcryptHasher(), zerolog.Nop())
	return svc, users, roles
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	svc, users, _ := newUserFixture(t)

	view, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	stored, err := users.FindByID(context.Background(), view.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if stored.PasswordHash == "s3cret" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Create_RoleFallback(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	cases := []struct {
		name  string
		roles []string
		want  []string
	}{
		{"no roles", nil, []string{domain.RoleUser}},
		{"empty roles", []string{}, []string{domain.RoleUser}},
		{"unknown roles only", []string{"ROLE_BOGUS"}, []string{domain.RoleUser}},
		{"known role", []string{domain.RoleAdmin}, []string{domain.RoleAdmin}},
		{"known among unknown", []string{"ROLE_BOGUS", domain.RoleAdmin}, []string{domain.RoleAdmin}},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view, err := svc.Create(context.Background(), ports.CreateUserInput{
				Name:     "User",
				Username: fmt.Sprintf("user%d", i),
				Email:    fmt.Sprintf("user%d@example.com", i),
				Password: "s3cret",
				Roles:    tc.roles,
			})
			if err != nil {
				t.Fatalf("Create returned error: %v", err)
			}
			if len(view.Roles) != len(tc.want) {
				t.Fatalf("expected roles %v, got %v", tc.want, view.Roles)
			}
			for j := range tc.want {
				if view.Roles[j] != tc.want[j] {
					t.Fatalf("expected roles %v, got %v", tc.want, view.Roles)
				}
			}
		})
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Alice", Username: "alice", Email: "shared@example.com", Password: "s3cret",
	}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Bob", Username: "bob", Email: "shared@example.com", Password: "s3cret",
	}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Update_OverwritesNameAndEmail(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	view, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(context.Background(), view.ID, ports.UpdateUserInput{
		Name: "Alice Cooper", Email: "cooper@example.com",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Alice Cooper" || updated.Email != "cooper@example.com" {
		t.Fatalf("expected fields overwritten, got %+v", updated)
	}
	if updated.Username != "alice" {
		t.Fatalf("username must be immutable, got %q", updated.Username)
	}
}

func TestUserService_Update_RoleReplacement(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	view, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Unknown names only: stored roles stay untouched.
	updated, err := svc.Update(context.Background(), view.ID, ports.UpdateUserInput{
		Name: "Alice", Email: "alice@example.com", Roles: []string{"ROLE_BOGUS"},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(updated.Roles) != 1 || updated.Roles[0] != domain.RoleUser {
		t.Fatalf("expected roles kept as [ROLE_USER], got %v", updated.Roles)
	}

	// At least one resolvable name: the set is replaced.
	updated, err = svc.Update(context.Background(), view.ID, ports.UpdateUserInput{
		Name: "Alice", Email: "alice@example.com", Roles: []string{domain.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(updated.Roles) != 1 || updated.Roles[0] != domain.RoleAdmin {
		t.Fatalf("expected roles replaced with [ROLE_ADMIN], got %v", updated.Roles)
	}

	// Empty list: stored roles stay untouched.
	updated, err = svc.Update(context.Background(), view.ID, ports.UpdateUserInput{
		Name: "Alice", Email: "alice@example.com",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(updated.Roles) != 1 || updated.Roles[0] != domain.RoleAdmin {
		t.Fatalf("expected roles kept as [ROLE_ADMIN], got %v", updated.Roles)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	if _, err := svc.Update(context.Background(), 42, ports.UpdateUserInput{Name: "X", Email: "x@example.com"}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_HidesUser(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	view, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(context.Background(), view.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), view.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), view.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}

	page, err := svc.List(context.Background(), ports.ListInput{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.TotalElements != 0 {
		t.Fatalf("deleted user must not appear in listings, total=%d", page.TotalElements)
	}
}

func TestUserService_Delete_FreesUsername(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	view, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), view.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Alice Again", Username: "alice", Email: "alice@example.com", Password: "s3cret",
	}); err != nil {
		t.Fatalf("expected username reusable after soft delete, got %v", err)
	}
}

func TestUserService_List_Pagination(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	for i := 0; i < 25; i++ {
		if _, err := svc.Create(context.Background(), ports.CreateUserInput{
			Name:     fmt.Sprintf("User %02d", i),
			Username: fmt.Sprintf("user%02d", i),
			Email:    fmt.Sprintf("user%02d@example.com", i),
			Password: "s3cret",
		}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	seen := 0
	for p := 0; ; p++ {
		page, err := svc.List(context.Background(), ports.ListInput{Page: p, Size: 10})
		if err != nil {
			t.Fatalf("List returned error: %v", err)
		}
		if page.TotalElements != 25 {
			t.Fatalf("expected 25 total elements, got %d", page.TotalElements)
		}
		if page.TotalPages != 3 {
			t.Fatalf("expected 3 total pages, got %d", page.TotalPages)
		}
		seen += len(page.Items)
		if page.Last {
			if len(page.Items) != 5 {
				t.Fatalf("expected 5 items on the last page, got %d", len(page.Items))
			}
			break
		}
		if len(page.Items) != 10 {
			t.Fatalf("expected full page of 10, got %d", len(page.Items))
		}
	}
	if seen != 25 {
		t.Fatalf("expected 25 items across pages, got %d", seen)
	}
}

func TestUserService_List_BeyondLastPage(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "s3cret",
	}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	page, err := svc.List(context.Background(), ports.ListInput{Page: 5, Size: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(page.Items))
	}
	if page.Items == nil {
		t.Fatalf("items must serialize as an empty array, not null")
	}
	if page.TotalElements != 1 {
		t.Fatalf("expected total 1, got %d", page.TotalElements)
	}
}

func TestUserService_List_Search(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	inputs := []ports.CreateUserInput{
		{Name: "Alice Smith", Username: "asmith", Email: "alice@example.com", Password: "s3cret"},
		{Name: "Bob Jones", Username: "bjones", Email: "bob@example.com", Password: "s3cret"},
		{Name: "Carol Smith", Username: "csmith", Email: "carol@example.com", Password: "s3cret"},
	}
	for _, in := range inputs {
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	page, err := svc.List(context.Background(), ports.ListInput{Search: "Smith"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.TotalElements != 2 {
		t.Fatalf("expected 2 matches for Smith, got %d", page.TotalElements)
	}

	// Matching is case-sensitive.
	page, err = svc.List(context.Background(), ports.ListInput{Search: "smith"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.TotalElements != 2 {
		t.Fatalf("expected 2 username matches for smith, got %d", page.TotalElements)
	}

	page, err = svc.List(context.Background(), ports.ListInput{Search: "SMITH"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.TotalElements != 0 {
		t.Fatalf("expected 0 matches for SMITH, got %d", page.TotalElements)
	}
}

func TestNormalizePaging(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 0, 10},
		{-3, -1, 0, 10},
		{2, 50, 2, 50},
		{1, 1000, 1, 100},
	}
	for _, tc := range cases {
		page, size := normalizePaging(tc.page, tc.size)
		if page != tc.wantPage || size != tc.wantSize {
			t.Fatalf("normalizePaging(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.size, page, size, tc.wantPage, tc.wantSize)
		}
	}
}
