package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

// Seeder bootstraps the well-known roles and two initial accounts when the
// store is empty. It runs once at startup and is a no-op on a populated
// database.
type Seeder struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewSeeder(users ports.UserRepository, roles ports.RoleRepository, hasher ports.PasswordHasher, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, roles: roles, hasher: hasher, log: log}
}

func (s *Seeder) Run(ctx context.Context) error {
	roleCount, err := s.roles.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count roles: %w", err)
	}
	if roleCount == 0 {
		if err := s.seedRoles(ctx); err != nil {
			return err
		}
	}

	userCount, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if userCount == 0 {
		if err := s.seedUsers(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedRoles(ctx context.Context) error {
	for _, name := range []string{domain.RoleUser, domain.RoleAdmin} {
		if _, err := s.roles.Create(ctx, &domain.Role{Name: name}); err != nil {
			return fmt.Errorf("seed: create role %s: %w", name, err)
		}
	}
	s.log.Info().Msg("roles seeded")
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	// Default credentials for local development; replace in any real
	// deployment.
	accounts := []struct {
		name     string
		username string
		email    string
		password string
		role     string
	}{
		{"Administrator", "admin", "admin@example.com", "admin123", domain.RoleAdmin},
		{"Regular User", "user", "user@example.com", "user123", domain.RoleUser},
	}

	for _, a := range accounts {
		role, err := s.roles.FindByName(ctx, a.role)
		if err != nil {
			return fmt.Errorf("seed: resolve role %s: %w", a.role, err)
		}

		hash, err := s.hasher.Hash(a.password)
		if err != nil {
			return fmt.Errorf("seed: hash password: %w", err)
		}

		user := &domain.User{
			Name:         a.name,
			Username:     a.username,
			Email:        a.email,
			PasswordHash: hash,
		}
		if _, err := s.users.Create(ctx, user, []int64{role.ID}); err != nil {
			return fmt.Errorf("seed: create user %s: %w", a.username, err)
		}
		s.log.Info().Str("username", a.username).Msg("bootstrap user seeded")
	}
	return nil
}
