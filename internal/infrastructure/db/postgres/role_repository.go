package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

const (
	insertRole       = `INSERT INTO roles (name) VALUES ($1) RETURNING id;`
	selectRoleByName = `SELECT id, name FROM roles WHERE name = $1;`
	countRoles       = `SELECT COUNT(*) FROM roles;`
)

// roleRepository is the PostgreSQL-backed implementation of
// ports.RoleRepository. Roles are written once at bootstrap and read-only
// afterwards.
type roleRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewRoleRepository(db *sql.DB, log zerolog.Logger) ports.RoleRepository {
	return &roleRepository{db: db, log: log}
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	row := r.db.QueryRowContext(ctx, insertRole, role.Name)
	if err := row.Scan(&role.ID); err != nil {
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return role, nil
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	row := r.db.QueryRowContext(ctx, selectRoleByName, name)
	if err := row.Scan(&role.ID, &role.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("query role: %w", err)
	}
	return &role, nil
}

// FindByNames resolves the given names to stored roles. Names that do not
// exist are silently dropped; the caller decides what an empty result means.
func (r *roleRepository) FindByNames(ctx context.Context, names []string) ([]domain.Role, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query, args, err := buildRolesByNamesQuery(names)
	if err != nil {
		return nil, fmt.Errorf("build roles query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Strs("names", names).Msg("roles query failed")
		return nil, fmt.Errorf("query roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role row: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role rows: %w", err)
	}
	return roles, nil
}

func (r *roleRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, countRoles).Scan(&n); err != nil {
		return 0, fmt.Errorf("count roles: %w", err)
	}
	return n, nil
}
