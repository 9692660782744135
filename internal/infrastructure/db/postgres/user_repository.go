package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/rs/zerolog"

	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

const (
	insertUser = `
		INSERT INTO users (name, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at;`

	selectUserByID = `
		SELECT id, name, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL;`

	selectUserByUsername = `
		SELECT id, name, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1 AND deleted_at IS NULL;`

	updateUser = `
		UPDATE users
		SET name = $1, email = $2, updated_at = now()
		WHERE id = $3 AND deleted_at IS NULL
		RETURNING created_at, updated_at;`

	softDeleteUser = `
		UPDATE users
		SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL;`

	deleteUserRoles = `DELETE FROM user_roles WHERE user_id = $1;`
	insertUserRole  = `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2);`
	countUsers      = `SELECT COUNT(*) FROM users;`
)

// userRepository is the PostgreSQL-backed implementation of
// ports.UserRepository. Role associations live in the user_roles table and
// are resolved with an explicit join on every read.
type userRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewUserRepository(db *sql.DB, log zerolog.Logger) ports.UserRepository {
	return &userRepository{db: db, log: log}
}

// Create persists the user and its role associations in one transaction.
// Unique violations on the partial indexes map to the taken-name errors.
func (r *userRepository) Create(ctx context.Context, user *domain.User, roleIDs []int64) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, insertUser, user.Name, user.Username, user.Email, user.PasswordHash)
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, classifyUserError(err)
	}

	for _, roleID := range roleIDs {
		if _, err := tx.ExecContext(ctx, insertUserRole, user.ID, roleID); err != nil {
			return nil, fmt.Errorf("insert user role: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	roles, err := r.rolesFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, selectUserByID, id)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, selectUserByUsername, username)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	row := r.db.QueryRowContext(ctx, query, arg)
	err := row.Scan(&user.ID, &user.Name, &user.Username, &user.Email,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	roles, err := r.rolesFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return &user, nil
}

// List returns one page of non-deleted users matching the filter plus the
// total matching count, ordered by id.
func (r *userRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.User, int64, error) {
	query, args, err := buildListUsersQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("build list users query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Msg("list users query failed")
		return nil, 0, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	var ids []int64
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Username, &user.Email,
			&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
		ids = append(ids, user.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate user rows: %w", err)
	}

	if err := r.attachRoles(ctx, users, ids); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := buildCountUsersQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("build count users query: %w", err)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, total, nil
}

// Update overwrites name and email and refreshes updated_at. A nil roleIDs
// leaves the role associations untouched; non-nil replaces them atomically
// with the column update.
func (r *userRepository) Update(ctx context.Context, user *domain.User, roleIDs []int64) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, updateUser, user.Name, user.Email, user.ID)
	if err := row.Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classifyUserError(err)
	}

	if roleIDs != nil {
		if _, err := tx.ExecContext(ctx, deleteUserRoles, user.ID); err != nil {
			return nil, fmt.Errorf("clear user roles: %w", err)
		}
		for _, roleID := range roleIDs {
			if _, err := tx.ExecContext(ctx, insertUserRole, user.ID, roleID); err != nil {
				return nil, fmt.Errorf("insert user role: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	roles, err := r.rolesFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

// SoftDelete stamps deleted_at; the row is never physically removed. An
// absent or already-deleted user reports domain.ErrUserNotFound.
func (r *userRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, softDeleteUser, id, at)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Count counts all users, soft-deleted included; the bootstrap seeder uses it
// to decide whether the store is empty.
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, countUsers).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *userRepository) rolesFor(ctx context.Context, userID int64) ([]string, error) {
	users := []*domain.User{{ID: userID}}
	if err := r.attachRoles(ctx, users, []int64{userID}); err != nil {
		return nil, err
	}
	return users[0].Roles, nil
}

func (r *userRepository) attachRoles(ctx context.Context, users []*domain.User, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildUserRolesQuery(ids)
	if err != nil {
		return fmt.Errorf("build user roles query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query user roles: %w", err)
	}
	defer rows.Close()

	byUser := make(map[int64][]string, len(ids))
	for rows.Next() {
		var userID int64
		var name string
		if err := rows.Scan(&userID, &name); err != nil {
			return fmt.Errorf("scan user role row: %w", err)
		}
		byUser[userID] = append(byUser[userID], name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate user role rows: %w", err)
	}

	for _, user := range users {
		user.Roles = byUser[user.ID]
	}
	return nil
}

// classifyUserError maps unique violations on the partial indexes (unique
// among non-deleted rows only) to the taken-name sentinels.
func classifyUserError(err error) error {
	if pgErrorCode(err) == pgerrcode.UniqueViolation {
		switch pgConstraint(err) {
		case "users_username_active_idx":
			return domain.ErrUsernameTaken
		case "users_email_active_idx":
			return domain.ErrEmailTaken
		}
		return domain.ErrUsernameTaken
	}
	return fmt.Errorf("unexpected DB error: %w", err)
}
