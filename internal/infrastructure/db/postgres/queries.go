package postgres

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/example/user-product-api/internal/core/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Search terms become literal LIKE patterns: case-sensitive substring match,
// wildcard characters deliberately unescaped.
func likePattern(term string) string {
	return "%" + term + "%"
}

func userSearch(term string) sq.Sqlizer {
	pattern := likePattern(term)
	return sq.Or{
		sq.Like{"name": pattern},
		sq.Like{"username": pattern},
		sq.Like{"email": pattern},
	}
}

func productSearch(term string) sq.Sqlizer {
	pattern := likePattern(term)
	return sq.Or{
		sq.Like{"p.name": pattern},
		sq.Like{"p.description": pattern},
	}
}

func buildListUsersQuery(f ports.ListFilter) (string, []any, error) {
	b := psql.Select("id", "name", "username", "email", "password_hash", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy("id").
		Limit(uint64(f.Size)).
		Offset(uint64(f.Page) * uint64(f.Size))
	if f.Search != "" {
		b = b.Where(userSearch(f.Search))
	}
	return b.ToSql()
}

func buildCountUsersQuery(f ports.ListFilter) (string, []any, error) {
	b := psql.Select("COUNT(*)").
		From("users").
		Where(sq.Eq{"deleted_at": nil})
	if f.Search != "" {
		b = b.Where(userSearch(f.Search))
	}
	return b.ToSql()
}

func buildListProductsQuery(f ports.ListFilter) (string, []any, error) {
	b := psql.Select(
		"p.id", "p.name", "p.description", "p.price", "p.stock",
		"p.created_by", "u.name", "p.created_at", "p.updated_at").
		From("products p").
		Join("users u ON u.id = p.created_by").
		Where(sq.Eq{"p.deleted_at": nil}).
		OrderBy("p.id").
		Limit(uint64(f.Size)).
		Offset(uint64(f.Page) * uint64(f.Size))
	if f.Search != "" {
		b = b.Where(productSearch(f.Search))
	}
	return b.ToSql()
}

func buildCountProductsQuery(f ports.ListFilter) (string, []any, error) {
	b := psql.Select("COUNT(*)").
		From("products p").
		Where(sq.Eq{"p.deleted_at": nil})
	if f.Search != "" {
		b = b.Where(productSearch(f.Search))
	}
	return b.ToSql()
}

func buildRolesByNamesQuery(names []string) (string, []any, error) {
	return psql.Select("id", "name").
		From("roles").
		Where(sq.Eq{"name": names}).
		OrderBy("id").
		ToSql()
}

// buildUserRolesQuery fetches the resolved role names for a batch of users in
// one round trip.
func buildUserRolesQuery(userIDs []int64) (string, []any, error) {
	return psql.Select("ur.user_id", "r.name").
		From("user_roles ur").
		Join("roles r ON r.id = ur.role_id").
		Where(sq.Eq{"ur.user_id": userIDs}).
		OrderBy("ur.user_id", "r.id").
		ToSql()
}
