package repository

import (
	"context"
	"strings"

	"skill-match/internal/database"
	"skill-match/internal/domain/role"

	"github.com/google/uuid"
)

type RoleRepository interface {
	ListRoles(ctx context.Context) ([]role.Role, error)
	GetRole(ctx context.Context, name string) (role.Role, error)
	UpsertRole(ctx context.Context, name, jdText string) (role.Role, error)
	ListKeywords(ctx context.Context, roleID uuid.UUID) ([]role.Keyword, error)
	UpsertKeyword(ctx context.Context, k role.Keyword) (role.Keyword, error)
	DeleteKeyword(ctx context.Context, roleID, keywordID uuid.UUID) error
}

type PostgresRoleRepository struct {
	db database.DB
}

func NewPostgresRoleRepository(db database.DB) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

func (r *PostgresRoleRepository) ListRoles(ctx context.Context) ([]role.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, jd_text, created_at, updated_at FROM roles ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]role.Role, 0)
	for rows.Next() {
		var ro role.Role
		if err := rows.Scan(&ro.ID, &ro.Name, &ro.JDText, &ro.CreatedAt, &ro.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRoleRepository) GetRole(ctx context.Context, name string) (role.Role, error) {
	var ro role.Role
	err := r.db.QueryRow(ctx,
		`SELECT id, name, jd_text, created_at, updated_at FROM roles WHERE lower(name) = lower($1)`,
		strings.TrimSpace(name),
	).Scan(&ro.ID, &ro.Name, &ro.JDText, &ro.CreatedAt, &ro.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return role.Role{}, ErrNotFound
		}
		return role.Role{}, err
	}
	return ro, nil
}

func (r *PostgresRoleRepository) UpsertRole(ctx context.Context, name, jdText string) (role.Role, error) {
	var ro role.Role
	err := r.db.QueryRow(ctx,
		`INSERT INTO roles (id, name, jd_text) VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET jd_text = EXCLUDED.jd_text, updated_at = now()
		 RETURNING id, name, jd_text, created_at, updated_at`,
		uuid.New(), strings.TrimSpace(name), jdText,
	).Scan(&ro.ID, &ro.Name, &ro.JDText, &ro.CreatedAt, &ro.UpdatedAt)
	if err != nil {
		return role.Role{}, err
	}
	return ro, nil
}

func (r *PostgresRoleRepository) ListKeywords(ctx context.Context, roleID uuid.UUID) ([]role.Keyword, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, role_id, keyword, importance, weight, created_at
		 FROM role_keywords
		 WHERE role_id = $1
		 ORDER BY created_at ASC, id ASC`,
		roleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]role.Keyword, 0)
	for rows.Next() {
		var k role.Keyword
		if err := rows.Scan(&k.ID, &k.RoleID, &k.Keyword, &k.Importance, &k.Weight, &k.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertKeyword updates the row when k.ID is set and inserts it otherwise.
func (r *PostgresRoleRepository) UpsertKeyword(ctx context.Context, k role.Keyword) (role.Keyword, error) {
	k.Keyword = strings.TrimSpace(k.Keyword)
	if k.ID != uuid.Nil {
		err := r.db.QueryRow(ctx,
			`UPDATE role_keywords SET keyword = $3, importance = $4, weight = $5
			 WHERE id = $1 AND role_id = $2
			 RETURNING created_at`,
			k.ID, k.RoleID, k.Keyword, k.Importance, k.Weight,
		).Scan(&k.CreatedAt)
		if err != nil {
			if isNoRows(err) {
				return role.Keyword{}, ErrNotFound
			}
			return role.Keyword{}, err
		}
		return k, nil
	}

	k.ID = uuid.New()
	err := r.db.QueryRow(ctx,
		`INSERT INTO role_keywords (id, role_id, keyword, importance, weight)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		k.ID, k.RoleID, k.Keyword, k.Importance, k.Weight,
	).Scan(&k.CreatedAt)
	if err != nil {
		return role.Keyword{}, err
	}
	return k, nil
}

func (r *PostgresRoleRepository) DeleteKeyword(ctx context.Context, roleID, keywordID uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM role_keywords WHERE id = $1 AND role_id = $2`, keywordID, roleID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
