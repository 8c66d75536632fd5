package repository

import (
	"context"
	"strings"

	"skill-match/internal/database"
	"skill-match/internal/domain/skill"

	"github.com/google/uuid"
)

type SynonymRepository interface {
	List(ctx context.Context) ([]skill.Synonym, error)
	ListSynonyms(ctx context.Context) ([]skill.SynonymRow, error)
	Get(ctx context.Context, id uuid.UUID) (skill.Synonym, error)
	Create(ctx context.Context, s skill.Synonym) (skill.Synonym, error)
	Update(ctx context.Context, s skill.Synonym) (skill.Synonym, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresSynonymRepository struct {
	db database.DB
}

func NewPostgresSynonymRepository(db database.DB) *PostgresSynonymRepository {
	return &PostgresSynonymRepository{db: db}
}

const synonymColumns = `id, token, expands_to, category, created_at, updated_at`

func (r *PostgresSynonymRepository) List(ctx context.Context) ([]skill.Synonym, error) {
	rows, err := r.db.Query(ctx, `SELECT `+synonymColumns+` FROM synonyms ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Synonym, 0)
	for rows.Next() {
		var s skill.Synonym
		if err := rows.Scan(&s.ID, &s.Token, &s.ExpandsTo, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSynonyms returns every row in creation order, which pins the variant
// key order.
func (r *PostgresSynonymRepository) ListSynonyms(ctx context.Context) ([]skill.SynonymRow, error) {
	rows, err := r.db.Query(ctx, `SELECT token, expands_to, category FROM synonyms ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.SynonymRow, 0)
	for rows.Next() {
		var row skill.SynonymRow
		if err := rows.Scan(&row.Token, &row.ExpandsTo, &row.Category); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSynonymRepository) Get(ctx context.Context, id uuid.UUID) (skill.Synonym, error) {
	var s skill.Synonym
	err := r.db.QueryRow(ctx, `SELECT `+synonymColumns+` FROM synonyms WHERE id = $1`, id).
		Scan(&s.ID, &s.Token, &s.ExpandsTo, &s.Category, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return skill.Synonym{}, ErrNotFound
		}
		return skill.Synonym{}, err
	}
	return s, nil
}

func (r *PostgresSynonymRepository) Create(ctx context.Context, s skill.Synonym) (skill.Synonym, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO synonyms (id, token, expands_to, category)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		s.ID, strings.TrimSpace(s.Token), strings.TrimSpace(s.ExpandsTo), strings.TrimSpace(s.Category),
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return skill.Synonym{}, err
	}
	return s, nil
}

func (r *PostgresSynonymRepository) Update(ctx context.Context, s skill.Synonym) (skill.Synonym, error) {
	err := r.db.QueryRow(ctx,
		`UPDATE synonyms
		 SET token = $2, expands_to = $3, category = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		s.ID, strings.TrimSpace(s.Token), strings.TrimSpace(s.ExpandsTo), strings.TrimSpace(s.Category),
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return skill.Synonym{}, ErrNotFound
		}
		return skill.Synonym{}, err
	}
	return s, nil
}

func (r *PostgresSynonymRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM synonyms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
