package repository

import (
	"context"

	"skill-match/internal/database"
	"skill-match/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	ListByKind(ctx context.Context, kind skill.Kind) ([]skill.DictionaryEntry, error)
	Dictionary(ctx context.Context) (skill.Dictionary, error)
	Append(ctx context.Context, kind skill.Kind, tokens []string) (int, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListByKind(ctx context.Context, kind skill.Kind) ([]skill.DictionaryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, token, kind, created_at
		 FROM skill_dictionary
		 WHERE kind = $1
		 ORDER BY token ASC`,
		string(kind),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.DictionaryEntry, 0)
	for rows.Next() {
		var e skill.DictionaryEntry
		var k string
		if err := rows.Scan(&e.ID, &e.Token, &k, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = skill.Kind(k)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) Dictionary(ctx context.Context) (skill.Dictionary, error) {
	rows, err := r.db.Query(ctx, `SELECT token, kind FROM skill_dictionary ORDER BY token ASC`)
	if err != nil {
		return skill.Dictionary{}, err
	}
	defer rows.Close()

	var d skill.Dictionary
	for rows.Next() {
		var token, kind string
		if err := rows.Scan(&token, &kind); err != nil {
			return skill.Dictionary{}, err
		}
		switch skill.Kind(kind) {
		case skill.KindHard:
			d.Hard = append(d.Hard, token)
		case skill.KindSoft:
			d.Soft = append(d.Soft, token)
		}
	}
	if err := rows.Err(); err != nil {
		return skill.Dictionary{}, err
	}
	return d, nil
}

// Append stores normalized tokens that are not yet in the dictionary and
// returns how many were added.
func (r *PostgresSkillRepository) Append(ctx context.Context, kind skill.Kind, tokens []string) (int, error) {
	if len(tokens) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	added := 0
	seen := skill.TokenSet{}
	for _, t := range tokens {
		t = skill.Normalize(t)
		if t == "" || seen.Has(t) {
			continue
		}
		seen.Add(t)
		n, err := tx.Exec(ctx,
			`INSERT INTO skill_dictionary (id, token, kind) VALUES ($1, $2, $3)
			 ON CONFLICT (token, kind) DO NOTHING`,
			uuid.New(), t, string(kind),
		)
		if err != nil {
			return 0, err
		}
		added += int(n)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return added, nil
}
