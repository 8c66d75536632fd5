package seeder

import (
	"context"

	"skill-match/internal/database"
	"skill-match/internal/domain/skill"
)

type DictionarySeeder struct {
	Hard []string
	Soft []string
}

func (DictionarySeeder) Name() string { return "skill_dictionary" }

func (s DictionarySeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skill_dictionary", "id", "token", "kind", "created_at"); err != nil {
		return err
	}

	return inTx(ctx, db, func(tx database.Tx) error {
		for kind, tokens := range map[skill.Kind][]string{skill.KindHard: s.Hard, skill.KindSoft: s.Soft} {
			for _, t := range tokens {
				t = skill.Normalize(t)
				if t == "" {
					continue
				}
				if _, err := tx.Exec(ctx,
					`INSERT INTO skill_dictionary (token, kind) VALUES ($1, $2) ON CONFLICT (token, kind) DO NOTHING`,
					t, string(kind),
				); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

type SynonymsSeeder struct {
	Rows []skill.SynonymRow
}

func (SynonymsSeeder) Name() string { return "synonyms" }

// Run inserts rows in order so the seq column preserves it.
func (s SynonymsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "synonyms", "id", "seq", "token", "expands_to", "category"); err != nil {
		return err
	}

	return inTx(ctx, db, func(tx database.Tx) error {
		for _, row := range s.Rows {
			if skill.Normalize(row.Token) == "" {
				continue
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO synonyms (token, expands_to, category) VALUES ($1, $2, $3) ON CONFLICT (lower(token)) DO NOTHING`,
				row.Token, row.ExpandsTo, row.Category,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
