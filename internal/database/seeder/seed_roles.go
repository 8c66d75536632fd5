package seeder

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"skill-match/internal/database"
	"skill-match/internal/domain/matching"
)

type StarterRole struct {
	Name     string
	JDText   string
	Keywords []matching.KeywordRow
}

type RolesSeeder struct {
	Roles []StarterRole
}

func (RolesSeeder) Name() string { return "roles" }

func (s RolesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "roles", "id", "name", "jd_text"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "role_keywords", "id", "role_id", "keyword", "importance", "weight"); err != nil {
		return err
	}

	return inTx(ctx, db, func(tx database.Tx) error {
		for _, r := range s.Roles {
			if _, err := tx.Exec(ctx,
				`INSERT INTO roles (name, jd_text) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
				r.Name, r.JDText,
			); err != nil {
				return err
			}

			var roleID uuid.UUID
			if err := tx.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, r.Name).Scan(&roleID); err != nil {
				return fmt.Errorf("lookup role %s: %w", r.Name, err)
			}

			for _, k := range r.Keywords {
				var importance *string
				if k.Importance != "" {
					v := string(k.Importance)
					importance = &v
				}
				if _, err := tx.Exec(ctx,
					`INSERT INTO role_keywords (role_id, keyword, importance, weight) VALUES ($1, $2, $3, $4)
					 ON CONFLICT (role_id, lower(keyword)) DO NOTHING`,
					roleID, k.Keyword, importance, k.Weight,
				); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
