// Package seeder loads a starter dictionary, synonym table and role so a
// fresh database can score resumes immediately.
package seeder

import (
	"context"

	"skill-match/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Defaults returns the seeders in dependency order.
func Defaults() []Seeder {
	return []Seeder{
		DictionarySeeder{Hard: starterHard, Soft: starterSoft},
		SynonymsSeeder{Rows: starterSynonyms},
		RolesSeeder{Roles: starterRoles},
	}
}
