package repository

import (
	"context"
	"strings"

	"skill-match/internal/database"
	"skill-match/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeRepository interface {
	Get(ctx context.Context, id uuid.UUID) (resume.Resume, error)
	Create(ctx context.Context, r resume.Resume) (resume.Resume, error)
	ListRecentTexts(ctx context.Context, limit int) ([]string, error)
	ListByRole(ctx context.Context, roleName string, limit int) ([]resume.Resume, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

const resumeColumns = `id, candidate_name, selected_role, resume_text, skills_hard, skills_soft, created_at`

func scanResume(row database.Row) (resume.Resume, error) {
	var r resume.Resume
	err := row.Scan(&r.ID, &r.CandidateName, &r.SelectedRole, &r.Text, &r.SkillsHard, &r.SkillsSoft, &r.CreatedAt)
	return r, err
}

func (r *PostgresResumeRepository) Get(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	res, err := scanResume(r.db.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return resume.Resume{}, ErrNotFound
		}
		return resume.Resume{}, err
	}
	return res, nil
}

func (r *PostgresResumeRepository) Create(ctx context.Context, res resume.Resume) (resume.Resume, error) {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	if res.SkillsHard == nil {
		res.SkillsHard = []string{}
	}
	if res.SkillsSoft == nil {
		res.SkillsSoft = []string{}
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO resumes (id, candidate_name, selected_role, resume_text, skills_hard, skills_soft)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		res.ID, res.CandidateName, res.SelectedRole, res.Text, res.SkillsHard, res.SkillsSoft,
	).Scan(&res.CreatedAt)
	if err != nil {
		return resume.Resume{}, err
	}
	return res, nil
}

// ListRecentTexts returns the text of the most recent resumes that have any.
func (r *PostgresResumeRepository) ListRecentTexts(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 500
	}

	rows, err := r.db.Query(ctx,
		`SELECT resume_text
		 FROM resumes
		 WHERE resume_text <> ''
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) ListByRole(ctx context.Context, roleName string, limit int) ([]resume.Resume, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+resumeColumns+`
		 FROM resumes
		 WHERE lower(selected_role) = lower($1)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		strings.TrimSpace(roleName), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Resume, 0)
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
