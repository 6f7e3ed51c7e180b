package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suvarna009/resume-matcher/pkg/resume"
)

// ResumeRepository хранит резюме вместе с извлечённым текстом.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) (*ResumeRepository, error) {
	r := &ResumeRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ResumeRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS resumes (
	id UUID PRIMARY KEY,
	candidate_id UUID,
	filename TEXT NOT NULL,
	parsed_text TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resumes_candidate ON resumes(candidate_id);
`)
	return err
}

func (r *ResumeRepository) Create(ctx context.Context, rs resume.Resume) error {
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	if rs.CreatedAt.IsZero() {
		rs.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO resumes (id, candidate_id, filename, parsed_text, created_at)
VALUES ($1, $2, $3, $4, $5)
`, rs.ID, rs.CandidateID, rs.Filename, rs.Text, rs.CreatedAt)
	return err
}

func (r *ResumeRepository) GetByID(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, candidate_id, filename, parsed_text, created_at
FROM resumes WHERE id = $1
`, id)
	return scanResume(row)
}

func (r *ResumeRepository) List(ctx context.Context, limit, offset int) ([]resume.Resume, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, candidate_id, filename, parsed_text, created_at
FROM resumes ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResumes(rows)
}

func (r *ResumeRepository) All(ctx context.Context) ([]resume.Resume, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, candidate_id, filename, parsed_text, created_at
FROM resumes ORDER BY created_at
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResumes(rows)
}

func (r *ResumeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resumes`).Scan(&n)
	return n, err
}

func (r *ResumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanResume(row rowScanner) (resume.Resume, error) {
	var rs resume.Resume
	var created time.Time
	if err := row.Scan(&rs.ID, &rs.CandidateID, &rs.Filename, &rs.Text, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, pgx.ErrNoRows
		}
		return resume.Resume{}, err
	}
	rs.CreatedAt = created.UTC()
	return rs, nil
}

func collectResumes(rows pgx.Rows) ([]resume.Resume, error) {
	var res []resume.Resume
	for rows.Next() {
		rs, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rs)
	}
	return res, rows.Err()
}
