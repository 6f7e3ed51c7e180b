package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suvarna009/resume-matcher/pkg/job"
	"github.com/suvarna009/resume-matcher/pkg/nlp"
)

// JobRepository хранит вакансии. Списки навыков лежат как TEXT с
// разделителем-запятой — это деталь хранения: наружу всегда отдаются
// упорядоченные множества, join/split происходит только здесь.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	location TEXT NOT NULL,
	description TEXT NOT NULL,
	required_skills TEXT NOT NULL,
	preferred_skills TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (id, title, company, location, description, required_skills, preferred_skills, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, j.ID, strings.TrimSpace(j.Title), j.Company, j.Location, j.Description,
		joinSkills(j.RequiredSkills), joinSkills(j.PreferredSkills), j.CreatedAt)
	return err
}

// Update — повторная публикация вакансии: текст и навыки заменяются целиком.
func (r *JobRepository) Update(ctx context.Context, j job.Job) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE jobs
SET title = $2, company = $3, location = $4, description = $5,
	required_skills = $6, preferred_skills = $7
WHERE id = $1
`, j.ID, strings.TrimSpace(j.Title), j.Company, j.Location, j.Description,
		joinSkills(j.RequiredSkills), joinSkills(j.PreferredSkills))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, company, location, description, required_skills, preferred_skills, created_at
FROM jobs WHERE id = $1
`, id)
	return scanJob(row)
}

func (r *JobRepository) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, title, company, location, description, required_skills, preferred_skills, created_at
FROM jobs ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) All(ctx context.Context) ([]job.Job, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, company, location, description, required_skills, preferred_skills, created_at
FROM jobs ORDER BY created_at
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n)
	return n, err
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (job.Job, error) {
	var j job.Job
	var required, preferred string
	var created time.Time
	if err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &required, &preferred, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, pgx.ErrNoRows
		}
		return job.Job{}, err
	}
	j.RequiredSkills = nlp.ParseSkills(required)
	j.PreferredSkills = nlp.ParseSkills(preferred)
	j.CreatedAt = created.UTC()
	return j, nil
}

func collectJobs(rows pgx.Rows) ([]job.Job, error) {
	var res []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}

func joinSkills(skills []string) string {
	return strings.Join(nlp.NormalizeSkills(skills), ",")
}
