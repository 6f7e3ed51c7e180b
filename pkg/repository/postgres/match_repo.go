package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suvarna009/resume-matcher/pkg/match"
)

// MatchRepository хранит матчи. Списки навыков сериализуются в TEXT через
// запятую только на этой границе; replace-операции выполняются одной
// транзакцией — читатель видит либо старый набор целиком, либо новый.
type MatchRepository struct {
	pool *pgxpool.Pool
}

func NewMatchRepository(pool *pgxpool.Pool) (*MatchRepository, error) {
	r := &MatchRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MatchRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS matches (
	id UUID PRIMARY KEY,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	resume_id UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
	hard_score DOUBLE PRECISION NOT NULL,
	soft_score DOUBLE PRECISION NOT NULL,
	combined_score DOUBLE PRECISION NOT NULL,
	verdict TEXT NOT NULL,
	matched_required TEXT NOT NULL,
	missing_required TEXT NOT NULL,
	matched_preferred TEXT NOT NULL,
	missing_preferred TEXT NOT NULL,
	feedback TEXT NOT NULL,
	sim_strategy TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (job_id, resume_id)
);
CREATE INDEX IF NOT EXISTS idx_matches_job ON matches(job_id);
CREATE INDEX IF NOT EXISTS idx_matches_resume ON matches(resume_id);
`)
	return err
}

// ReplaceForJob атомарно заменяет набор матчей вакансии: delete-then-insert
// в одной транзакции.
func (r *MatchRepository) ReplaceForJob(ctx context.Context, jobID uuid.UUID, matches []match.Match) error {
	return r.replace(ctx, `DELETE FROM matches WHERE job_id = $1`, jobID, matches)
}

// ReplaceForResume — то же самое для резюме как субъекта.
func (r *MatchRepository) ReplaceForResume(ctx context.Context, resumeID uuid.UUID, matches []match.Match) error {
	return r.replace(ctx, `DELETE FROM matches WHERE resume_id = $1`, resumeID, matches)
}

func (r *MatchRepository) replace(ctx context.Context, deleteSQL string, subject uuid.UUID, matches []match.Match) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, deleteSQL, subject); err != nil {
		return err
	}
	for _, m := range matches {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now().UTC()
		}
		_, err := tx.Exec(ctx, `
INSERT INTO matches (id, job_id, resume_id, hard_score, soft_score, combined_score, verdict,
	matched_required, missing_required, matched_preferred, missing_preferred,
	feedback, sim_strategy, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`, m.ID, m.JobID, m.ResumeID, m.HardScore, m.SoftScore, m.CombinedScore, m.Verdict,
			joinTerms(m.MatchedRequired), joinTerms(m.MissingRequired),
			joinTerms(m.MatchedPreferred), joinTerms(m.MissingPreferred),
			m.Feedback, m.SimStrategy, m.CreatedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *MatchRepository) ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]match.Match, error) {
	return r.list(ctx, `
SELECT id, job_id, resume_id, hard_score, soft_score, combined_score, verdict,
	matched_required, missing_required, matched_preferred, missing_preferred,
	feedback, sim_strategy, created_at
FROM matches WHERE job_id = $1
ORDER BY combined_score DESC, resume_id
LIMIT $2 OFFSET $3
`, jobID, limit, offset)
}

func (r *MatchRepository) ListByResume(ctx context.Context, resumeID uuid.UUID, limit, offset int) ([]match.Match, error) {
	return r.list(ctx, `
SELECT id, job_id, resume_id, hard_score, soft_score, combined_score, verdict,
	matched_required, missing_required, matched_preferred, missing_preferred,
	feedback, sim_strategy, created_at
FROM matches WHERE resume_id = $1
ORDER BY combined_score DESC, job_id
LIMIT $2 OFFSET $3
`, resumeID, limit, offset)
}

func (r *MatchRepository) list(ctx context.Context, sql string, subject uuid.UUID, limit, offset int) ([]match.Match, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, sql, subject, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []match.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *MatchRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM matches`).Scan(&n)
	return n, err
}

func scanMatch(rows pgx.Rows) (match.Match, error) {
	var m match.Match
	var matchedReq, missingReq, matchedPref, missingPref string
	var created time.Time
	if err := rows.Scan(&m.ID, &m.JobID, &m.ResumeID, &m.HardScore, &m.SoftScore, &m.CombinedScore,
		&m.Verdict, &matchedReq, &missingReq, &matchedPref, &missingPref,
		&m.Feedback, &m.SimStrategy, &created); err != nil {
		return match.Match{}, err
	}
	m.MatchedRequired = splitTerms(matchedReq)
	m.MissingRequired = splitTerms(missingReq)
	m.MatchedPreferred = splitTerms(matchedPref)
	m.MissingPreferred = splitTerms(missingPref)
	m.CreatedAt = created.UTC()
	return m, nil
}

func joinTerms(terms []string) string {
	return strings.Join(terms, ",")
}

func splitTerms(csv string) []string {
	if csv == "" {
		return []string{}
	}
	return strings.Split(csv, ",")
}
