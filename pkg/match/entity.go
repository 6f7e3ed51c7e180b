package match

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Match — результат сопоставления пары (вакансия, резюме).
// Для пары существует не более одной записи; создаётся и заменяется
// только движком пересчёта, частичных обновлений нет.
// Все скоры — проценты в диапазоне [0,100].
type Match struct {
	ID               uuid.UUID `json:"id"`
	JobID            uuid.UUID `json:"jobId"`
	ResumeID         uuid.UUID `json:"resumeId"`
	HardScore        float64   `json:"hardScore"`
	SoftScore        float64   `json:"softScore"`
	CombinedScore    float64   `json:"combinedScore"`
	Verdict          string    `json:"verdict"`
	MatchedRequired  []string  `json:"matchedRequired"`
	MissingRequired  []string  `json:"missingRequired"`
	MatchedPreferred []string  `json:"matchedPreferred"`
	MissingPreferred []string  `json:"missingPreferred"`
	Feedback         string    `json:"feedback"`
	// SimStrategy — какой ярус схожести дал SoftScore ("embedding",
	// "lexical" или "none", если обе стратегии отказали и скор нулевой
	// по умолчанию, а не по расчёту).
	SimStrategy string    `json:"simStrategy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Repository — порт хранения матчей.
// Replace* обязаны быть атомарными: читатель никогда не видит
// частично заменённый набор для одной вакансии или одного резюме.
type Repository interface {
	ReplaceForJob(ctx context.Context, jobID uuid.UUID, matches []Match) error
	ReplaceForResume(ctx context.Context, resumeID uuid.UUID, matches []Match) error
	ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]Match, error)
	ListByResume(ctx context.Context, resumeID uuid.UUID, limit, offset int) ([]Match, error)
	CountAll(ctx context.Context) (int64, error)
}
