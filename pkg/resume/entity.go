package resume

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Resume хранит загруженное резюме и извлечённый из него текст.
// Записи append-only: новая загрузка — новое резюме, правок на месте нет.
type Resume struct {
	ID          uuid.UUID  `json:"id"`
	CandidateID *uuid.UUID `json:"candidateId,omitempty"`
	Filename    string     `json:"filename"`
	Text        string     `json:"text"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Repository — порт доступа к резюме.
type Repository interface {
	Create(ctx context.Context, r Resume) error
	GetByID(ctx context.Context, id uuid.UUID) (Resume, error)
	List(ctx context.Context, limit, offset int) ([]Resume, error)
	// All — полный список для пересчёта матчей.
	All(ctx context.Context) ([]Resume, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
