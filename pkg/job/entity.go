package job

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job описывает вакансию: текст описания и два списка навыков.
// Required — обязательные навыки, Preferred — желательные.
// Title/Company/Location — только для отображения, в скоринге не участвуют.
type Job struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	RequiredSkills  []string  `json:"requiredSkills"`
	PreferredSkills []string  `json:"preferredSkills"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Repository — порт для работы с вакансиями.
type Repository interface {
	Create(ctx context.Context, j Job) error
	// Update — повторная публикация: заменяет текст и списки навыков.
	// Все Match этой вакансии после этого невалидны, пересчёт — на вызывающем.
	Update(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, limit, offset int) ([]Job, error)
	// All — полный список для пересчёта матчей.
	All(ctx context.Context) ([]Job, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
