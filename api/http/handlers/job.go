package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suvarna009/resume-matcher/api/http/presenter"
	"github.com/suvarna009/resume-matcher/pkg/job"
	"github.com/suvarna009/resume-matcher/pkg/match"
	"github.com/suvarna009/resume-matcher/pkg/nlp"
)

type JobHandler struct {
	repo   job.Repository
	engine *match.Engine
	log    *zap.Logger
}

func NewJobHandler(repo job.Repository, engine *match.Engine, log *zap.Logger) *JobHandler {
	return &JobHandler{repo: repo, engine: engine, log: log}
}

type jobRequest struct {
	Title           string `json:"title"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	RequiredSkills  string `json:"requiredSkills"`  // comma-separated
	PreferredSkills string `json:"preferredSkills"` // comma-separated
}

func (req jobRequest) toJob() job.Job {
	return job.Job{
		Title:           req.Title,
		Company:         req.Company,
		Location:        req.Location,
		Description:     req.Description,
		RequiredSkills:  nlp.ParseSkills(req.RequiredSkills),
		PreferredSkills: nlp.ParseSkills(req.PreferredSkills),
	}
}

// Create публикует вакансию и сразу считает её матчи против всех резюме.
// @Summary Создать вакансию
// @Tags    Вакансии
// @Accept  json
// @Produce json
// @Param   input body jobRequest true "Вакансия"
// @Success 201 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req jobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	if req.Title == "" {
		return presenter.Error(c, http.StatusBadRequest, "title is required")
	}
	j := req.toJob()
	j.ID = uuid.New()
	if err := h.repo.Create(c.Context(), j); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to create job")
	}
	if err := h.engine.RecomputeForJob(c.Context(), j.ID); err != nil {
		h.log.Error("recompute after job create failed", zap.String("job_id", j.ID.String()), zap.Error(err))
	}
	created, err := h.repo.GetByID(c.Context(), j.ID)
	if err != nil {
		created = j
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// Update — повторная публикация: заменяет текст и навыки вакансии и
// пересчитывает весь её набор матчей (старые становятся невалидными).
// @Summary Обновить вакансию
// @Tags    Вакансии
// @Accept  json
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Param   input body jobRequest true "Новые данные вакансии"
// @Success 200 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	var req jobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	j := req.toJob()
	j.ID = id
	if err := h.repo.Update(c.Context(), j); err != nil {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}
	if err := h.engine.RecomputeForJob(c.Context(), id); err != nil {
		h.log.Error("recompute after job update failed", zap.String("job_id", id.String()), zap.Error(err))
	}
	updated, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}
	return presenter.JSON(c, http.StatusOK, updated)
}

// Get возвращает вакансию по id.
// @Summary Получить вакансию
// @Tags    Вакансии
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Success 200 {object} job.Job
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	j, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}
	return presenter.JSON(c, http.StatusOK, j)
}

// List возвращает вакансии постранично.
// @Summary Список вакансий
// @Tags    Вакансии
// @Produce json
// @Success 200 {array} job.Job
// @Router  /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.repo.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list jobs")
	}
	if items == nil {
		items = []job.Job{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Keywords возвращает топ ключевых терминов описания вакансии — их
// показывают кандидату рядом со списком навыков.
// @Summary Ключевые термины вакансии
// @Tags    Вакансии
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Param   top query int false "Сколько терминов вернуть (по умолчанию 15)"
// @Success 200 {array} string
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/keywords [get]
func (h *JobHandler) Keywords(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	j, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}
	top := c.QueryInt("top", 15)
	if top < 1 || top > 100 {
		top = 15
	}
	kws := nlp.Keywords(j.Description, top)
	if kws == nil {
		kws = []string{}
	}
	return presenter.JSON(c, http.StatusOK, kws)
}

// Delete удаляет вакансию; её матчи уходят каскадом.
// @Summary Удалить вакансию
// @Tags    Вакансии
// @Param   id path string true "ID вакансии (UUID)"
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}
	return c.SendStatus(http.StatusNoContent)
}
