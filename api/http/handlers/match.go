package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suvarna009/resume-matcher/api/http/presenter"
	"github.com/suvarna009/resume-matcher/pkg/job"
	"github.com/suvarna009/resume-matcher/pkg/match"
	"github.com/suvarna009/resume-matcher/pkg/resume"
)

type MatchHandler struct {
	matches match.Repository
	jobs    job.Repository
	resumes resume.Repository
	engine  *match.Engine
	log     *zap.Logger
}

func NewMatchHandler(matches match.Repository, jobs job.Repository, resumes resume.Repository, engine *match.Engine, log *zap.Logger) *MatchHandler {
	return &MatchHandler{matches: matches, jobs: jobs, resumes: resumes, engine: engine, log: log}
}

// ListByJob возвращает матчи вакансии, отранжированные по убыванию скора.
// @Summary Матчи вакансии
// @Tags    Матчи
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Success 200 {array} match.Match
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/matches [get]
func (h *MatchHandler) ListByJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.matches.ListByJob(c.Context(), id, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list matches")
	}
	if items == nil {
		items = []match.Match{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// ListByResume возвращает матчи резюме против всех вакансий.
// @Summary Матчи резюме
// @Tags    Матчи
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Success 200 {array} match.Match
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/matches [get]
func (h *MatchHandler) ListByResume(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.matches.ListByResume(c.Context(), id, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list matches")
	}
	if items == nil {
		items = []match.Match{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

type previewRequest struct {
	JobID    string `json:"jobId"`
	ResumeID string `json:"resumeId"`
}

// Preview считает матч для пары на лету, без сохранения — режим
// «проверь моё резюме против этой вакансии».
// @Summary Скоринг пары без сохранения
// @Tags    Матчи
// @Accept  json
// @Produce json
// @Param   input body previewRequest true "Пара jobId + resumeId"
// @Success 200 {object} match.Match
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /matches/preview [post]
func (h *MatchHandler) Preview(c *fiber.Ctx) error {
	var req previewRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid jobId")
	}
	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid resumeId")
	}
	j, err := h.jobs.GetByID(c.Context(), jobID)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "job not found")
	}
	r, err := h.resumes.GetByID(c.Context(), resumeID)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	return presenter.JSON(c, http.StatusOK, h.engine.ScorePair(c.Context(), j, r))
}

// Recompute запускает полный пересчёт всех матчей (все вакансии × все резюме).
// @Summary Полный пересчёт матчей
// @Tags    Матчи
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /matches/recompute [post]
func (h *MatchHandler) Recompute(c *fiber.Ctx) error {
	if err := h.engine.RecomputeAll(c.Context()); err != nil {
		h.log.Error("full recompute failed", zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "recompute failed")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": "recomputed"})
}

// Stats — счётчики для обзорной страницы.
// @Summary Счётчики сущностей
// @Tags    Матчи
// @Produce json
// @Success 200 {object} map[string]int64
// @Router  /stats [get]
func (h *MatchHandler) Stats(c *fiber.Ctx) error {
	jobs, err := h.jobs.Count(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to count jobs")
	}
	resumes, err := h.resumes.Count(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to count resumes")
	}
	matches, err := h.matches.CountAll(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to count matches")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"jobs":    jobs,
		"resumes": resumes,
		"matches": matches,
	})
}
