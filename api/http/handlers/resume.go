package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suvarna009/resume-matcher/api/http/presenter"
	"github.com/suvarna009/resume-matcher/pkg/match"
	"github.com/suvarna009/resume-matcher/pkg/resume"
)

type ResumeHandler struct {
	repo   resume.Repository
	engine *match.Engine
	log    *zap.Logger
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewResumeHandler(repo resume.Repository, engine *match.Engine, log *zap.Logger) *ResumeHandler {
	return &ResumeHandler{repo: repo, engine: engine, log: log, maxBytes: 15 << 20} // 15MB
}

// Upload принимает файл резюме (PDF/DOCX/TXT), извлекает текст и создаёт
// новую запись. Записи append-only: повторная загрузка — новое резюме.
// Нечитаемый файл не ошибка: резюме сохраняется с пустым текстом и получит
// нулевое покрытие при матчинге.
// @Summary Загрузить резюме
// @Tags    Резюме
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Файл резюме (PDF, DOCX или TXT)"
// @Param   candidateId formData string false "ID кандидата (UUID)"
// @Success 201 {object} resume.Resume
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /resumes [post]
func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf, docx or txt)")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	text := resume.ExtractText(fh.Filename, data)
	if text == "" {
		h.log.Warn("resume parsed to empty text", zap.String("filename", fh.Filename))
	}

	rs := resume.Resume{
		ID:       uuid.New(),
		Filename: fh.Filename,
		Text:     text,
	}
	if cid := c.FormValue("candidateId"); cid != "" {
		parsed, err := uuid.Parse(cid)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid candidateId")
		}
		rs.CandidateID = &parsed
	}
	if err := h.repo.Create(c.Context(), rs); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to store resume")
	}
	if err := h.engine.RecomputeForResume(c.Context(), rs.ID); err != nil {
		h.log.Error("recompute after resume upload failed", zap.String("resume_id", rs.ID.String()), zap.Error(err))
	}
	created, err := h.repo.GetByID(c.Context(), rs.ID)
	if err != nil {
		created = rs
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// Get возвращает резюме по id.
// @Summary Получить резюме
// @Tags    Резюме
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Success 200 {object} resume.Resume
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	rs, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	return presenter.JSON(c, http.StatusOK, rs)
}

// List возвращает резюме постранично.
// @Summary Список резюме
// @Tags    Резюме
// @Produce json
// @Success 200 {array} resume.Resume
// @Router  /resumes [get]
func (h *ResumeHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.repo.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list resumes")
	}
	if items == nil {
		items = []resume.Resume{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Delete удаляет резюме; его матчи уходят каскадом.
// @Summary Удалить резюме
// @Tags    Резюме
// @Param   id path string true "ID резюме (UUID)"
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [delete]
func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	}
	return c.SendStatus(http.StatusNoContent)
}

// readAtMost читает не более limit байт и ругается на превышение.
func readAtMost(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.New("failed to read uploaded file")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("file is too large")
	}
	return data, nil
}
