package api

import (
	"context"
	"errors"
	"net/http"

	reqdto "interpreter-booking/internal/handler/dto/request"
	resdto "interpreter-booking/internal/handler/dto/response"
	"interpreter-booking/internal/handler/middleware"
	"interpreter-booking/internal/infra"
	"interpreter-booking/internal/pkg/errs"
	"interpreter-booking/internal/usecase/commands"
	"interpreter-booking/internal/usecase/queries"
	"interpreter-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmd commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{commands: cmd, queries: q}
}

func (h *BookingHandler) CreateJob(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.commands.CreateJob(c.Request.Context(), req, userID, middleware.IsAdmin(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderResult(c, result, http.StatusCreated)
}

func (h *BookingHandler) AcceptJob(c *gin.Context) {
	h.acceptWith(c, h.commands.AcceptJob)
}

func (h *BookingHandler) AcceptJobByID(c *gin.Context) {
	h.acceptWith(c, h.commands.AcceptJobByID)
}

func (h *BookingHandler) acceptWith(
	c *gin.Context,
	accept func(ctx context.Context, jobID, translatorID uuid.UUID) (shared.Result, error),
) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	jobID, err := parseJobID(c)
	if err != nil {
		return
	}

	result, err := accept(c.Request.Context(), jobID, userID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderResult(c, result, http.StatusOK)
}

func (h *BookingHandler) CancelJob(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	jobID, err := parseJobID(c)
	if err != nil {
		return
	}

	result, err := h.commands.CancelJob(c.Request.Context(), jobID, userID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderResult(c, result, http.StatusOK)
}

func (h *BookingHandler) EndJob(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	jobID, err := parseJobID(c)
	if err != nil {
		return
	}

	result, err := h.commands.EndJob(c.Request.Context(), jobID, userID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderResult(c, result, http.StatusOK)
}

func (h *BookingHandler) CustomerNoShow(c *gin.Context) {
	jobID, err := parseJobID(c)
	if err != nil {
		return
	}

	result, err := h.commands.CustomerNoShow(c.Request.Context(), jobID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderResult(c, result, http.StatusOK)
}

func (h *BookingHandler) ReopenJob(c *gin.Context) {
	jobID, err := parseJobID(c)
	if err != nil {
		return
	}

	result, err := h.commands.ReopenJob(c.Request.Context(), jobID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderResult(c, result, http.StatusOK)
}

func (h *BookingHandler) AdminUpdateJob(c *gin.Context) {
	jobID, err := parseJobID(c)
	if err != nil {
		return
	}

	var req reqdto.AdminUpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.commands.AdminUpdateJob(c.Request.Context(), jobID, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderResult(c, result, http.StatusOK)
}

func (h *BookingHandler) GetJob(c *gin.Context) {
	jobID, err := parseJobID(c)
	if err != nil {
		return
	}

	view, err := h.queries.GetJob(c.Request.Context(), jobID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromJobView(view))
}

// EligibleJobs is the translator's job board.
func (h *BookingHandler) EligibleJobs(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.queries.EligibleJobsForTranslator(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": resdto.FromJobViews(views)})
}

func (h *BookingHandler) CustomerJobs(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.queries.ListJobsForCustomer(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": resdto.FromJobViews(views)})
}

func (h *BookingHandler) TranslatorJobs(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.queries.ListJobsForTranslator(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": resdto.FromJobViews(views)})
}

// renderResult maps the command envelope onto HTTP: business rejections are
// 200s with status=fail, exactly what the legacy clients expect.
func (h *BookingHandler) renderResult(c *gin.Context, result shared.Result, successCode int) {
	if result.IsSuccess() {
		c.JSON(successCode, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, errs.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, queries.ErrTranslatorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Translator not found"})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Domain validation failed"})
	case infra.IsKind(err, infra.KindNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func parseJobID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return uuid.Nil, err
	}
	return id, nil
}
