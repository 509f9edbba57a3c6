package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/llm-dissector/internal/services"
	"github.com/SAP-F-2025/llm-dissector/internal/utils"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
	}
}

// CreateSession starts a new walk through the stages
// @Summary Create session
// @Tags sessions
// @Produce json
// @Success 201 {object} models.SessionView
// @Failure 500 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	view, err := h.sessionService.Create(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Session created", "session_id", view.SessionID)
	c.JSON(http.StatusCreated, view)
}

// GetSession returns the current view of a session
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionView
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	view, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// EndSession discards a session
// @Summary End session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) EndSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.sessionService.End(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// EndAllSessions discards every stored session
// @Summary End all sessions
// @Tags admin
// @Param X-Admin-Token header string true "Admin token"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Router /admin/sessions [delete]
func (h *SessionHandler) EndAllSessions(c *gin.Context) {
	if err := h.sessionService.EndAll(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "All sessions ended")
	c.Status(http.StatusNoContent)
}

// UpdateQuestion replaces the question text
// @Summary Update question
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body services.UpdateQuestionRequest true "Question"
// @Success 200 {object} models.SessionView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/question [put]
func (h *SessionHandler) UpdateQuestion(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	view, err := h.sessionService.UpdateQuestion(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ApplyPreset loads one of the sample questions
// @Summary Apply preset question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param preset_id path string true "Preset ID"
// @Success 200 {object} models.SessionView
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/presets/{preset_id} [post]
func (h *SessionHandler) ApplyPreset(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	presetID := ParseStringIDParam(c, "preset_id")
	if presetID == "" {
		return
	}

	view, err := h.sessionService.ApplyPreset(c.Request.Context(), id, &services.ApplyPresetRequest{PresetID: presetID})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Send runs the current stage's model on the question
// @Summary Send question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionView
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/send [post]
func (h *SessionHandler) Send(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	view, err := h.sessionService.Send(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SelectChoice records the learner's quiz selection
// @Summary Select quiz choice
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body services.SelectChoiceRequest true "Choice"
// @Success 200 {object} models.SessionView
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/choice [put]
func (h *SessionHandler) SelectChoice(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.SelectChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	view, err := h.sessionService.SelectChoice(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// CheckAnswer grades the selected choice
// @Summary Check answer
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionView
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/check [post]
func (h *SessionHandler) CheckAnswer(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	view, err := h.sessionService.Check(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// NextStage advances once the quiz is answered correctly
// @Summary Next stage
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionView
// @Router /sessions/{id}/next [post]
func (h *SessionHandler) NextStage(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	view, err := h.sessionService.Next(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Back returns to the previous stage
// @Summary Previous stage
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionView
// @Router /sessions/{id}/back [post]
func (h *SessionHandler) Back(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	view, err := h.sessionService.Back(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
