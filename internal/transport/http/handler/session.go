package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docanalyzer/internal/app"
	apperrors "docanalyzer/internal/common/errors"
	"docanalyzer/internal/transport/http/response"
)

type SessionHandler struct {
	sessionService *app.SessionService
}

type CreateSessionRequest struct {
	DocumentIDs []string `json:"document_ids" binding:"required"`
	Context     string   `json:"context"`
}

type SessionQueryRequest struct {
	Query string `json:"query" binding:"required"`
}

func NewSessionHandler(sessionService *app.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	session, err := h.sessionService.Create(req.DocumentIDs, req.Context)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, apperrors.ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create session failed")
		}
		return
	}

	response.OK(c, session)
}

func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.sessionService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list sessions failed")
		return
	}
	response.OK(c, sessions)
}

func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.sessionService.Get(c.Param("id"))
	if err != nil {
		h.writeSessionError(c, err, "get session failed")
		return
	}
	response.OK(c, session)
}

func (h *SessionHandler) Documents(c *gin.Context) {
	docs, err := h.sessionService.Documents(c.Param("id"))
	if err != nil {
		h.writeSessionError(c, err, "get session documents failed")
		return
	}
	response.OK(c, docs)
}

func (h *SessionHandler) History(c *gin.Context) {
	history, err := h.sessionService.History(c.Param("id"))
	if err != nil {
		h.writeSessionError(c, err, "get chat history failed")
		return
	}
	response.OK(c, history)
}

// Ask answers a question in the session's document scope and records it in
// the chat history.
func (h *SessionHandler) Ask(c *gin.Context) {
	var req SessionQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	answer, err := h.sessionService.Ask(c.Request.Context(), c.Param("id"), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, apperrors.ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "process session query failed")
		}
		return
	}

	response.OK(c, answer)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.sessionService.Delete(id); err != nil {
		h.writeSessionError(c, err, "delete session failed")
		return
	}
	response.OK(c, gin.H{"deleted_session_id": id})
}

func (h *SessionHandler) writeSessionError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
