package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docanalyzer/internal/app"
	apperrors "docanalyzer/internal/common/errors"
	"docanalyzer/internal/transport/http/response"
)

type QueryHandler struct {
	queryService *app.QueryService
}

type QueryRequest struct {
	DocumentIDs []string `json:"document_ids" binding:"required"`
	Query       string   `json:"query" binding:"required"`
}

func NewQueryHandler(queryService *app.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

// Ask answers a one-shot question over the listed documents, without a
// session.
func (h *QueryHandler) Ask(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	answer, err := h.queryService.Answer(c.Request.Context(), req.DocumentIDs, req.Query)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, apperrors.ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "process query failed")
		}
		return
	}

	response.OK(c, answer)
}
