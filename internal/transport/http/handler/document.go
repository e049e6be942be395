package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docanalyzer/internal/app"
	apperrors "docanalyzer/internal/common/errors"
	"docanalyzer/internal/extract"
	"docanalyzer/internal/ingest"
	"docanalyzer/internal/model"
	"docanalyzer/internal/transport/http/response"
)

type DocumentHandler struct {
	docService *app.DocumentService
	ingestor   *ingest.Ingestor
	urlTimeout time.Duration
}

type UploadURLRequest struct {
	URL string `json:"url" binding:"required"`
}

type UploadResponse struct {
	DocumentID string `json:"document_id"`
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
	Status     string `json:"status"`
}

func NewDocumentHandler(docService *app.DocumentService, ingestor *ingest.Ingestor, urlTimeout time.Duration) *DocumentHandler {
	return &DocumentHandler{docService: docService, ingestor: ingestor, urlTimeout: urlTimeout}
}

// Upload accepts a multipart file, stores it, and schedules extraction. The
// response carries the new document id while processing continues in the
// background.
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "open uploaded file failed")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "read uploaded file failed")
		return
	}

	path, err := h.ingestor.SaveRawFile(content, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "store uploaded file failed")
		}
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if media, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = media
	}
	if mimeType == "" || mimeType == extract.MimeBinary {
		mimeType = extract.MimeTypeOf(fileHeader.Filename)
	}

	h.enqueue(c, ingest.Job{
		Path:     path,
		FileName: fileHeader.Filename,
		MimeType: mimeType,
	})
}

// UploadURL fetches a remote resource and runs it through the same pipeline
// as a direct upload.
func (h *DocumentHandler) UploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.ingestor.ProcessURL(c.Request.Context(), req.URL, h.urlTimeout)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch URL failed")
		}
		return
	}

	h.enqueue(c, ingest.Job{
		Path:     result.Path,
		FileName: result.FileName,
		MimeType: result.MimeType,
	})
}

func (h *DocumentHandler) enqueue(c *gin.Context, job ingest.Job) {
	job.DocumentID = uuid.NewString()
	if err := h.ingestor.Enqueue(job); err != nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeInternalServer, "schedule processing failed")
		return
	}
	response.OK(c, UploadResponse{
		DocumentID: job.DocumentID,
		FileName:   job.FileName,
		MimeType:   job.MimeType,
		Status:     model.StatusUploaded,
	})
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.docService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}
	response.OK(c, docs)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	detail, err := h.docService.Get(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get document failed")
		}
		return
	}

	payload := gin.H{"document": detail.Document}
	if detail.Content != nil {
		payload["extracted_text"] = detail.Content.ExtractedText
	}
	response.OK(c, payload)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.docService.Delete(id); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete document failed")
		}
		return
	}
	response.OK(c, gin.H{"deleted_document_id": id})
}
