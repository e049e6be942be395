package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docanalyzer/internal/bootstrap"
	"docanalyzer/internal/config"
	"docanalyzer/internal/extract"
	"docanalyzer/internal/filestore"
	"docanalyzer/internal/ingest"
	"docanalyzer/internal/model"
	sqliteClient "docanalyzer/internal/platform/sqlite"
	"docanalyzer/internal/transport/http/response"
)

type fixedGenerator struct{}

func (fixedGenerator) Generate(context.Context, string) (string, error) {
	return "generated answer", nil
}

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqliteClient.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Document{},
		&model.DocumentContent{},
		&model.AnalysisSession{},
		&model.Query{},
	))

	logger := slog.Default()
	store, err := filestore.New(t.TempDir(), logger)
	require.NoError(t, err)
	dispatcher := extract.NewDispatcher(store, extract.Options{}, logger)
	ingestor, err := ingest.New(db, store, dispatcher, 2, logger)
	require.NoError(t, err)
	t.Cleanup(ingestor.Close)

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.App.GinMode = gin.TestMode

	return &bootstrap.App{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Store:     store,
		Ingestor:  ingestor,
		Generator: fixedGenerator{},
		StartedAt: time.Now(),
	}
}

func uploadFile(t *testing.T, router *gin.Engine, filename, content string) string {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Code int `json:"code"`
		Data struct {
			DocumentID string `json:"document_id"`
			Status     string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeOK, resp.Code)
	assert.Equal(t, model.StatusUploaded, resp.Data.Status)
	require.NotEmpty(t, resp.Data.DocumentID)
	return resp.Data.DocumentID
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadAndFetchDocument(t *testing.T) {
	app := newTestApp(t)
	router := NewRouter(app)

	docID := uploadFile(t, router, "note.txt", "line1\nline2\n")
	app.Ingestor.Close()

	w := doJSON(t, router, http.MethodGet, "/api/v1/documents/"+docID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Document      model.Document `json:"document"`
			ExtractedText string         `json:"extracted_text"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.StatusUploaded, resp.Data.Document.Status)
	assert.Equal(t, "line1\nline2\n", resp.Data.ExtractedText)

	w = doJSON(t, router, http.MethodGet, "/api/v1/documents", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUploadWithoutFile(t *testing.T) {
	app := newTestApp(t)
	router := NewRouter(app)

	w := doJSON(t, router, http.MethodPost, "/api/v1/documents/upload", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUnknownDocument(t *testing.T) {
	app := newTestApp(t)
	router := NewRouter(app)

	w := doJSON(t, router, http.MethodGet, "/api/v1/documents/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeDocumentNotFound, resp.Code)
}

func TestQueryEndpointValidation(t *testing.T) {
	app := newTestApp(t)
	router := NewRouter(app)

	w := doJSON(t, router, http.MethodPost, "/api/v1/query", map[string]interface{}{
		"document_ids": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	router := NewRouter(app)

	docID := uploadFile(t, router, "note.txt", "the project ships in March\n")
	app.Ingestor.Close()

	w := doJSON(t, router, http.MethodPost, "/api/v1/analysis", map[string]interface{}{
		"document_ids": []string{docID},
		"context":      "planning",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Data struct {
			AnalysisID string `json:"analysis_id"`
			Summary    string `json:"summary"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.AnalysisID)
	assert.Equal(t, "Document session with 1 document(s)", created.Data.Summary)

	sessionPath := fmt.Sprintf("/api/v1/analysis/sessions/%s", created.Data.AnalysisID)

	w = doJSON(t, router, http.MethodPost, sessionPath+"/query", map[string]interface{}{
		"query": "when does it ship?",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var answered struct {
		Data struct {
			Response string `json:"response"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &answered))
	assert.Equal(t, "generated answer", answered.Data.Response)

	w = doJSON(t, router, http.MethodGet, sessionPath+"/chat_history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var history struct {
		Data []model.Query `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.Data, 1)
	assert.Equal(t, "when does it ship?", history.Data[0].QueryText)

	w = doJSON(t, router, http.MethodDelete, sessionPath, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, sessionPath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)
	router := NewRouter(app)

	w := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uptime_sec")
}
