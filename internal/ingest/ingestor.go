// Package ingest coordinates raw-file storage and asynchronous extraction
// for uploaded documents. The caller gets its document id back immediately;
// extraction and the durable commit happen on a bounded worker pool.
package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "docanalyzer/internal/common/errors"
	"docanalyzer/internal/extract"
	"docanalyzer/internal/filestore"
	"docanalyzer/internal/model"
)

// Job identifies one scheduled extraction. The file must already be in the
// store; DocumentID is freshly generated per upload, so two jobs never race
// on the same id.
type Job struct {
	Path       string
	FileName   string
	MimeType   string
	DocumentID string
}

type Ingestor struct {
	db         *gorm.DB
	store      *filestore.Store
	dispatcher *extract.Dispatcher
	pool       *ants.Pool
	logger     *slog.Logger
	wg         sync.WaitGroup
}

func New(db *gorm.DB, store *filestore.Store, dispatcher *extract.Dispatcher, poolSize int, logger *slog.Logger) (*Ingestor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("create ingest pool failed: %w", err)
	}
	return &Ingestor{
		db:         db,
		store:      store,
		dispatcher: dispatcher,
		pool:       pool,
		logger:     logger,
	}, nil
}

// Close drains in-flight jobs and releases the pool.
func (s *Ingestor) Close() {
	s.wg.Wait()
	s.pool.Release()
}

// SaveRawFile stores uploaded bytes under a collision-free name and returns
// the path.
func (s *Ingestor) SaveRawFile(content []byte, filename string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", fmt.Errorf("%w: filename cannot be empty", apperrors.ErrInvalidInput)
	}
	path, err := s.store.Save(content, filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return path, nil
}

// Enqueue schedules background processing for a stored file. Once accepted
// the job runs to completion or failure; there is no cancellation handle and
// callers observe the outcome by polling the document.
func (s *Ingestor) Enqueue(job Job) error {
	s.wg.Add(1)
	err := s.pool.Submit(func() {
		defer s.wg.Done()
		s.Process(job)
	})
	if err != nil {
		s.wg.Done()
		return fmt.Errorf("schedule ingest job failed: %w", err)
	}
	return nil
}

// Process runs the full pipeline for one document: verify the stored file,
// extract, flatten, and commit Document plus DocumentContent in one
// transaction. Each invocation gets its own database session, so documents
// never block each other.
func (s *Ingestor) Process(job Job) {
	logger := s.logger.With("document_id", job.DocumentID, "file_name", job.FileName)

	if !s.store.Exists(job.Path) {
		logger.Error("file not found for processing", "path", job.Path)
		s.markError(job, "file not found")
		return
	}

	result := s.dispatcher.Extract(job.Path, job.MimeType)
	text := result.FlattenText()
	logger.Info("extraction finished", "chars", len(text), "feature_errors", len(result.Errors))

	metadata, err := json.Marshal(result)
	if err != nil {
		logger.Error("marshal extraction metadata failed", "error", err)
		s.markError(job, err.Error())
		return
	}

	err = s.session().Transaction(func(tx *gorm.DB) error {
		doc := &model.Document{
			ID:       job.DocumentID,
			FileName: job.FileName,
			FilePath: job.Path,
			MimeType: job.MimeType,
			Metadata: datatypes.JSON(metadata),
			Status:   model.StatusUploaded,
		}
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		content := &model.DocumentContent{
			ID:            job.DocumentID,
			ExtractedText: text,
		}
		return tx.Create(content).Error
	})
	if err != nil {
		logger.Error("persist document failed", "error", err)
		s.markError(job, err.Error())
		return
	}

	logger.Info("document processed")
}

// markError records a terminal error status for the document, best effort.
// No content row is ever written on this path.
func (s *Ingestor) markError(job Job, reason string) {
	metadata, _ := json.Marshal(map[string]string{"error": reason})
	doc := &model.Document{
		ID:       job.DocumentID,
		FileName: job.FileName,
		FilePath: job.Path,
		MimeType: job.MimeType,
		Metadata: datatypes.JSON(metadata),
		Status:   model.StatusError,
	}
	if err := s.session().Create(doc).Error; err != nil {
		s.logger.Error("record document error status failed",
			"document_id", job.DocumentID, "reason", reason, "error", err)
	}
}

// session returns a fresh gorm session so concurrent jobs never share
// statement state.
func (s *Ingestor) session() *gorm.DB {
	return s.db.Session(&gorm.Session{NewDB: true})
}
