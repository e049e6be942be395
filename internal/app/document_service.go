// Package app holds the business services sitting between the HTTP handlers
// and the repositories.
package app

import (
	"fmt"
	"log/slog"

	apperrors "docanalyzer/internal/common/errors"
	"docanalyzer/internal/filestore"
	"docanalyzer/internal/model"
	"docanalyzer/internal/repository"
)

// DocumentDetail pairs a document with its extracted content for the detail
// endpoint. Content is nil while processing is still pending or failed.
type DocumentDetail struct {
	Document *model.Document
	Content  *model.DocumentContent
}

type DocumentService struct {
	docs   *repository.DocumentRepository
	store  *filestore.Store
	logger *slog.Logger
}

func NewDocumentService(docs *repository.DocumentRepository, store *filestore.Store, logger *slog.Logger) *DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentService{docs: docs, store: store, logger: logger}
}

func (s *DocumentService) List() ([]model.Document, error) {
	docs, err := s.docs.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return docs, nil
}

func (s *DocumentService) Get(id string) (*DocumentDetail, error) {
	doc, err := s.docs.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, id)
	}
	content, err := s.docs.GetContent(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return &DocumentDetail{Document: doc, Content: content}, nil
}

// Delete removes the database rows first, then the stored file. A file that
// cannot be removed is logged and left behind rather than failing the call;
// the database is the source of truth.
func (s *DocumentService) Delete(id string) error {
	doc, err := s.docs.GetByID(id)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if doc == nil {
		return fmt.Errorf("%w: document %s", apperrors.ErrNotFound, id)
	}
	if err := s.docs.Delete(doc); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if doc.FilePath != "" && s.store.Exists(doc.FilePath) {
		if err := s.store.Remove(doc.FilePath); err != nil {
			s.logger.Warn("remove stored file failed", "document_id", id, "path", doc.FilePath, "error", err)
		}
	}
	return nil
}
