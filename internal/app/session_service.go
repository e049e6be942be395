package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	apperrors "docanalyzer/internal/common/errors"
	"docanalyzer/internal/model"
	"docanalyzer/internal/repository"
)

type SessionService struct {
	sessions *repository.SessionRepository
	docs     *repository.DocumentRepository
	queries  *repository.QueryRepository
	query    *QueryService
	logger   *slog.Logger
}

func NewSessionService(
	sessions *repository.SessionRepository,
	docs *repository.DocumentRepository,
	queries *repository.QueryRepository,
	query *QueryService,
	logger *slog.Logger,
) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		sessions: sessions,
		docs:     docs,
		queries:  queries,
		query:    query,
		logger:   logger,
	}
}

// Create opens an analysis session over the given documents. Every document
// must already exist; otherwise nothing is written.
func (s *SessionService) Create(documentIDs []string, contextText string) (*model.AnalysisSession, error) {
	if len(documentIDs) == 0 {
		return nil, fmt.Errorf("%w: no documents selected", apperrors.ErrInvalidInput)
	}

	docs := make([]model.Document, 0, len(documentIDs))
	for _, id := range documentIDs {
		doc, err := s.docs.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		if doc == nil {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, id)
		}
		docs = append(docs, *doc)
	}

	session := &model.AnalysisSession{
		ID:        uuid.NewString(),
		Summary:   fmt.Sprintf("Document session with %d document(s)", len(docs)),
		Context:   contextText,
		Documents: docs,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	s.logger.Info("analysis session created", "session_id", session.ID, "documents", len(docs))
	return session, nil
}

func (s *SessionService) Get(id string) (*model.AnalysisSession, error) {
	session, err := s.sessions.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, id)
	}
	return session, nil
}

func (s *SessionService) List() ([]model.AnalysisSession, error) {
	sessions, err := s.sessions.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return sessions, nil
}

// Documents returns the documents attached to a session.
func (s *SessionService) Documents(id string) ([]model.Document, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return session.Documents, nil
}

// History returns the session's queries in submission order.
func (s *SessionService) History(id string) ([]model.Query, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	queries, err := s.sessions.ListQueries(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return queries, nil
}

// Ask answers a question against the session's documents and records the
// exchange in the session history.
func (s *SessionService) Ask(ctx context.Context, sessionID, question string) (*Answer, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(session.Documents))
	for _, doc := range session.Documents {
		ids = append(ids, doc.ID)
	}

	answer, err := s.query.Answer(ctx, ids, question)
	if err != nil {
		return nil, err
	}

	record := &model.Query{
		AnalysisID:   session.ID,
		QueryText:    question,
		ResponseText: &answer.Response,
	}
	// The history append is part of the ask: an answer the session cannot
	// replay later is a failure, not a success with a warning.
	if err := s.queries.Create(record); err != nil {
		s.logger.Error("record session query failed", "session_id", session.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return answer, nil
}

// Delete removes a session, its history, and its document associations. The
// documents themselves are untouched.
func (s *SessionService) Delete(id string) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(session); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return nil
}
