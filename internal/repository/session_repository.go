package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docanalyzer/internal/model"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create persists the session and its document associations atomically;
// session.Documents must already be resolved rows.
func (r *SessionRepository) Create(session *model.AnalysisSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the session does not exist.
func (r *SessionRepository) GetByID(id string) (*model.AnalysisSession, error) {
	var session model.AnalysisSession
	if err := r.db.Preload("Documents").Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) List() ([]model.AnalysisSession, error) {
	var sessions []model.AnalysisSession
	if err := r.db.Preload("Documents").Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions failed: %w", err)
	}
	return sessions, nil
}

// ListQueries returns the session's query turns in insertion order.
func (r *SessionRepository) ListQueries(sessionID string) ([]model.Query, error) {
	var queries []model.Query
	if err := r.db.Where("analysis_id = ?", sessionID).Order("id ASC").Find(&queries).Error; err != nil {
		return nil, fmt.Errorf("list session queries failed: %w", err)
	}
	return queries, nil
}

// Delete cascades the session's queries and clears document associations;
// documents are left untouched.
func (r *SessionRepository) Delete(session *model.AnalysisSession) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("analysis_id = ?", session.ID).Delete(&model.Query{}).Error; err != nil {
			return err
		}
		if err := tx.Model(session).Association("Documents").Clear(); err != nil {
			return err
		}
		return tx.Where("id = ?", session.ID).Delete(&model.AnalysisSession{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete session failed: %w", err)
	}
	return nil
}
