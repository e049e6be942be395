package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docanalyzer/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) List() ([]model.Document, error) {
	var docs []model.Document
	if err := r.db.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	return docs, nil
}

// GetByID returns nil, nil when the document does not exist.
func (r *DocumentRepository) GetByID(id string) (*model.Document, error) {
	var doc model.Document
	if err := r.db.Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document failed: %w", err)
	}
	return &doc, nil
}

// GetContent returns nil, nil when no content row exists yet.
func (r *DocumentRepository) GetContent(id string) (*model.DocumentContent, error) {
	var content model.DocumentContent
	if err := r.db.Where("id = ?", id).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document content failed: %w", err)
	}
	return &content, nil
}

func (r *DocumentRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Document{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count documents failed: %w", err)
	}
	return count > 0, nil
}

// Delete removes the document together with its content row and any session
// association rows, in one transaction. Sessions themselves survive.
func (r *DocumentRepository) Delete(doc *model.Document) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(doc).Association("Sessions").Clear(); err != nil {
			return err
		}
		if err := tx.Where("id = ?", doc.ID).Delete(&model.DocumentContent{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", doc.ID).Delete(&model.Document{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete document failed: %w", err)
	}
	return nil
}
