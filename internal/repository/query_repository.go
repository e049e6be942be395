package repository

import (
	"fmt"

	"gorm.io/gorm"

	"docanalyzer/internal/model"
)

type QueryRepository struct {
	db *gorm.DB
}

func NewQueryRepository(db *gorm.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

func (r *QueryRepository) Create(query *model.Query) error {
	if err := r.db.Create(query).Error; err != nil {
		return fmt.Errorf("create query failed: %w", err)
	}
	return nil
}
