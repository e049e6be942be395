package model

import (
	"time"

	"gorm.io/datatypes"
)

// Document status values. Extraction success leaves a document in
// StatusUploaded; StatusError is terminal and never retried.
const (
	StatusUploaded = "uploaded"
	StatusAnalyzed = "analyzed"
	StatusError    = "error"
)

type Document struct {
	ID       string `gorm:"type:varchar(36);primaryKey" json:"document_id"`
	FileName string `gorm:"size:255;not null;index" json:"file_name"`
	FilePath string `gorm:"size:255;not null" json:"file_path"`
	MimeType string `gorm:"size:100;not null;index" json:"mime_type"`
	// Metadata holds the raw extraction result: page/sheet/slide counts,
	// derived artifact paths and per-feature extraction errors.
	Metadata  datatypes.JSON `gorm:"column:doc_metadata" json:"metadata"`
	Status    string         `gorm:"size:50;not null;default:'uploaded';index" json:"status"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Content  *DocumentContent  `gorm:"foreignKey:ID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Sessions []AnalysisSession `gorm:"many2many:document_analysis_association" json:"-"`
}
