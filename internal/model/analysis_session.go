package model

import "time"

// AnalysisSession groups a set of documents with the conversational context
// they were opened under. Deleting a session cascades its queries and clears
// the association rows, but never deletes the documents themselves.
type AnalysisSession struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"analysis_id"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Context   string    `gorm:"type:text" json:"context"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Documents []Document `gorm:"many2many:document_analysis_association" json:"-"`
	Queries   []Query    `gorm:"foreignKey:AnalysisID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AnalysisSession) TableName() string {
	return "analysis_sessions"
}
