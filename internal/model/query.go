package model

import "time"

// Query is one question/answer turn in a session. ResponseText stays null
// until answered; neither field is editable afterwards.
type Query struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"query_id"`
	AnalysisID   string    `gorm:"type:varchar(36);not null;index" json:"analysis_id"`
	QueryText    string    `gorm:"type:text;not null" json:"query_text"`
	ResponseText *string   `gorm:"type:text" json:"response_text"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Query) TableName() string {
	return "queries"
}
