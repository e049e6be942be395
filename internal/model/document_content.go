package model

// DocumentContent is the normalized text payload for a Document, kept in its
// own table so large bodies are not dragged into document listings. Shares
// the document's id as primary key; never created standalone.
type DocumentContent struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"document_id"`
	// Analysis is a legacy field from the pre-chat flow; always null now.
	Analysis      *string `gorm:"type:text" json:"analysis"`
	ExtractedText string  `gorm:"type:text" json:"extracted_text"`
}

func (DocumentContent) TableName() string {
	return "document_contents"
}
