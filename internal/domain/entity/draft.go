package entity

import (
	"encoding/json"
	"time"

	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"gorm.io/datatypes"
)

// DocumentDraft keeps the in-progress document of a terminal so that it
// survives a restart. One row per terminal.
type DocumentDraft struct {
	TerminalID   string            `gorm:"primaryKey;size:64" json:"terminal_id"`
	DocumentType enum.DocumentType `gorm:"not null" json:"document_type"`
	LineCount    int               `gorm:"default:0" json:"line_count"`
	Payload      datatypes.JSON    `gorm:"type:jsonb" json:"payload"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (DocumentDraft) TableName() string {
	return "document_drafts"
}

// NewDocumentDraft snapshots doc for terminalID
func NewDocumentDraft(terminalID string, doc *Document) (*DocumentDraft, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return &DocumentDraft{
		TerminalID:   terminalID,
		DocumentType: doc.Type,
		LineCount:    len(doc.Lines),
		Payload:      datatypes.JSON(payload),
	}, nil
}

// Document decodes the stored snapshot
func (d *DocumentDraft) Document() (*Document, error) {
	doc := NewDocument(d.DocumentType)
	if err := json.Unmarshal(d.Payload, doc); err != nil {
		return nil, err
	}
	if doc.ExtraFields == nil {
		doc.ExtraFields = map[string]string{}
	}
	return doc, nil
}
