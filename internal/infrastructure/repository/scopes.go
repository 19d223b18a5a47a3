package repository

import (
	"gorm.io/gorm"
)

// TerminalScope returns a GORM scope that filters by terminal.
// An empty terminal id matches nothing.
func TerminalScope(terminalID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if terminalID == "" {
			return db.Where("1 = 0")
		}
		return db.Where("terminal_id = ?", terminalID)
	}
}
