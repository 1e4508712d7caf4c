// Package store contains GORM-backed SQLite models used by the lottery node's
// receipt index.
//
// Database Structure (database file: receipts.db):
//
//	receipts   one row per delivered operation, committed or failed
//	events     events emitted by committed operations
package store

import (
	"time"

	"gorm.io/gorm"
)

// Receipt records the outcome of one delivered operation.
type Receipt struct {
	gorm.Model
	Height    int64         `gorm:"index"` // Block height the operation ran at
	BlockTime time.Time     `gorm:"index"` // Block time the operation ran at
	Operation string        `gorm:"index"` // e.g. "buy_ticket", "reveal_rnd_number"
	Sender    string        `gorm:"index"` // 0x-prefixed address of the caller
	Success   bool          `gorm:"index"` // false when the operation was rolled back
	Codespace string        // Error codespace for failed operations
	Code      uint32        // Error code for failed operations
	ErrorMsg  string        `gorm:"type:text"` // Error message if the operation failed
	Result    []byte        // Raw JSON-encoded response
	Events    []EventRecord `gorm:"constraint:OnDelete:CASCADE"`
}

// EventRecord is a single event emitted by a committed operation.
// Table name: "events"
type EventRecord struct {
	gorm.Model
	ReceiptID  uint   `gorm:"index;not null"`
	Type       string `gorm:"index;not null"`
	Attributes []byte // Raw JSON-encoded key/value attributes
}

// TableName specifies the table name for EventRecord.
func (EventRecord) TableName() string {
	return "events"
}
