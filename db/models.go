package db

import (
	"time"

	"gorm.io/gorm"
)

// ShareRecord is one stored share code with its snapshot payload.
type ShareRecord struct {
	gorm.Model
	Code        string    `gorm:"uniqueIndex"` // Uppercase 8-char share code
	ContentHash string    `gorm:"index"`       // Fingerprint of the stored payload
	Payload     string    // Snapshot JSON
	SavedAt     time.Time // Last time the payload was written
}
