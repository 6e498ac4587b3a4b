package model

import (
	"time"
)

// File is one indexed drive entry.
type File struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	ObjectID  string `gorm:"column:object_id;uniqueIndex;not null"`
	Resid     string `gorm:"column:resid"`
	SessionID string `gorm:"column:session_id"`
	ScannedAt time.Time
}

func (f File) TableName() string {
	return "files"
}
