package model

import (
	"time"

	"gorm.io/gorm"
)

// Word maps a sign-language vocabulary word to its pose clip file
type Word struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Word         string `gorm:"type:varchar(255);not null;index" json:"word"`
	Category     string `gorm:"type:varchar(255)" json:"category"`
	PoseFilename string `gorm:"type:varchar(500);not null" json:"pose_filename"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for Word
func (Word) TableName() string {
	return "sl_words"
}
