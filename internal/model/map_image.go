package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MapImage struct {
	ID          string      `json:"id" gorm:"primaryKey;size:36"`
	Title       string      `json:"title" gorm:"not null"`
	Description *string     `json:"description"`
	ImagePath   string      `json:"imagePath" gorm:"not null;unique"`
	Width       int         `json:"width" gorm:"not null"`
	Height      int         `json:"height" gorm:"not null"`
	Size        int64       `json:"size" gorm:"not null"`
	MimeType    string      `json:"mimeType" gorm:"not null"`
	UploadedAt  time.Time   `json:"uploadedAt" gorm:"not null;index"`
	OwnerID     string      `json:"ownerId" gorm:"not null;index;size:36"`
	Owner       User        `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE;"`
	Sprinklers  []Sprinkler `json:"-" gorm:"foreignKey:MapID;constraint:OnDelete:CASCADE;"`
}

func (m *MapImage) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.UploadedAt.IsZero() {
		m.UploadedAt = time.Now()
	}
	return nil
}
