package model

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Sprinkler struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	MapID     string    `json:"mapId" gorm:"not null;index;size:36"`
	Label     *string   `json:"label"`
	XRatio    float64   `json:"xRatio" gorm:"not null"`
	YRatio    float64   `json:"yRatio" gorm:"not null"`
	Active    bool      `json:"active" gorm:"not null"`
	FlowRate  *float64  `json:"flowRate"`
	Metadata  JSONMap   `json:"metadata" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	// Seq orders sprinklers by insertion; CreatedAt may collide at coarse precision.
	Seq       int64     `json:"-" gorm:"not null;index"`
}

var lastSprinklerSeq atomic.Int64

// nextSprinklerSeq returns a strictly increasing value seeded from the wall clock.
func nextSprinklerSeq() int64 {
	for {
		prev := lastSprinklerSeq.Load()
		next := time.Now().UnixNano()
		if next <= prev {
			next = prev + 1
		}
		if lastSprinklerSeq.CompareAndSwap(prev, next) {
			return next
		}
	}
}

func (s *Sprinkler) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Seq == 0 {
		s.Seq = nextSprinklerSeq()
	}
	return nil
}
