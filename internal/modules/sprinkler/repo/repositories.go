package repo

import (
	"ecodrip-server/internal/model"

	"gorm.io/gorm"
)

type SprinklerStore interface {
	Create(s *model.Sprinkler) error
	FindByID(id string) (*model.Sprinkler, error)
	ListByMapID(mapID string) ([]model.Sprinkler, error)
	CountByMapID(mapID string) (int64, error)
	UpdateFields(s *model.Sprinkler, fields map[string]any) error
	Delete(id string) error
}

func NewSprinklerRepository(db *gorm.DB) SprinklerStore {
	return &SprinklerRepository{db: db}
}
