package repo

import (
	"ecodrip-server/internal/model"

	"gorm.io/gorm"
)

type MapStore interface {
	Create(m *model.MapImage) error
	FindByID(id string) (*model.MapImage, error)
	FindDetail(id string) (*model.MapImage, error)
	ListByOwner(ownerID string) ([]model.MapImage, error)
	UpdateFields(m *model.MapImage, fields map[string]any) error
	DeleteWithSprinklers(id string) error
}

func NewMapRepository(db *gorm.DB) MapStore {
	return &MapRepository{db: db}
}
