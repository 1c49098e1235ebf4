package repo

import (
	"ecodrip-server/internal/model"

	"gorm.io/gorm"
)

type SprinklerRepository struct {
	db *gorm.DB
}

func (r *SprinklerRepository) Create(s *model.Sprinkler) error {
	return r.db.Create(s).Error
}

func (r *SprinklerRepository) FindByID(id string) (*model.Sprinkler, error) {
	var s model.Sprinkler
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByMapID returns the map's sprinklers in stored order, oldest first.
func (r *SprinklerRepository) ListByMapID(mapID string) ([]model.Sprinkler, error) {
	var sprinklers []model.Sprinkler
	if err := r.db.Where("map_id = ?", mapID).Order("seq asc").Find(&sprinklers).Error; err != nil {
		return nil, err
	}
	return sprinklers, nil
}

func (r *SprinklerRepository) CountByMapID(mapID string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Sprinkler{}).Where("map_id = ?", mapID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SprinklerRepository) UpdateFields(s *model.Sprinkler, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(s).Updates(fields).Error
}

func (r *SprinklerRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&model.Sprinkler{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
