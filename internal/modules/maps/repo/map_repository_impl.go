package repo

import (
	"ecodrip-server/internal/model"

	"gorm.io/gorm"
)

type MapRepository struct {
	db *gorm.DB
}

func orderSprinklers(db *gorm.DB) *gorm.DB {
	return db.Order("sprinklers.seq asc")
}

func (r *MapRepository) Create(m *model.MapImage) error {
	return r.db.Create(m).Error
}

func (r *MapRepository) FindByID(id string) (*model.MapImage, error) {
	var m model.MapImage
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindDetail loads the map with its owner and its sprinklers in stored order.
func (r *MapRepository) FindDetail(id string) (*model.MapImage, error) {
	var m model.MapImage
	err := r.db.
		Preload("Owner").
		Preload("Sprinklers", orderSprinklers).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MapRepository) ListByOwner(ownerID string) ([]model.MapImage, error) {
	var maps []model.MapImage
	err := r.db.
		Preload("Sprinklers", orderSprinklers).
		Where("owner_id = ?", ownerID).
		Order("uploaded_at desc").
		Find(&maps).Error
	if err != nil {
		return nil, err
	}
	return maps, nil
}

func (r *MapRepository) UpdateFields(m *model.MapImage, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(m).Updates(fields).Error
}

// DeleteWithSprinklers removes the sprinklers and then the map in one transaction.
func (r *MapRepository) DeleteWithSprinklers(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("map_id = ?", id).Delete(&model.Sprinkler{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.MapImage{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
