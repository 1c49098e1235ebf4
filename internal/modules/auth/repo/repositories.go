package repo

import (
	"ecodrip-server/internal/model"

	"gorm.io/gorm"
)

type UserStore interface {
	FindByID(id string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Create(user *model.User) error
	Save(user *model.User) error
	List() ([]model.User, error)
}

func NewUserRepository(db *gorm.DB) UserStore {
	return &UserRepository{db: db}
}
