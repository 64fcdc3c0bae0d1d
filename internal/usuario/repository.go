package usuario

import (
	"github.com/alyssonlcss/api-leads/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorID(db *gorm.DB, id uint) (*models.Usuario, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*models.Usuario, error) {
	var u models.Usuario
	if err := db.Preload("Distribuidor").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
