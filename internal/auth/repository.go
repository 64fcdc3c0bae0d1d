package auth

import (
	"github.com/alyssonlcss/api-leads/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorUsername(db *gorm.DB, username string) (*models.Credenciais, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorUsername(db *gorm.DB, username string) (*models.Credenciais, error) {
	var c models.Credenciais
	if err := db.Where("username = ?", username).Preload("Usuario").First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
