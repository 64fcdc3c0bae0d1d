package distribuidor

import (
	"github.com/alyssonlcss/api-leads/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, d *models.Distribuidor) error
	ListarTodos(db *gorm.DB) ([]models.Distribuidor, error)
	BuscarPorID(db *gorm.DB, id uint) (*models.Distribuidor, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, d *models.Distribuidor) error {
	return db.Create(d).Error
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]models.Distribuidor, error) {
	var distribuidores []models.Distribuidor
	err := db.Find(&distribuidores).Error
	return distribuidores, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*models.Distribuidor, error) {
	var d models.Distribuidor
	if err := db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
