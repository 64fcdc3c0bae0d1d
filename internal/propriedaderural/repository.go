package propriedaderural

import (
	"github.com/alyssonlcss/api-leads/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Listar(db *gorm.DB, distribuidorID uint, filtros Filtro) ([]models.PropriedadeRural, error)
	BuscarVisivel(db *gorm.DB, id, distribuidorID uint) (*models.PropriedadeRural, error)
	BuscarLead(db *gorm.DB, id uint) (*models.Lead, error)
	Salvar(db *gorm.DB, p *models.PropriedadeRural) error
	Atualizar(db *gorm.DB, id uint, campos map[string]interface{}) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Listar usa o predicado em OR das propriedades: do distribuidor do chamador
// OU sem distribuidor. Não é o comutador atribuído/não atribuído dos leads.
func (r *repositoryImpl) Listar(db *gorm.DB, distribuidorID uint, f Filtro) ([]models.PropriedadeRural, error) {
	q := db.Model(&models.PropriedadeRural{}).
		Where("propriedades_rurais.distribuidor_id = ? OR propriedades_rurais.distribuidor_id IS NULL", distribuidorID).
		Preload("Lead").
		Preload("Distribuidor")

	if f.Cultura != "" {
		q = q.Where("LOWER(propriedades_rurais.cultura) LIKE LOWER(?)", "%"+f.Cultura+"%")
	}
	if f.Nome != "" {
		q = q.Where("LOWER(propriedades_rurais.nome) LIKE LOWER(?)", "%"+f.Nome+"%")
	}
	if f.Hectares != nil {
		q = q.Where("propriedades_rurais.hectares = ?", *f.Hectares)
	}
	if f.UF != "" {
		q = q.Where("LOWER(propriedades_rurais.uf) LIKE LOWER(?)", "%"+f.UF+"%")
	}
	if f.Cidade != "" {
		q = q.Where("LOWER(propriedades_rurais.cidade) LIKE LOWER(?)", "%"+f.Cidade+"%")
	}
	if f.Geometria != "" {
		q = q.Where("LOWER(propriedades_rurais.geometria) LIKE LOWER(?)", "%"+f.Geometria+"%")
	}
	if f.LeadID != nil {
		q = q.Where("propriedades_rurais.lead_id = ?", *f.LeadID)
	}
	if f.DistribuidorID != nil {
		q = q.Where("propriedades_rurais.distribuidor_id = ?", *f.DistribuidorID)
	}
	if f.Latitude != nil {
		q = q.Where("propriedades_rurais.latitude = ?", *f.Latitude)
	}
	if f.Longitude != nil {
		q = q.Where("propriedades_rurais.longitude = ?", *f.Longitude)
	}

	var props []models.PropriedadeRural
	err := q.Find(&props).Error
	return props, err
}

func (r *repositoryImpl) BuscarVisivel(db *gorm.DB, id, distribuidorID uint) (*models.PropriedadeRural, error) {
	var p models.PropriedadeRural
	err := db.
		Where("id = ?", id).
		Where("distribuidor_id = ? OR distribuidor_id IS NULL", distribuidorID).
		Preload("Lead").
		Preload("Distribuidor").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) BuscarLead(db *gorm.DB, id uint) (*models.Lead, error) {
	var l models.Lead
	if err := db.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *models.PropriedadeRural) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, campos map[string]interface{}) error {
	return db.Model(&models.PropriedadeRural{}).Where("id = ?", id).Updates(campos).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&models.PropriedadeRural{}, id).Error
}
