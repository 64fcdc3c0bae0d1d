package lead

import (
	"github.com/alyssonlcss/api-leads/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Listar(db *gorm.DB, filtros Filtro) ([]models.Lead, error)
	BuscarVisivel(db *gorm.DB, id, distribuidorID uint) (*models.Lead, error)
	BuscarPorID(db *gorm.DB, id uint) (*models.Lead, error)
	BuscarComPropriedades(db *gorm.DB, id uint) (*models.Lead, error)
	BuscarPorCPF(db *gorm.DB, cpf string) (*models.Lead, error)
	BuscarPorEmail(db *gorm.DB, email string) (*models.Lead, error)
	BuscarPorTelefone(db *gorm.DB, telefone string) (*models.Lead, error)
	Salvar(db *gorm.DB, l *models.Lead) error
	Atualizar(db *gorm.DB, l *models.Lead) error
	PropriedadesDoLead(db *gorm.DB, leadID uint) ([]models.PropriedadeRural, error)
	SalvarPropriedade(db *gorm.DB, p *models.PropriedadeRural) error
	AtualizarPropriedade(db *gorm.DB, id uint, campos map[string]interface{}) error
	DeletarPropriedadesDoLead(db *gorm.DB, leadID uint) error
	Deletar(db *gorm.DB, id uint) error
	EmTransacao(db *gorm.DB, fn func(tx *gorm.DB) error) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Listar aplica o predicado de modo sobre o distribuidor DAS PROPRIEDADES:
// com distribuidorId no filtro só entram leads com propriedade daquele
// distribuidor; sem o filtro, só leads com propriedade sem distribuidor.
// O join multiplica linhas por propriedade, daí o Distinct.
func (r *repositoryImpl) Listar(db *gorm.DB, f Filtro) ([]models.Lead, error) {
	q := db.Model(&models.Lead{}).
		Distinct("leads.*").
		Joins("LEFT JOIN propriedades_rurais pr ON pr.lead_id = leads.id").
		Preload("PropriedadesRurais.Distribuidor").
		Preload("Distribuidor")

	if f.DistribuidorID != nil {
		q = q.Where("pr.distribuidor_id = ?", *f.DistribuidorID)
	} else {
		q = q.Where("pr.distribuidor_id IS NULL")
	}

	if f.Nome != "" {
		q = q.Where("LOWER(leads.nome) LIKE LOWER(?)", "%"+f.Nome+"%")
	}
	if f.CPF != "" {
		q = q.Where("leads.cpf = ?", f.CPF)
	}
	if f.Status != "" {
		q = q.Where("leads.status = ?", f.Status)
	}
	if f.Comentario != "" {
		q = q.Where("LOWER(leads.comentario) LIKE LOWER(?)", "%"+f.Comentario+"%")
	}
	if f.Email != "" {
		q = q.Where("LOWER(leads.email) LIKE LOWER(?)", "%"+f.Email+"%")
	}
	if f.Telefone != "" {
		q = q.Where("leads.telefone LIKE ?", "%"+f.Telefone+"%")
	}

	var leads []models.Lead
	err := q.Find(&leads).Error
	return leads, err
}

// BuscarVisivel usa o predicado de três vias do findOne, deliberadamente
// diferente do predicado de modo do Listar: lead sem distribuidor, OU do
// distribuidor do chamador, OU atribuído mas com alguma propriedade solta.
func (r *repositoryImpl) BuscarVisivel(db *gorm.DB, id, distribuidorID uint) (*models.Lead, error) {
	var lead models.Lead
	err := db.Model(&models.Lead{}).
		Distinct("leads.*").
		Joins("LEFT JOIN propriedades_rurais pr ON pr.lead_id = leads.id").
		Where("leads.id = ?", id).
		Where("leads.distribuidor_id IS NULL OR leads.distribuidor_id = ? OR (leads.distribuidor_id IS NOT NULL AND pr.distribuidor_id IS NULL)", distribuidorID).
		Preload("PropriedadesRurais.Distribuidor").
		Preload("Distribuidor").
		First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*models.Lead, error) {
	var lead models.Lead
	if err := db.First(&lead, id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *repositoryImpl) BuscarComPropriedades(db *gorm.DB, id uint) (*models.Lead, error) {
	var lead models.Lead
	err := db.Preload("PropriedadesRurais").Preload("Distribuidor").First(&lead, id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *repositoryImpl) BuscarPorCPF(db *gorm.DB, cpf string) (*models.Lead, error) {
	var lead models.Lead
	if err := db.Where("cpf = ?", cpf).First(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*models.Lead, error) {
	var lead models.Lead
	if err := db.Where("email = ?", email).First(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *repositoryImpl) BuscarPorTelefone(db *gorm.DB, telefone string) (*models.Lead, error) {
	var lead models.Lead
	if err := db.Where("telefone = ?", telefone).First(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, l *models.Lead) error {
	return db.Create(l).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, l *models.Lead) error {
	return db.Save(l).Error
}

func (r *repositoryImpl) PropriedadesDoLead(db *gorm.DB, leadID uint) ([]models.PropriedadeRural, error) {
	var props []models.PropriedadeRural
	err := db.Where("lead_id = ?", leadID).Order("id ASC").Find(&props).Error
	return props, err
}

func (r *repositoryImpl) SalvarPropriedade(db *gorm.DB, p *models.PropriedadeRural) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) AtualizarPropriedade(db *gorm.DB, id uint, campos map[string]interface{}) error {
	return db.Model(&models.PropriedadeRural{}).Where("id = ?", id).Updates(campos).Error
}

func (r *repositoryImpl) DeletarPropriedadesDoLead(db *gorm.DB, leadID uint) error {
	return db.Where("lead_id = ?", leadID).Delete(&models.PropriedadeRural{}).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&models.Lead{}, id).Error
}

func (r *repositoryImpl) EmTransacao(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}
