package produto

import (
	"github.com/alyssonlcss/api-leads/internal/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorNome(db *gorm.DB, nome string) (*models.Produto, error)
	BuscarDistribuidor(db *gorm.DB, id uint) (*models.Distribuidor, error)
	Listar(db *gorm.DB, distribuidorID uint, filtros Filtro) ([]models.Produto, error)
	BuscarDoDistribuidor(db *gorm.DB, id, distribuidorID uint) (*models.Produto, error)
	Salvar(db *gorm.DB, p *models.Produto) error
	Atualizar(db *gorm.DB, p *models.Produto) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorNome(db *gorm.DB, nome string) (*models.Produto, error) {
	var p models.Produto
	if err := db.Where("nome = ?", nome).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) BuscarDistribuidor(db *gorm.DB, id uint) (*models.Distribuidor, error) {
	var d models.Distribuidor
	if err := db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// Listar é sempre restrito ao distribuidor do chamador — produtos não têm o
// fallback "sem distribuidor" de leads e propriedades.
func (r *repositoryImpl) Listar(db *gorm.DB, distribuidorID uint, f Filtro) ([]models.Produto, error) {
	q := db.Model(&models.Produto{}).
		Where("distribuidor_id = ?", distribuidorID).
		Preload("Distribuidor")

	if f.Nome != "" {
		q = q.Where("LOWER(nome) LIKE LOWER(?)", "%"+f.Nome+"%")
	}
	if f.UnidadeMedida != "" {
		q = q.Where("unidade_medida = ?", f.UnidadeMedida)
	}
	if f.CustoUnidade != nil {
		q = q.Where("custo_unidade = ?", *f.CustoUnidade)
	}
	if f.DistribuidorID != nil {
		// filtro extra por distribuidorId, além do do usuário
		q = q.Where("distribuidor_id = ?", *f.DistribuidorID)
	}
	if len(f.Categoria) > 0 {
		// operador de sobreposição de arrays do Postgres
		q = q.Where("categoria && ?", pq.Array(f.Categoria))
	}

	var produtos []models.Produto
	err := q.Find(&produtos).Error
	return produtos, err
}

func (r *repositoryImpl) BuscarDoDistribuidor(db *gorm.DB, id, distribuidorID uint) (*models.Produto, error) {
	var p models.Produto
	err := db.
		Where("id = ? AND distribuidor_id = ?", id, distribuidorID).
		Preload("Distribuidor").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *models.Produto) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, p *models.Produto) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&models.Produto{}, id).Error
}
