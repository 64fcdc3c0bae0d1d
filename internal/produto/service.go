package produto

import (
	"errors"

	"github.com/alyssonlcss/api-leads/internal/apperror"
	"github.com/alyssonlcss/api-leads/internal/models"
	"gorm.io/gorm"
)

// ResolvedorDistribuidor isola a resolução do distribuidor do chamador.
type ResolvedorDistribuidor interface {
	ResolverDistribuidor(db *gorm.DB, usuarioID uint) (uint, error)
}

type Service struct {
	Repo     Repository
	Usuarios ResolvedorDistribuidor
}

func NewService(usuarios ResolvedorDistribuidor) *Service {
	return &Service{Repo: NewRepository(), Usuarios: usuarios}
}

// Create grava o produto sempre no distribuidor do chamador — o
// distribuidorId do payload é informativo e é sobrescrito. Nome é único
// globalmente, não por distribuidor.
func (s *Service) Create(db *gorm.DB, req CreateProdutoRequest, usuarioID uint) (*models.Produto, error) {
	distribuidorID, err := s.Usuarios.ResolverDistribuidor(db, usuarioID)
	if err != nil {
		return nil, err
	}
	if err := req.Validar(); err != nil {
		return nil, err
	}

	if _, err := s.Repo.BuscarPorNome(db, req.Nome); err == nil {
		return nil, apperror.Conflict("produto com este nome já existe")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.Repo.BuscarDistribuidor(db, distribuidorID); err != nil {
		return nil, apperror.Translate(err, "distribuidor não encontrado", "")
	}

	p := &models.Produto{
		Nome:           req.Nome,
		Categoria:      req.Categoria,
		CustoUnidade:   req.CustoUnidade,
		UnidadeMedida:  req.UnidadeMedida,
		DistribuidorID: distribuidorID,
	}
	if err := s.Repo.Salvar(db, p); err != nil {
		return nil, apperror.Translate(err, "", "produto com este nome já existe")
	}
	return p, nil
}

// FindAll só enxerga produtos do distribuidor do chamador.
func (s *Service) FindAll(db *gorm.DB, usuarioID uint, filtros Filtro) ([]models.Produto, error) {
	distribuidorID, err := s.Usuarios.ResolverDistribuidor(db, usuarioID)
	if err != nil {
		return nil, err
	}
	return s.Repo.Listar(db, distribuidorID, filtros)
}

func (s *Service) FindOne(db *gorm.DB, id, usuarioID uint) (*models.Produto, error) {
	distribuidorID, err := s.Usuarios.ResolverDistribuidor(db, usuarioID)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.BuscarDoDistribuidor(db, id, distribuidorID)
	if err != nil {
		return nil, apperror.Translate(err, "produto não encontrado", "")
	}
	return p, nil
}

// Update: o distribuidor do produto é imutável. Qualquer tentativa de trocar
// falha com Forbidden sem escrever nada.
func (s *Service) Update(db *gorm.DB, id uint, req UpdateProdutoRequest, usuarioID uint) (*models.Produto, error) {
	p, err := s.FindOne(db, id, usuarioID)
	if err != nil {
		return nil, err
	}

	// Zero conta como ausente, não como tentativa de troca.
	if req.DistribuidorID != nil && *req.DistribuidorID != 0 && *req.DistribuidorID != p.DistribuidorID {
		return nil, apperror.Forbidden("não é permitido alterar o distribuidor do produto")
	}

	if req.Nome != nil && *req.Nome != p.Nome {
		if existente, err := s.Repo.BuscarPorNome(db, *req.Nome); err == nil && existente.ID != id {
			return nil, apperror.Conflict("produto com este nome já existe")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		p.Nome = *req.Nome
	}
	if req.Categoria != nil {
		p.Categoria = req.Categoria
	}
	if req.CustoUnidade != nil {
		if req.CustoUnidade.IsNegative() {
			return nil, apperror.Invalid("custoUnidade não pode ser negativo")
		}
		p.CustoUnidade = *req.CustoUnidade
	}
	if req.UnidadeMedida != nil {
		if !models.UnidadeMedidaValida(*req.UnidadeMedida) {
			return nil, apperror.Invalid("unidade de medida desconhecida")
		}
		p.UnidadeMedida = *req.UnidadeMedida
	}

	if err := s.Repo.Atualizar(db, p); err != nil {
		return nil, apperror.Translate(err, "", "produto com este nome já existe")
	}
	return p, nil
}

func (s *Service) Remove(db *gorm.DB, id, usuarioID uint) error {
	p, err := s.FindOne(db, id, usuarioID)
	if err != nil {
		return err
	}
	return s.Repo.Deletar(db, p.ID)
}
