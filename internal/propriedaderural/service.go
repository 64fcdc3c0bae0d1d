package propriedaderural

import (
	"strings"

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

// FindAll lista propriedades do distribuidor do chamador e as sem
// distribuidor, com os filtros opcionais por cima.
func (s *Service) FindAll(db *gorm.DB, usuarioID uint, filtros Filtro) ([]models.PropriedadeRural, error) {
	distribuidorID, err := s.Usuarios.ResolverDistribuidor(db, usuarioID)
	if err != nil {
		return nil, err
	}
	return s.Repo.Listar(db, distribuidorID, filtros)
}

// FindOne: visível se for do distribuidor do chamador ou de ninguém.
func (s *Service) FindOne(db *gorm.DB, id, usuarioID uint) (*models.PropriedadeRural, error) {
	distribuidorID, err := s.Usuarios.ResolverDistribuidor(db, usuarioID)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.BuscarVisivel(db, id, distribuidorID)
	if err != nil {
		return nil, apperror.Translate(err, "propriedade rural não encontrada", "")
	}
	return p, nil
}

// Create exige que o lead exista; não há checagem de dono na criação.
func (s *Service) Create(db *gorm.DB, req CreatePropriedadeRequest) (*models.PropriedadeRural, error) {
	if err := req.Validar(); err != nil {
		return nil, err
	}
	if _, err := s.Repo.BuscarLead(db, req.LeadID); err != nil {
		return nil, apperror.Translate(err, "lead não encontrado", "")
	}

	p := &models.PropriedadeRural{
		Nome:           req.Nome,
		Cultura:        req.Cultura,
		Hectares:       req.Hectares,
		UF:             strings.ToUpper(req.UF),
		Cidade:         req.Cidade,
		Geometria:      req.Geometria,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		LeadID:         req.LeadID,
		DistribuidorID: req.DistribuidorID,
	}
	if err := s.Repo.Salvar(db, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update delega a checagem de existência/visibilidade ao FindOne e aplica só
// os campos presentes.
func (s *Service) Update(db *gorm.DB, id uint, req UpdatePropriedadeRequest, usuarioID uint) (*models.PropriedadeRural, error) {
	if _, err := s.FindOne(db, id, usuarioID); err != nil {
		return nil, err
	}

	campos, err := req.Campos()
	if err != nil {
		return nil, err
	}
	if len(campos) > 0 {
		if err := s.Repo.Atualizar(db, id, campos); err != nil {
			return nil, err
		}
	}
	return s.FindOne(db, id, usuarioID)
}

func (s *Service) Remove(db *gorm.DB, id, usuarioID uint) error {
	if _, err := s.FindOne(db, id, usuarioID); err != nil {
		return err
	}
	return s.Repo.Deletar(db, id)
}
