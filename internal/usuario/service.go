package usuario

import (
	"github.com/alyssonlcss/api-leads/internal/apperror"
	"gorm.io/gorm"
)

type Service struct {
	Repo Repository
}

func NewService() *Service {
	return &Service{Repo: NewRepository()}
}

// ResolverDistribuidor devolve o distribuidor do usuário autenticado. Esse id
// é a única âncora de autorização das consultas; nunca vem do corpo da
// requisição. Usuário sem distribuidor é erro de configuração e aborta.
func (s *Service) ResolverDistribuidor(db *gorm.DB, usuarioID uint) (uint, error) {
	u, err := s.Repo.BuscarPorID(db, usuarioID)
	if err != nil || u.Distribuidor == nil {
		return 0, apperror.Forbidden("usuário não possui distribuidor associado")
	}
	return u.Distribuidor.ID, nil
}
