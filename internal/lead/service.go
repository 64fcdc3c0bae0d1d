package lead

import (
	"errors"
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

// FindAll lista leads no modo atribuído ou não atribuído, conforme a presença
// do distribuidorId no filtro. O distribuidor do chamador só valida o direito
// de consulta; quem dirige a seleção de linhas é o filtro.
func (s *Service) FindAll(db *gorm.DB, usuarioID uint, filtros Filtro) ([]LeadView, error) {
	if _, err := s.Usuarios.ResolverDistribuidor(db, usuarioID); err != nil {
		return nil, err
	}

	leads, err := s.Repo.Listar(db, filtros)
	if err != nil {
		return nil, err
	}

	// O join seleciona o lead, mas o preload traz TODAS as propriedades dele,
	// não só as que casaram com o predicado; refiltra em memória com o mesmo
	// critério e descarta leads que ficarem sem nenhuma propriedade visível.
	views := make([]LeadView, 0, len(leads))
	for _, l := range leads {
		visiveis := filtrarPropriedades(l.PropriedadesRurais, filtros.DistribuidorID)
		if len(visiveis) == 0 {
			continue
		}
		views = append(views, montarView(l, visiveis))
	}
	return views, nil
}

// FindOne usa o predicado de três vias, mais largo que o do FindAll: todo
// lead alcançável pelo FindAll também é alcançável por aqui.
func (s *Service) FindOne(db *gorm.DB, id, usuarioID uint) (*LeadView, error) {
	distribuidorID, err := s.Usuarios.ResolverDistribuidor(db, usuarioID)
	if err != nil {
		return nil, err
	}

	l, err := s.Repo.BuscarVisivel(db, id, distribuidorID)
	if err != nil {
		return nil, apperror.Translate(err, "lead não encontrado", "")
	}

	// Lead de outro distribuidor só entra pela via da propriedade solta; nesse
	// caso a saída expõe apenas as propriedades sem distribuidor, não as
	// atribuídas a terceiros.
	props := l.PropriedadesRurais
	if l.DistribuidorID != nil && *l.DistribuidorID != distribuidorID {
		props = filtrarPropriedades(props, nil)
	}

	v := montarView(*l, props)
	return &v, nil
}

// Create valida o CPF, garante unicidade de cpf/email/telefone e cria o lead
// com exatamente uma propriedade inicial, tudo numa transação só.
func (s *Service) Create(db *gorm.DB, req CreateLeadRequest) (*models.Lead, error) {
	if req.Nome == "" {
		return nil, apperror.Invalid("nome do lead é obrigatório")
	}
	cpf := NormalizarCPF(req.CPF)
	if !ValidarCPF(cpf) {
		return nil, apperror.Invalid("CPF inválido")
	}
	status := req.Status
	if status == "" {
		status = models.StatusNovo
	}
	if !models.StatusValido(status) {
		return nil, apperror.Invalid("status de lead desconhecido")
	}
	if err := req.Propriedade.Validar(); err != nil {
		return nil, err
	}

	if err := s.garantirCPFLivre(db, cpf); err != nil {
		return nil, err
	}
	if req.Email != nil {
		if err := s.garantirEmailLivre(db, *req.Email, 0); err != nil {
			return nil, err
		}
	}
	if req.Telefone != nil {
		if err := s.garantirTelefoneLivre(db, *req.Telefone, 0); err != nil {
			return nil, err
		}
	}

	var criado *models.Lead
	err := s.Repo.EmTransacao(db, func(tx *gorm.DB) error {
		l := &models.Lead{
			Nome:           req.Nome,
			CPF:            cpf,
			Email:          req.Email,
			Telefone:       req.Telefone,
			Status:         status,
			Comentario:     req.Comentario,
			DistribuidorID: req.DistribuidorID,
		}
		if err := s.Repo.Salvar(tx, l); err != nil {
			return apperror.Translate(err, "", "lead com dado único já cadastrado")
		}

		p := &models.PropriedadeRural{
			Nome:           req.Propriedade.Nome,
			Cultura:        req.Propriedade.Cultura,
			Hectares:       req.Propriedade.Hectares,
			UF:             strings.ToUpper(req.Propriedade.UF),
			Cidade:         req.Propriedade.Cidade,
			Geometria:      req.Propriedade.Geometria,
			Latitude:       req.Propriedade.Latitude,
			Longitude:      req.Propriedade.Longitude,
			LeadID:         l.ID,
			DistribuidorID: req.Propriedade.DistribuidorID,
		}
		if err := s.Repo.SalvarPropriedade(tx, p); err != nil {
			return err
		}

		recarregado, err := s.Repo.BuscarComPropriedades(tx, l.ID)
		if err != nil {
			return err
		}
		criado = recarregado
		return nil
	})
	if err != nil {
		return nil, err
	}
	return criado, nil
}

// Update revalida existência e visibilidade, rechecagem de unicidade só para
// campo que está mudando, e aplica o patch opcional da primeira propriedade.
func (s *Service) Update(db *gorm.DB, id uint, req UpdateLeadRequest, usuarioID uint) (*LeadView, error) {
	atual, err := s.Repo.BuscarPorID(db, id)
	if err != nil {
		return nil, apperror.Translate(err, "lead não encontrado", "")
	}
	if _, err := s.FindOne(db, id, usuarioID); err != nil {
		return nil, err
	}

	if req.Email != nil && (atual.Email == nil || *req.Email != *atual.Email) {
		if err := s.garantirEmailLivre(db, *req.Email, id); err != nil {
			return nil, err
		}
	}
	if req.Telefone != nil && (atual.Telefone == nil || *req.Telefone != *atual.Telefone) {
		if err := s.garantirTelefoneLivre(db, *req.Telefone, id); err != nil {
			return nil, err
		}
	}

	if req.Nome != nil {
		atual.Nome = *req.Nome
	}
	if req.Email != nil {
		atual.Email = req.Email
	}
	if req.Telefone != nil {
		atual.Telefone = req.Telefone
	}
	if req.Status != nil {
		if !models.StatusValido(*req.Status) {
			return nil, apperror.Invalid("status de lead desconhecido")
		}
		atual.Status = *req.Status
	}
	if req.Comentario != nil {
		atual.Comentario = req.Comentario
	}
	if req.DistribuidorID.Set {
		// Reatribuição ou desatribuição explícita (null) do próprio lead.
		atual.DistribuidorID = req.DistribuidorID.Value
		atual.Distribuidor = nil
	}

	if err := s.Repo.Atualizar(db, atual); err != nil {
		return nil, apperror.Translate(err, "", "lead com dado único já cadastrado")
	}

	if req.Propriedade != nil {
		props, err := s.Repo.PropriedadesDoLead(db, id)
		if err != nil {
			return nil, err
		}
		if len(props) > 0 {
			campos := req.Propriedade.Campos()
			if len(campos) > 0 {
				if err := s.Repo.AtualizarPropriedade(db, props[0].ID, campos); err != nil {
					return nil, err
				}
			}
		}
	}

	return s.FindOne(db, id, usuarioID)
}

// Remove apaga o lead e antes todas as propriedades dele, para não violar a
// FK — as duas exclusões rodam numa transação só.
func (s *Service) Remove(db *gorm.DB, id, usuarioID uint) error {
	if _, err := s.FindOne(db, id, usuarioID); err != nil {
		return err
	}
	return s.Repo.EmTransacao(db, func(tx *gorm.DB) error {
		if err := s.Repo.DeletarPropriedadesDoLead(tx, id); err != nil {
			return err
		}
		return s.Repo.Deletar(tx, id)
	})
}

func (s *Service) garantirCPFLivre(db *gorm.DB, cpf string) error {
	_, err := s.Repo.BuscarPorCPF(db, cpf)
	if err == nil {
		return apperror.Conflict("CPF já cadastrado para outro lead")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *Service) garantirEmailLivre(db *gorm.DB, email string, ignorarID uint) error {
	existente, err := s.Repo.BuscarPorEmail(db, email)
	if err == nil && existente.ID != ignorarID {
		return apperror.Conflict("email já cadastrado para outro lead")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *Service) garantirTelefoneLivre(db *gorm.DB, telefone string, ignorarID uint) error {
	existente, err := s.Repo.BuscarPorTelefone(db, telefone)
	if err == nil && existente.ID != ignorarID {
		return apperror.Conflict("telefone já cadastrado para outro lead")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// filtrarPropriedades aplica em memória o mesmo critério de modo do SQL.
func filtrarPropriedades(props []models.PropriedadeRural, distribuidorID *uint) []models.PropriedadeRural {
	visiveis := make([]models.PropriedadeRural, 0, len(props))
	for _, p := range props {
		if distribuidorID != nil {
			if p.DistribuidorID != nil && *p.DistribuidorID == *distribuidorID {
				visiveis = append(visiveis, p)
			}
		} else if p.DistribuidorID == nil {
			visiveis = append(visiveis, p)
		}
	}
	return visiveis
}

func montarView(l models.Lead, props []models.PropriedadeRural) LeadView {
	return LeadView{
		ID:                 l.ID,
		Nome:               l.Nome,
		CPF:                l.CPF,
		Email:              l.Email,
		Telefone:           l.Telefone,
		Status:             l.Status,
		Comentario:         l.Comentario,
		DistribuidorID:     l.DistribuidorID,
		PropriedadesRurais: props,
	}
}
