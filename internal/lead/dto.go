package lead

import (
	"encoding/json"
	"strings"

	"github.com/alyssonlcss/api-leads/internal/apperror"
	"github.com/alyssonlcss/api-leads/internal/models"
)

// OptionalUint distingue campo ausente, null explícito e valor — o PATCH de
// lead aceita distribuidorId: null para desatribuir.
type OptionalUint struct {
	Set   bool
	Value *uint
}

func (o *OptionalUint) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// PropriedadePayload descreve a propriedade inicial criada junto com o lead.
type PropriedadePayload struct {
	Nome           string  `json:"nome"`
	Cultura        string  `json:"cultura"`
	Hectares       float64 `json:"hectares"`
	UF             string  `json:"uf"`
	Cidade         string  `json:"cidade"`
	Geometria      *string `json:"geometria"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	DistribuidorID *uint   `json:"distribuidorId"`
}

func (p *PropriedadePayload) Validar() error {
	if p.Cultura == "" {
		return apperror.Invalid("cultura da propriedade é obrigatória")
	}
	if p.Hectares < 0 {
		return apperror.Invalid("hectares não pode ser negativo")
	}
	if len(p.UF) != 2 {
		return apperror.Invalid("UF deve ter 2 letras")
	}
	if p.Cidade == "" {
		return apperror.Invalid("cidade da propriedade é obrigatória")
	}
	return nil
}

type CreateLeadRequest struct {
	Nome           string             `json:"nome"`
	CPF            string             `json:"cpf"`
	Email          *string            `json:"email"`
	Telefone       *string            `json:"telefone"`
	Status         string             `json:"status"`
	Comentario     *string            `json:"comentario"`
	DistribuidorID *uint              `json:"distribuidorId"`
	Propriedade    PropriedadePayload `json:"propriedade"`
}

// PropriedadePatch é o sub-payload opcional do PATCH de lead: só os campos
// presentes são aplicados, sempre na primeira propriedade (id crescente).
type PropriedadePatch struct {
	Nome      *string  `json:"nome"`
	Cultura   *string  `json:"cultura"`
	Hectares  *float64 `json:"hectares"`
	UF        *string  `json:"uf"`
	Cidade    *string  `json:"cidade"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Campos converte o patch num mapa coluna→valor só com o que veio preenchido.
func (p *PropriedadePatch) Campos() map[string]interface{} {
	campos := map[string]interface{}{}
	if p.Nome != nil {
		campos["nome"] = *p.Nome
	}
	if p.Cultura != nil {
		campos["cultura"] = *p.Cultura
	}
	if p.Hectares != nil {
		campos["hectares"] = *p.Hectares
	}
	if p.UF != nil {
		campos["uf"] = strings.ToUpper(*p.UF)
	}
	if p.Cidade != nil {
		campos["cidade"] = *p.Cidade
	}
	if p.Latitude != nil {
		campos["latitude"] = *p.Latitude
	}
	if p.Longitude != nil {
		campos["longitude"] = *p.Longitude
	}
	return campos
}

type UpdateLeadRequest struct {
	Nome           *string           `json:"nome"`
	Email          *string           `json:"email"`
	Telefone       *string           `json:"telefone"`
	Status         *string           `json:"status"`
	Comentario     *string           `json:"comentario"`
	DistribuidorID OptionalUint      `json:"distribuidorId"`
	Propriedade    *PropriedadePatch `json:"propriedade"`
}

// Filtro carrega os parâmetros de busca do findAll. DistribuidorID é a chave
// do modo de visibilidade: presente = atribuído, ausente = não atribuído.
type Filtro struct {
	Nome           string
	CPF            string
	Status         string
	Comentario     string
	Email          string
	Telefone       string
	DistribuidorID *uint
}

// LeadView é a forma achatada das leituras: a associação com o distribuidor
// sai e entra um distribuidorId plano — o estado de atribuição do próprio
// lead, independente do estado das propriedades.
type LeadView struct {
	ID                 uint                      `json:"id"`
	Nome               string                    `json:"nome"`
	CPF                string                    `json:"cpf"`
	Email              *string                   `json:"email"`
	Telefone           *string                   `json:"telefone"`
	Status             string                    `json:"status"`
	Comentario         *string                   `json:"comentario"`
	DistribuidorID     *uint                     `json:"distribuidorId"`
	PropriedadesRurais []models.PropriedadeRural `json:"propriedadesRurais"`
}
