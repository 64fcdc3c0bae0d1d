package propriedaderural

import (
	"strings"

	"github.com/alyssonlcss/api-leads/internal/apperror"
)

type CreatePropriedadeRequest struct {
	Nome           string  `json:"nome"`
	Cultura        string  `json:"cultura"`
	Hectares       float64 `json:"hectares"`
	UF             string  `json:"uf"`
	Cidade         string  `json:"cidade"`
	Geometria      *string `json:"geometria"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LeadID         uint    `json:"leadId"`
	DistribuidorID *uint   `json:"distribuidorId"`
}

func (r *CreatePropriedadeRequest) Validar() error {
	if r.LeadID == 0 {
		return apperror.Invalid("leadId é obrigatório")
	}
	if r.Cultura == "" {
		return apperror.Invalid("cultura é obrigatória")
	}
	if r.Hectares < 0 {
		return apperror.Invalid("hectares não pode ser negativo")
	}
	if len(r.UF) != 2 {
		return apperror.Invalid("UF deve ter 2 letras")
	}
	if r.Cidade == "" {
		return apperror.Invalid("cidade é obrigatória")
	}
	return nil
}

type UpdatePropriedadeRequest struct {
	Nome           *string  `json:"nome"`
	Cultura        *string  `json:"cultura"`
	Hectares       *float64 `json:"hectares"`
	UF             *string  `json:"uf"`
	Cidade         *string  `json:"cidade"`
	Geometria      *string  `json:"geometria"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	DistribuidorID *uint    `json:"distribuidorId"`
}

// Campos devolve só o que veio preenchido, como mapa coluna→valor.
func (r *UpdatePropriedadeRequest) Campos() (map[string]interface{}, error) {
	campos := map[string]interface{}{}
	if r.Nome != nil {
		campos["nome"] = *r.Nome
	}
	if r.Cultura != nil {
		campos["cultura"] = *r.Cultura
	}
	if r.Hectares != nil {
		if *r.Hectares < 0 {
			return nil, apperror.Invalid("hectares não pode ser negativo")
		}
		campos["hectares"] = *r.Hectares
	}
	if r.UF != nil {
		if len(*r.UF) != 2 {
			return nil, apperror.Invalid("UF deve ter 2 letras")
		}
		campos["uf"] = strings.ToUpper(*r.UF)
	}
	if r.Cidade != nil {
		campos["cidade"] = *r.Cidade
	}
	if r.Geometria != nil {
		campos["geometria"] = *r.Geometria
	}
	if r.Latitude != nil {
		campos["latitude"] = *r.Latitude
	}
	if r.Longitude != nil {
		campos["longitude"] = *r.Longitude
	}
	if r.DistribuidorID != nil {
		campos["distribuidor_id"] = *r.DistribuidorID
	}
	return campos, nil
}

// Filtro de listagem; campos zero são ignorados.
type Filtro struct {
	Nome           string
	Cultura        string
	Hectares       *float64
	UF             string
	Cidade         string
	Geometria      string
	LeadID         *uint
	DistribuidorID *uint
	Latitude       *float64
	Longitude      *float64
}
