package produto

import (
	"github.com/alyssonlcss/api-leads/internal/apperror"
	"github.com/alyssonlcss/api-leads/internal/models"
	"github.com/shopspring/decimal"
)

type CreateProdutoRequest struct {
	Nome          string          `json:"nome"`
	Categoria     []string        `json:"categoria"`
	CustoUnidade  decimal.Decimal `json:"custoUnidade"`
	UnidadeMedida string          `json:"unidadeMedida"`
	// Informativo apenas: na criação o distribuidor persistido é sempre o do
	// chamador, nunca o do payload.
	DistribuidorID *uint `json:"distribuidorId"`
}

func (r *CreateProdutoRequest) Validar() error {
	if r.Nome == "" {
		return apperror.Invalid("nome do produto é obrigatório")
	}
	if r.CustoUnidade.IsNegative() {
		return apperror.Invalid("custoUnidade não pode ser negativo")
	}
	if !models.UnidadeMedidaValida(r.UnidadeMedida) {
		return apperror.Invalid("unidade de medida desconhecida")
	}
	return nil
}

type UpdateProdutoRequest struct {
	Nome           *string          `json:"nome"`
	Categoria      []string         `json:"categoria"`
	CustoUnidade   *decimal.Decimal `json:"custoUnidade"`
	UnidadeMedida  *string          `json:"unidadeMedida"`
	DistribuidorID *uint            `json:"distribuidorId"`
}

type Filtro struct {
	Nome           string
	UnidadeMedida  string
	CustoUnidade   *decimal.Decimal
	DistribuidorID *uint
	Categoria      []string
}
