package models

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Unidades de medida aceitas para produtos.
const (
	UnidadeTonelada   = "tonelada"
	UnidadeQuilo      = "quilo"
	UnidadeLitro      = "litro"
	UnidadeQuilolitro = "quilolitro"
	UnidadeMetro      = "metro"
	UnidadeQuilometro = "quilometro"
)

func UnidadeMedidaValida(u string) bool {
	switch u {
	case UnidadeTonelada, UnidadeQuilo, UnidadeLitro, UnidadeQuilolitro, UnidadeMetro, UnidadeQuilometro:
		return true
	}
	return false
}

// Produto é de um distribuidor só, pelo ciclo de vida inteiro. O nome é único
// globalmente, não por distribuidor.
type Produto struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Nome           string          `gorm:"size:255;not null;uniqueIndex" json:"nome"`
	Categoria      pq.StringArray  `gorm:"type:text[]" json:"categoria,omitempty"`
	CustoUnidade   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"custoUnidade"`
	UnidadeMedida  string          `gorm:"size:32;not null" json:"unidadeMedida"`
	DistribuidorID uint            `gorm:"not null;index" json:"distribuidorId"`
	Distribuidor   *Distribuidor   `gorm:"foreignKey:DistribuidorID" json:"distribuidor,omitempty"`
}

func (Produto) TableName() string { return "produtos" }
