package models

// Status do lead no funil de vendas.
const (
	StatusNovo           = "novo"
	StatusContatoInicial = "contatoInicial"
	StatusNegociando     = "negociando"
	StatusConvertido     = "convertido"
	StatusPerdido        = "perdido"
)

// StatusValido diz se o valor é um status de funil conhecido.
func StatusValido(s string) bool {
	switch s {
	case StatusNovo, StatusContatoInicial, StatusNegociando, StatusConvertido, StatusPerdido:
		return true
	}
	return false
}

// Lead é um cliente em potencial. O DistribuidorID do próprio lead e o das
// suas propriedades são sinais de atribuição independentes e podem divergir;
// é essa divergência que as regras de visibilidade interpretam.
type Lead struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Nome           string  `gorm:"size:255;not null" json:"nome"`
	CPF            string  `gorm:"size:11;not null;uniqueIndex" json:"cpf"`
	Email          *string `gorm:"size:255;uniqueIndex" json:"email"`
	Telefone       *string `gorm:"size:20;uniqueIndex" json:"telefone"`
	Status         string  `gorm:"size:32;not null;default:novo" json:"status"`
	Comentario     *string `gorm:"type:text" json:"comentario"`
	DistribuidorID *uint   `gorm:"index" json:"distribuidorId"`

	Distribuidor       *Distribuidor      `gorm:"foreignKey:DistribuidorID" json:"distribuidor,omitempty"`
	PropriedadesRurais []PropriedadeRural `gorm:"foreignKey:LeadID" json:"propriedadesRurais"`
}

func (Lead) TableName() string { return "leads" }
