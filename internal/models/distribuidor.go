package models

// Distribuidor é a fronteira de tenancy: usuários pertencem a um distribuidor
// e produtos são de um distribuidor só. Leads e propriedades podem ou não
// estar atribuídos a um.
type Distribuidor struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CNPJ      string `gorm:"size:18;not null;uniqueIndex" json:"cnpj"`
	Nome      string `gorm:"size:255;not null" json:"nome"`
	Geografia string `gorm:"size:255" json:"geografia"`
	Email     string `gorm:"size:255" json:"email"`

	Produtos           []Produto          `gorm:"foreignKey:DistribuidorID" json:"produtos,omitempty"`
	Leads              []Lead             `gorm:"foreignKey:DistribuidorID" json:"leads,omitempty"`
	PropriedadesRurais []PropriedadeRural `gorm:"foreignKey:DistribuidorID" json:"propriedadesRurais,omitempty"`
}

func (Distribuidor) TableName() string { return "distribuidores" }
