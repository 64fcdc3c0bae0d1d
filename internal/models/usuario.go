package models

// Usuario é a âncora de autorização: todo usuário autenticado pertence a
// exatamente um distribuidor, resolvido a cada requisição.
type Usuario struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Email          string        `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Nome           string        `gorm:"size:255;not null" json:"nome"`
	DistribuidorID uint          `gorm:"not null;index" json:"distribuidorId"`
	Distribuidor   *Distribuidor `gorm:"foreignKey:DistribuidorID" json:"distribuidor,omitempty"`
}

func (Usuario) TableName() string { return "usuarios" }
