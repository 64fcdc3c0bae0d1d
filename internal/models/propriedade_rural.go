package models

// PropriedadeRural pertence a um lead (composição: não existe sem ele) e pode
// estar atribuída a um distribuidor independentemente do lead.
type PropriedadeRural struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Nome           string  `gorm:"size:255" json:"nome"`
	Cultura        string  `gorm:"size:255;not null" json:"cultura"`
	Hectares       float64 `gorm:"not null" json:"hectares"`
	UF             string  `gorm:"size:2;not null" json:"uf"`
	Cidade         string  `gorm:"size:255;not null" json:"cidade"`
	Geometria      *string `gorm:"type:text" json:"geometria"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LeadID         uint    `gorm:"not null;index" json:"leadId"`
	DistribuidorID *uint   `gorm:"index" json:"distribuidorId"`

	Lead         *Lead         `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Distribuidor *Distribuidor `gorm:"foreignKey:DistribuidorID" json:"distribuidor,omitempty"`
}

func (PropriedadeRural) TableName() string { return "propriedades_rurais" }
