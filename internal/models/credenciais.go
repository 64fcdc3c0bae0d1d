package models

type Credenciais struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Username     string   `gorm:"size:255;not null;uniqueIndex" json:"username"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	UsuarioID    uint     `gorm:"not null;uniqueIndex" json:"usuarioId"`
	Usuario      *Usuario `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
}

func (Credenciais) TableName() string { return "credenciais" }
