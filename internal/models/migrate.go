package models

import "gorm.io/gorm"

// Migrate roda o AutoMigrate de todas as entidades, na ordem das FKs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Distribuidor{},
		&Usuario{},
		&Credenciais{},
		&Lead{},
		&PropriedadeRural{},
		&Produto{},
	)
}
