package repository

import "gorm.io/gorm"

// Migrate brings the schema up to date for every table the
// repositories use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&documentModel{},
		&waitlistModel{},
		&chatMessageModel{},
	)
}
