package repository

import "gorm.io/gorm"

// Migrate creates or updates every table the repositories own.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&studioModel{},
		&packageModel{},
		&addonModel{},
		&availabilityModel{},
		&slotModel{},
		&bookingModel{},
		&reviewModel{},
	)
}
