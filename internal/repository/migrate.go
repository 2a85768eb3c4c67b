package repository

import "gorm.io/gorm"

// Migrate creates the schema and the index that makes double booking a
// storage-level impossibility: at most one live booking may hold a
// provider/date/time slot, while cancelled and completed rows free it.
// The partial index syntax is accepted by both postgres and sqlite, and
// rows with a NULL provider never collide in either engine.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&categoryModel{},
		&serviceModel{},
		&bookingModel{},
		&reviewModel{},
		&notificationModel{},
		&profileModel{},
	); err != nil {
		return err
	}

	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_booking
		ON bookings (service_provider_id, scheduled_date, scheduled_time)
		WHERE status IN ('pending', 'confirmed', 'in-progress')
	`).Error
}
