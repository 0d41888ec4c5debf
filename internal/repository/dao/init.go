package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Ticket{},
		&Admin{},
		&User{},
	)
}

// DropTables removes every table owned by this service.
func DropTables(db *gorm.DB) error {
	return db.Migrator().DropTable(&Ticket{}, &Admin{}, &User{})
}
