package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrAdminExists   = errors.New("only one admin account is allowed")
	ErrAdminNotFound = errors.New("admin not found")
)

type Admin struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
}

type AdminDAO struct {
	db *gorm.DB
}

func NewAdminDAO(db *gorm.DB) *AdminDAO {
	return &AdminDAO{
		db: db,
	}
}

// Insert creates the admin only when the table is empty. The table lock
// serializes concurrent bootstraps.
func (d *AdminDAO) Insert(ctx context.Context, admin Admin) (Admin, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("LOCK TABLE admins IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&Admin{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAdminExists
		}

		return tx.Create(&admin).Error
	})
	if err != nil {
		return Admin{}, err
	}

	return admin, nil
}

func (d *AdminDAO) FindFirst(ctx context.Context) (Admin, error) {
	var admin Admin

	result := d.db.WithContext(ctx).Order("id").First(&admin)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) FindByUsername(ctx context.Context, username string) (Admin, error) {
	var admin Admin

	result := d.db.WithContext(ctx).First(&admin, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) DeleteAll(ctx context.Context) (int64, error) {
	result := d.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Admin{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
