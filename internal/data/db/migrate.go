package db

import (
	"gorm.io/gorm"

	"github.com/gpaccess/backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Core entities
		// =========================
		&domain.Practice{},
		&domain.Address{},
		&domain.JobTitle{},
		&domain.Employee{},
		&domain.AccessSystem{},
		&domain.IPRange{},

		// =========================
		// Join tables
		// =========================
		&domain.EmployeePractice{},
		&domain.PracticeMainPartner{},
		&domain.PracticeAccessSystem{},
	)
}
