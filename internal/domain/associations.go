package domain

import (
	"time"

	"github.com/google/uuid"
)

// The three join tables model semantically single-valued relationships
// (one current practice per employee, one main partner per practice) as
// many-to-many for forward compatibility. Writes to them always replace
// the whole set for the owning side, never append.

type EmployeePractice struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_employee_practice,unique,priority:1" json:"employee_id"`
	Employee   *Employee `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	PracticeID uuid.UUID `gorm:"type:uuid;not null;index:idx_employee_practice,unique,priority:2" json:"practice_id"`
	Practice   *Practice `gorm:"constraint:OnDelete:CASCADE;foreignKey:PracticeID;references:ID" json:"practice,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (EmployeePractice) TableName() string { return "employee_practice" }

type PracticeMainPartner struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PracticeID uuid.UUID `gorm:"type:uuid;not null;index:idx_practice_main_partner,unique,priority:1" json:"practice_id"`
	Practice   *Practice `gorm:"constraint:OnDelete:CASCADE;foreignKey:PracticeID;references:ID" json:"practice,omitempty"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_practice_main_partner,unique,priority:2" json:"employee_id"`
	Employee   *Employee `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (PracticeMainPartner) TableName() string { return "practice_main_partner" }

type PracticeAccessSystem struct {
	ID             uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PracticeID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_practice_access_system,unique,priority:1" json:"practice_id"`
	Practice       *Practice     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PracticeID;references:ID" json:"practice,omitempty"`
	AccessSystemID uuid.UUID     `gorm:"type:uuid;not null;index:idx_practice_access_system,unique,priority:2" json:"access_system_id"`
	AccessSystem   *AccessSystem `gorm:"constraint:OnDelete:CASCADE;foreignKey:AccessSystemID;references:ID" json:"access_system,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (PracticeAccessSystem) TableName() string { return "practice_access_system" }
