package domain

import (
	"time"

	"github.com/google/uuid"
)

type AccessSystem struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name    string    `gorm:"not null;column:name" json:"name"`
	Variant string    `gorm:"column:variant" json:"variant"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (AccessSystem) TableName() string { return "access_system" }

type IPRange struct {
	ID             uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CIDR           string        `gorm:"not null;column:cidr" json:"cidr"`
	AccessSystemID uuid.UUID     `gorm:"type:uuid;not null;index" json:"access_system_id"`
	AccessSystem   *AccessSystem `gorm:"constraint:OnDelete:CASCADE;foreignKey:AccessSystemID;references:ID" json:"access_system,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (IPRange) TableName() string { return "ip_range" }
