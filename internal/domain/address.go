package domain

import (
	"time"

	"github.com/google/uuid"
)

// Address is 1:1 with Practice; the unique index on practice_id is what
// enforces one address per practice.
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PracticeID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"practice_id"`
	Practice   *Practice `gorm:"constraint:OnDelete:CASCADE;foreignKey:PracticeID;references:ID" json:"practice,omitempty"`

	Line1    string `gorm:"column:line_1" json:"line_1"`
	Line2    string `gorm:"column:line_2" json:"line_2"`
	Town     string `gorm:"column:town" json:"town"`
	County   string `gorm:"column:county" json:"county"`
	Postcode string `gorm:"column:postcode" json:"postcode"`
	DTSEmail string `gorm:"column:dts_email" json:"dts_email"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Address) TableName() string { return "practice_address" }
