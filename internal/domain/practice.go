package domain

import (
	"time"

	"github.com/google/uuid"
)

type Practice struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name                string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	PhoneNum            string    `gorm:"column:phone_num" json:"phone_num"`
	NationalCode        string    `gorm:"column:national_code" json:"national_code"`
	EmisCDBPracticeCode string    `gorm:"column:emis_cdb_practice_code" json:"emis_cdb_practice_code"`
	GoLiveDate          string    `gorm:"column:go_live_date" json:"go_live_date"`
	Closed              bool      `gorm:"not null;default:false" json:"closed"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Practice) TableName() string { return "practice" }
