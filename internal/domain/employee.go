package domain

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FirstName       string     `gorm:"not null;column:first_name" json:"first_name"`
	LastName        string     `gorm:"column:last_name" json:"last_name"`
	Email           string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	// Nullable so that employees without a registration number do not
	// collide on the unique index.
	ProfessionalNum *string    `gorm:"uniqueIndex;column:professional_num" json:"professional_num,omitempty"`
	JobTitleID      *uuid.UUID `gorm:"type:uuid;index" json:"job_title_id,omitempty"`
	JobTitle        *JobTitle  `gorm:"constraint:OnDelete:SET NULL;foreignKey:JobTitleID;references:ID" json:"job_title,omitempty"`
	Active          bool       `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Employee) TableName() string { return "employee" }

type JobTitle struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title string    `gorm:"uniqueIndex;not null;column:title" json:"title"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (JobTitle) TableName() string { return "job_title" }
