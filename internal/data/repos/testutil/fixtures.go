package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gpaccess/backend/internal/domain"
)

func SeedPractice(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.Practice {
	tb.Helper()
	p := &domain.Practice{
		ID:           uuid.New(),
		Name:         name,
		PhoneNum:     "0123456789",
		NationalCode: "A1",
		GoLiveDate:   "2024-01-01",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed practice: %v", err)
	}
	return p
}

func SeedJobTitle(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *domain.JobTitle {
	tb.Helper()
	jt := &domain.JobTitle{
		ID:    uuid.New(),
		Title: title,
	}
	if err := tx.WithContext(ctx).Create(jt).Error; err != nil {
		tb.Fatalf("seed job title: %v", err)
	}
	return jt
}

func SeedEmployee(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, jobTitleID *uuid.UUID) *domain.Employee {
	tb.Helper()
	num := "GMC-" + uuid.NewString()
	e := &domain.Employee{
		ID:              uuid.New(),
		FirstName:       "A",
		LastName:        "B",
		Email:           email,
		ProfessionalNum: &num,
		JobTitleID:      jobTitleID,
		Active:          true,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed employee: %v", err)
	}
	return e
}

func SeedAccessSystem(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.AccessSystem {
	tb.Helper()
	as := &domain.AccessSystem{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(as).Error; err != nil {
		tb.Fatalf("seed access system: %v", err)
	}
	return as
}

func SeedAddress(tb testing.TB, ctx context.Context, tx *gorm.DB, practiceID uuid.UUID) *domain.Address {
	tb.Helper()
	a := &domain.Address{
		ID:         uuid.New(),
		PracticeID: practiceID,
		Line1:      "1 High Street",
		Town:       "Leeds",
		Postcode:   "LS1 1AA",
		DTSEmail:   "practice@nhs.example",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed address: %v", err)
	}
	return a
}
