package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gpaccess/backend/internal/data/db"
	"github.com/gpaccess/backend/internal/data/repos"
	"github.com/gpaccess/backend/internal/domain"
	errs "github.com/gpaccess/backend/internal/pkg/errors"
	"github.com/gpaccess/backend/internal/pkg/logger"
)

type AddressInput struct {
	Line1    string `json:"line_1"`
	Line2    string `json:"line_2"`
	Town     string `json:"town"`
	County   string `json:"county"`
	Postcode string `json:"postcode"`
	DTSEmail string `json:"dts_email"`
}

type AddressService interface {
	UpsertForPractice(ctx context.Context, practiceID uuid.UUID, in AddressInput) (*domain.Address, UpsertOutcome, error)
	GetByPracticeID(ctx context.Context, practiceID uuid.UUID) (*domain.Address, error)
	GetByPracticeName(ctx context.Context, practiceName string) (*domain.Address, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Address, error)
}

type addressService struct {
	db           *gorm.DB
	log          *logger.Logger
	addressRepo  repos.AddressRepo
	practiceRepo repos.PracticeRepo
}

func NewAddressService(db *gorm.DB, log *logger.Logger, addressRepo repos.AddressRepo, practiceRepo repos.PracticeRepo) AddressService {
	serviceLog := log.With("service", "AddressService")
	return &addressService{
		db:           db,
		log:          serviceLog,
		addressRepo:  addressRepo,
		practiceRepo: practiceRepo,
	}
}

// UpsertForPractice runs the same optimistic-insert engine as the practice
// upsert, keyed on the unique practice_id column instead of a name.
func (s *addressService) UpsertForPractice(ctx context.Context, practiceID uuid.UUID, in AddressInput) (*domain.Address, UpsertOutcome, error) {
	row := &domain.Address{
		ID:         uuid.New(),
		PracticeID: practiceID,
		Line1:      in.Line1,
		Line2:      in.Line2,
		Town:       in.Town,
		County:     in.County,
		Postcode:   in.Postcode,
		DTSEmail:   in.DTSEmail,
	}

	insertErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		practices, err := s.practiceRepo.GetByIDs(ctx, tx, []uuid.UUID{practiceID})
		if err != nil {
			return err
		}
		if len(practices) == 0 {
			return fmt.Errorf("%w: no practice found with ID %s", errs.ErrNotFound, practiceID)
		}
		_, err = s.addressRepo.Create(ctx, tx, []*domain.Address{row})
		return err
	})
	if insertErr == nil {
		return row, OutcomeInserted, nil
	}
	if !db.IsUniqueViolation(insertErr) {
		return nil, OutcomeInserted, insertErr
	}

	var updated *domain.Address
	updateErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.addressRepo.GetByPracticeIDs(ctx, tx, []uuid.UUID{practiceID})
		if err != nil {
			return fmt.Errorf("error fetching address for upsert fallback: %w", err)
		}
		if len(existing) == 0 {
			return fmt.Errorf("%w: address for practice %s missing after duplicate insert failure", errs.ErrConsistency, practiceID)
		}
		current := existing[0]

		if err := s.addressRepo.UpdateFields(ctx, tx, current.ID, map[string]interface{}{
			"line_1":    in.Line1,
			"line_2":    in.Line2,
			"town":      in.Town,
			"county":    in.County,
			"postcode":  in.Postcode,
			"dts_email": in.DTSEmail,
		}); err != nil {
			return err
		}

		refreshed, err := s.addressRepo.GetByIDs(ctx, tx, []uuid.UUID{current.ID})
		if err != nil {
			return err
		}
		if len(refreshed) == 0 {
			return fmt.Errorf("%w: address for practice %s missing after update", errs.ErrConsistency, practiceID)
		}
		updated = refreshed[0]
		return nil
	})
	if updateErr != nil {
		s.log.Warn("Address upsert fallback failed", "practice_id", practiceID, "error", updateErr)
		return nil, OutcomeUpdated, updateErr
	}
	return updated, OutcomeUpdated, nil
}

func (s *addressService) GetByPracticeID(ctx context.Context, practiceID uuid.UUID) (*domain.Address, error) {
	found, err := s.addressRepo.GetByPracticeIDs(ctx, nil, []uuid.UUID{practiceID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: no address found for practice ID %s", errs.ErrNotFound, practiceID)
	}
	return found[0], nil
}

func (s *addressService) GetByPracticeName(ctx context.Context, practiceName string) (*domain.Address, error) {
	practices, err := s.practiceRepo.GetByNames(ctx, nil, []string{practiceName})
	if err != nil {
		return nil, err
	}
	if len(practices) == 0 {
		return nil, fmt.Errorf("%w: no practice found with name %q", errs.ErrNotFound, practiceName)
	}
	return s.GetByPracticeID(ctx, practices[0].ID)
}

func (s *addressService) List(ctx context.Context, offset, limit int) ([]*domain.Address, error) {
	return s.addressRepo.List(ctx, nil, offset, limit)
}
