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

// UpsertOutcome tags which branch of an upsert ran.
type UpsertOutcome int

const (
	OutcomeInserted UpsertOutcome = iota
	OutcomeUpdated
)

func (o UpsertOutcome) String() string {
	if o == OutcomeUpdated {
		return "updated"
	}
	return "inserted"
}

type PracticeInput struct {
	Name                string `json:"name" binding:"required"`
	PhoneNum            string `json:"phone_num"`
	NationalCode        string `json:"national_code"`
	EmisCDBPracticeCode string `json:"emis_cdb_practice_code"`
	GoLiveDate          string `json:"go_live_date"`
	Closed              bool   `json:"closed"`
}

type PracticeService interface {
	Upsert(ctx context.Context, in PracticeInput) (*domain.Practice, UpsertOutcome, error)
	GetByID(ctx context.Context, practiceID uuid.UUID) (*domain.Practice, error)
	GetByName(ctx context.Context, name string) (*domain.Practice, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Practice, error)
	Count(ctx context.Context) (int64, error)
	Names(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, practiceID uuid.UUID) (*domain.Practice, error)
	AssignMainPartner(ctx context.Context, practiceID, employeeID uuid.UUID) (*domain.Practice, error)
	AssignAccessSystems(ctx context.Context, practiceID uuid.UUID, systemIDs []uuid.UUID) (*domain.Practice, error)
	AccessSystemsForPractice(ctx context.Context, practiceID uuid.UUID) ([]*domain.AccessSystem, error)
}

type practiceService struct {
	db           *gorm.DB
	log          *logger.Logger
	practiceRepo repos.PracticeRepo
	employeeRepo repos.EmployeeRepo
	systemRepo   repos.AccessSystemRepo
	addressRepo  repos.AddressRepo
	assocRepo    repos.AssociationRepo
}

func NewPracticeService(db *gorm.DB, log *logger.Logger, practiceRepo repos.PracticeRepo, employeeRepo repos.EmployeeRepo, systemRepo repos.AccessSystemRepo, addressRepo repos.AddressRepo, assocRepo repos.AssociationRepo) PracticeService {
	serviceLog := log.With("service", "PracticeService")
	return &practiceService{
		db:           db,
		log:          serviceLog,
		practiceRepo: practiceRepo,
		employeeRepo: employeeRepo,
		systemRepo:   systemRepo,
		addressRepo:  addressRepo,
		assocRepo:    assocRepo,
	}
}

// Upsert creates the practice, or updates the existing row when the name is
// already taken. The insert is attempted first inside its own transaction;
// a uniqueness violation on the name rolls that transaction back and a
// second transaction looks the row up by name and overwrites its mutable
// fields. Insert-first means two concurrent upserts for a new name cannot
// both pass a read-before-write check: one inserts, the other falls back.
func (s *practiceService) Upsert(ctx context.Context, in PracticeInput) (*domain.Practice, UpsertOutcome, error) {
	if in.Name == "" {
		return nil, OutcomeInserted, fmt.Errorf("%w: practice name is required", errs.ErrInvalidArgument)
	}

	row := &domain.Practice{
		ID:                  uuid.New(),
		Name:                in.Name,
		PhoneNum:            in.PhoneNum,
		NationalCode:        in.NationalCode,
		EmisCDBPracticeCode: in.EmisCDBPracticeCode,
		GoLiveDate:          in.GoLiveDate,
		Closed:              in.Closed,
	}

	insertErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.practiceRepo.Create(ctx, tx, []*domain.Practice{row})
		return err
	})
	if insertErr == nil {
		return row, OutcomeInserted, nil
	}
	if !db.IsUniqueViolation(insertErr) {
		return nil, OutcomeInserted, insertErr
	}

	var updated *domain.Practice
	updateErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.practiceRepo.GetByNames(ctx, tx, []string{in.Name})
		if err != nil {
			return fmt.Errorf("error fetching practice for upsert fallback: %w", err)
		}
		if len(existing) == 0 {
			// The insert just failed on this exact name; an empty lookup
			// means the store lost the row underneath us.
			return fmt.Errorf("%w: practice %q missing after duplicate-name insert failure", errs.ErrConsistency, in.Name)
		}
		current := existing[0]

		if err := s.practiceRepo.UpdateFields(ctx, tx, current.ID, map[string]interface{}{
			"phone_num":              in.PhoneNum,
			"national_code":          in.NationalCode,
			"emis_cdb_practice_code": in.EmisCDBPracticeCode,
			"go_live_date":           in.GoLiveDate,
			"closed":                 in.Closed,
		}); err != nil {
			return err
		}

		refreshed, err := s.practiceRepo.GetByIDs(ctx, tx, []uuid.UUID{current.ID})
		if err != nil {
			return err
		}
		if len(refreshed) == 0 {
			return fmt.Errorf("%w: practice %q missing after update", errs.ErrConsistency, in.Name)
		}
		updated = refreshed[0]
		return nil
	})
	if updateErr != nil {
		s.log.Warn("Practice upsert fallback failed", "name", in.Name, "error", updateErr)
		return nil, OutcomeUpdated, updateErr
	}
	return updated, OutcomeUpdated, nil
}

func (s *practiceService) GetByID(ctx context.Context, practiceID uuid.UUID) (*domain.Practice, error) {
	found, err := s.practiceRepo.GetByIDs(ctx, nil, []uuid.UUID{practiceID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: no practice found with ID %s", errs.ErrNotFound, practiceID)
	}
	return found[0], nil
}

func (s *practiceService) GetByName(ctx context.Context, name string) (*domain.Practice, error) {
	found, err := s.practiceRepo.GetByNames(ctx, nil, []string{name})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: no practice found with name %q", errs.ErrNotFound, name)
	}
	return found[0], nil
}

func (s *practiceService) List(ctx context.Context, offset, limit int) ([]*domain.Practice, error) {
	return s.practiceRepo.List(ctx, nil, offset, limit)
}

func (s *practiceService) Count(ctx context.Context) (int64, error) {
	return s.practiceRepo.Count(ctx, nil)
}

func (s *practiceService) Names(ctx context.Context) ([]string, error) {
	return s.practiceRepo.Names(ctx, nil)
}

// Delete removes the practice, its address and every association row that
// references it, in one transaction. Association cleanup on delete is the
// single policy for all entities.
func (s *practiceService) Delete(ctx context.Context, practiceID uuid.UUID) (*domain.Practice, error) {
	var deleted *domain.Practice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.practiceRepo.GetByIDs(ctx, tx, []uuid.UUID{practiceID})
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return fmt.Errorf("%w: no practice found with ID %s", errs.ErrNotFound, practiceID)
		}
		deleted = found[0]

		if err := s.assocRepo.ClearPracticeLinks(ctx, tx, practiceID); err != nil {
			return err
		}
		if err := s.addressRepo.DeleteByPracticeIDs(ctx, tx, []uuid.UUID{practiceID}); err != nil {
			return err
		}
		return s.practiceRepo.DeleteByIDs(ctx, tx, []uuid.UUID{practiceID})
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *practiceService) AssignMainPartner(ctx context.Context, practiceID, employeeID uuid.UUID) (*domain.Practice, error) {
	var practice *domain.Practice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		practices, err := s.practiceRepo.GetByIDs(ctx, tx, []uuid.UUID{practiceID})
		if err != nil {
			return err
		}
		if len(practices) == 0 {
			return fmt.Errorf("%w: no practice found with ID %s", errs.ErrNotFound, practiceID)
		}
		practice = practices[0]

		employees, err := s.employeeRepo.GetByIDs(ctx, tx, []uuid.UUID{employeeID})
		if err != nil {
			return err
		}
		if len(employees) == 0 {
			return fmt.Errorf("%w: no employee found with ID %s", errs.ErrNotFound, employeeID)
		}

		return s.assocRepo.ReplaceMainPartner(ctx, tx, practiceID, employeeID)
	})
	if err != nil {
		return nil, err
	}
	return practice, nil
}

func (s *practiceService) AssignAccessSystems(ctx context.Context, practiceID uuid.UUID, systemIDs []uuid.UUID) (*domain.Practice, error) {
	// Deduplicate so a repeated id neither fails the existence count nor
	// trips the composite unique index on the join table.
	seen := make(map[uuid.UUID]struct{}, len(systemIDs))
	unique := make([]uuid.UUID, 0, len(systemIDs))
	for _, systemID := range systemIDs {
		if _, ok := seen[systemID]; ok {
			continue
		}
		seen[systemID] = struct{}{}
		unique = append(unique, systemID)
	}
	systemIDs = unique

	var practice *domain.Practice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		practices, err := s.practiceRepo.GetByIDs(ctx, tx, []uuid.UUID{practiceID})
		if err != nil {
			return err
		}
		if len(practices) == 0 {
			return fmt.Errorf("%w: no practice found with ID %s", errs.ErrNotFound, practiceID)
		}
		practice = practices[0]

		systems, err := s.systemRepo.GetByIDs(ctx, tx, systemIDs)
		if err != nil {
			return err
		}
		if len(systems) != len(systemIDs) {
			return fmt.Errorf("%w: one or more access systems do not exist", errs.ErrNotFound)
		}

		return s.assocRepo.ReplaceAccessSystems(ctx, tx, practiceID, systemIDs)
	})
	if err != nil {
		return nil, err
	}
	return practice, nil
}

func (s *practiceService) AccessSystemsForPractice(ctx context.Context, practiceID uuid.UUID) ([]*domain.AccessSystem, error) {
	var systems []*domain.AccessSystem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		practices, err := s.practiceRepo.GetByIDs(ctx, tx, []uuid.UUID{practiceID})
		if err != nil {
			return err
		}
		if len(practices) == 0 {
			return fmt.Errorf("%w: no practice found with ID %s", errs.ErrNotFound, practiceID)
		}
		systems, err = s.assocRepo.AccessSystemsForPractice(ctx, tx, practiceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if systems == nil {
		systems = []*domain.AccessSystem{}
	}
	return systems, nil
}
