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

type EmployeeInput struct {
	FirstName       string     `json:"first_name" binding:"required"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email" binding:"required"`
	ProfessionalNum string     `json:"professional_num"`
	JobTitleID      *uuid.UUID `json:"job_title_id,omitempty"`
	Active          *bool      `json:"active,omitempty"`
}

type EmployeeService interface {
	Create(ctx context.Context, in EmployeeInput) (*domain.Employee, error)
	GetByID(ctx context.Context, employeeID uuid.UUID) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	GetByFirstName(ctx context.Context, firstName string) (*domain.Employee, error)
	GetByProfessionalNum(ctx context.Context, professionalNum string) (*domain.Employee, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Employee, error)
	Count(ctx context.Context) (int64, error)
	Names(ctx context.Context) ([]string, error)
	Update(ctx context.Context, employeeID uuid.UUID, in EmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, employeeID uuid.UUID) (*domain.Employee, error)
	AssignToPractice(ctx context.Context, employeeID, practiceID uuid.UUID) (*domain.Employee, error)
	UnassignFromAllPractices(ctx context.Context, employeeID uuid.UUID) (*domain.Employee, error)
	ChangeJobTitle(ctx context.Context, employeeID, jobTitleID uuid.UUID) (*domain.Employee, error)
	PracticesForEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Practice, error)
	ListForPractice(ctx context.Context, practiceID uuid.UUID) ([]*domain.Employee, error)
	MainPartnersForPractice(ctx context.Context, practiceID uuid.UUID) ([]*domain.Employee, error)
	ListJobTitles(ctx context.Context) ([]*domain.JobTitle, error)
	CreateJobTitle(ctx context.Context, title string) (*domain.JobTitle, error)
}

type employeeService struct {
	db           *gorm.DB
	log          *logger.Logger
	employeeRepo repos.EmployeeRepo
	practiceRepo repos.PracticeRepo
	jobTitleRepo repos.JobTitleRepo
	assocRepo    repos.AssociationRepo
}

func NewEmployeeService(db *gorm.DB, log *logger.Logger, employeeRepo repos.EmployeeRepo, practiceRepo repos.PracticeRepo, jobTitleRepo repos.JobTitleRepo, assocRepo repos.AssociationRepo) EmployeeService {
	serviceLog := log.With("service", "EmployeeService")
	return &employeeService{
		db:           db,
		log:          serviceLog,
		employeeRepo: employeeRepo,
		practiceRepo: practiceRepo,
		jobTitleRepo: jobTitleRepo,
		assocRepo:    assocRepo,
	}
}

// Create has no upsert semantics: a taken email is a conflict, never an
// update. The pre-check gives callers a readable message; the unique index
// still backstops the race where two creates pass the check together.
func (s *employeeService) Create(ctx context.Context, in EmployeeInput) (*domain.Employee, error) {
	if in.Email == "" || in.FirstName == "" {
		return nil, fmt.Errorf("%w: employee first_name and email are required", errs.ErrInvalidArgument)
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	row := &domain.Employee{
		ID:              uuid.New(),
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		ProfessionalNum: professionalNumOrNil(in.ProfessionalNum),
		JobTitleID:      in.JobTitleID,
		Active:          active,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.employeeRepo.EmailExists(ctx, tx, in.Email)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: employee with email %s already registered", errs.ErrConflict, in.Email)
		}
		if in.JobTitleID != nil {
			titles, err := s.jobTitleRepo.GetByIDs(ctx, tx, []uuid.UUID{*in.JobTitleID})
			if err != nil {
				return err
			}
			if len(titles) == 0 {
				return fmt.Errorf("%w: no job title found with ID %s", errs.ErrNotFound, *in.JobTitleID)
			}
		}
		_, err = s.employeeRepo.Create(ctx, tx, []*domain.Employee{row})
		return err
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			// Two unique indexes can fire here; report the one that did.
			if exists, checkErr := s.employeeRepo.EmailExists(ctx, nil, in.Email); checkErr == nil && exists {
				return nil, fmt.Errorf("%w: employee with email %s already registered", errs.ErrConflict, in.Email)
			}
			return nil, fmt.Errorf("%w: employee with professional num %s already registered", errs.ErrConflict, in.ProfessionalNum)
		}
		if db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: employee references a missing row", errs.ErrConflict)
		}
		return nil, err
	}
	return row, nil
}

// professionalNumOrNil maps an absent professional number to NULL; unset
// numbers must not collide on the unique index.
func professionalNumOrNil(num string) *string {
	if num == "" {
		return nil
	}
	return &num
}

func (s *employeeService) GetByID(ctx context.Context, employeeID uuid.UUID) (*domain.Employee, error) {
	found, err := s.employeeRepo.GetByIDs(ctx, nil, []uuid.UUID{employeeID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: no employee found with ID %s", errs.ErrNotFound, employeeID)
	}
	return found[0], nil
}

func (s *employeeService) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	found, err := s.employeeRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: no employee found with email %s", errs.ErrNotFound, email)
	}
	return found[0], nil
}

func (s *employeeService) GetByFirstName(ctx context.Context, firstName string) (*domain.Employee, error) {
	found, err := s.employeeRepo.FirstByFirstName(ctx, nil, firstName)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: no employee found with first name %s", errs.ErrNotFound, firstName)
	}
	return found, nil
}

func (s *employeeService) GetByProfessionalNum(ctx context.Context, professionalNum string) (*domain.Employee, error) {
	found, err := s.employeeRepo.GetByProfessionalNums(ctx, nil, []string{professionalNum})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: no employee found with professional num %s", errs.ErrNotFound, professionalNum)
	}
	return found[0], nil
}

func (s *employeeService) List(ctx context.Context, offset, limit int) ([]*domain.Employee, error) {
	return s.employeeRepo.List(ctx, nil, offset, limit)
}

func (s *employeeService) Count(ctx context.Context) (int64, error) {
	return s.employeeRepo.Count(ctx, nil)
}

func (s *employeeService) Names(ctx context.Context) ([]string, error) {
	return s.employeeRepo.Names(ctx, nil)
}

// Update overwrites every mutable field unconditionally: last write wins,
// no optimistic concurrency token.
func (s *employeeService) Update(ctx context.Context, employeeID uuid.UUID, in EmployeeInput) (*domain.Employee, error) {
	var updated *domain.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.employeeRepo.GetByIDs(ctx, tx, []uuid.UUID{employeeID})
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return fmt.Errorf("%w: no employee found with ID %s", errs.ErrNotFound, employeeID)
		}

		active := found[0].Active
		if in.Active != nil {
			active = *in.Active
		}
		if err := s.employeeRepo.UpdateFields(ctx, tx, employeeID, map[string]interface{}{
			"first_name":       in.FirstName,
			"last_name":        in.LastName,
			"email":            in.Email,
			"professional_num": professionalNumOrNil(in.ProfessionalNum),
			"job_title_id":     in.JobTitleID,
			"active":           active,
		}); err != nil {
			return err
		}

		refreshed, err := s.employeeRepo.GetByIDs(ctx, tx, []uuid.UUID{employeeID})
		if err != nil {
			return err
		}
		if len(refreshed) == 0 {
			return fmt.Errorf("%w: employee %s missing after update", errs.ErrConsistency, employeeID)
		}
		updated = refreshed[0]
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) || db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: invalid input: %v", errs.ErrConflict, err)
		}
		return nil, err
	}
	return updated, nil
}

func (s *employeeService) Delete(ctx context.Context, employeeID uuid.UUID) (*domain.Employee, error) {
	var deleted *domain.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.employeeRepo.GetByIDs(ctx, tx, []uuid.UUID{employeeID})
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return fmt.Errorf("%w: no employee found with ID %s", errs.ErrNotFound, employeeID)
		}
		deleted = found[0]

		if err := s.assocRepo.ClearEmployeeLinks(ctx, tx, employeeID); err != nil {
			return err
		}
		return s.employeeRepo.DeleteByIDs(ctx, tx, []uuid.UUID{employeeID})
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// AssignToPractice sets the employee's practice set to exactly the given
// practice, discarding any prior membership.
func (s *employeeService) AssignToPractice(ctx context.Context, employeeID, practiceID uuid.UUID) (*domain.Employee, error) {
	var employee *domain.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employees, err := s.employeeRepo.GetByIDs(ctx, tx, []uuid.UUID{employeeID})
		if err != nil {
			return err
		}
		if len(employees) == 0 {
			return fmt.Errorf("%w: no employee found with ID %s", errs.ErrNotFound, employeeID)
		}
		employee = employees[0]

		practices, err := s.practiceRepo.GetByIDs(ctx, tx, []uuid.UUID{practiceID})
		if err != nil {
			return err
		}
		if len(practices) == 0 {
			return fmt.Errorf("%w: no practice found with ID %s", errs.ErrNotFound, practiceID)
		}

		return s.assocRepo.ReplacePracticeForEmployee(ctx, tx, employeeID, practiceID)
	})
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) UnassignFromAllPractices(ctx context.Context, employeeID uuid.UUID) (*domain.Employee, error) {
	var employee *domain.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employees, err := s.employeeRepo.GetByIDs(ctx, tx, []uuid.UUID{employeeID})
		if err != nil {
			return err
		}
		if len(employees) == 0 {
			return fmt.Errorf("%w: no employee found with ID %s", errs.ErrNotFound, employeeID)
		}
		employee = employees[0]

		return s.assocRepo.ClearPracticesForEmployee(ctx, tx, employeeID)
	})
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) ChangeJobTitle(ctx context.Context, employeeID, jobTitleID uuid.UUID) (*domain.Employee, error) {
	var updated *domain.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employees, err := s.employeeRepo.GetByIDs(ctx, tx, []uuid.UUID{employeeID})
		if err != nil {
			return err
		}
		if len(employees) == 0 {
			return fmt.Errorf("%w: no employee found with ID %s", errs.ErrNotFound, employeeID)
		}

		titles, err := s.jobTitleRepo.GetByIDs(ctx, tx, []uuid.UUID{jobTitleID})
		if err != nil {
			return err
		}
		if len(titles) == 0 {
			return fmt.Errorf("%w: no job title found with ID %s", errs.ErrNotFound, jobTitleID)
		}

		if err := s.employeeRepo.UpdateFields(ctx, tx, employeeID, map[string]interface{}{
			"job_title_id": jobTitleID,
		}); err != nil {
			return err
		}

		refreshed, err := s.employeeRepo.GetByIDs(ctx, tx, []uuid.UUID{employeeID})
		if err != nil {
			return err
		}
		if len(refreshed) == 0 {
			return fmt.Errorf("%w: employee %s missing after job title change", errs.ErrConsistency, employeeID)
		}
		updated = refreshed[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *employeeService) PracticesForEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Practice, error) {
	practices, err := s.assocRepo.PracticesForEmployee(ctx, nil, employeeID)
	if err != nil {
		return nil, err
	}
	if practices == nil {
		practices = []*domain.Practice{}
	}
	return practices, nil
}

// ListForPractice distinguishes a missing practice (ErrNotFound) from a
// practice that simply has nobody assigned (empty slice).
func (s *employeeService) ListForPractice(ctx context.Context, practiceID uuid.UUID) ([]*domain.Employee, error) {
	var employees []*domain.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		practices, err := s.practiceRepo.GetByIDs(ctx, tx, []uuid.UUID{practiceID})
		if err != nil {
			return err
		}
		if len(practices) == 0 {
			return fmt.Errorf("%w: no practice found with ID %s", errs.ErrNotFound, practiceID)
		}
		employees, err = s.assocRepo.EmployeesForPractice(ctx, tx, practiceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []*domain.Employee{}
	}
	return employees, nil
}

func (s *employeeService) MainPartnersForPractice(ctx context.Context, practiceID uuid.UUID) ([]*domain.Employee, error) {
	var partners []*domain.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		practices, err := s.practiceRepo.GetByIDs(ctx, tx, []uuid.UUID{practiceID})
		if err != nil {
			return err
		}
		if len(practices) == 0 {
			return fmt.Errorf("%w: no practice found with ID %s", errs.ErrNotFound, practiceID)
		}
		partners, err = s.assocRepo.MainPartnersForPractice(ctx, tx, practiceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if partners == nil {
		partners = []*domain.Employee{}
	}
	return partners, nil
}

func (s *employeeService) ListJobTitles(ctx context.Context) ([]*domain.JobTitle, error) {
	return s.jobTitleRepo.List(ctx, nil)
}

func (s *employeeService) CreateJobTitle(ctx context.Context, title string) (*domain.JobTitle, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: job title is required", errs.ErrInvalidArgument)
	}
	row := &domain.JobTitle{ID: uuid.New(), Title: title}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.jobTitleRepo.Create(ctx, tx, []*domain.JobTitle{row})
		return err
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: job title %q already exists", errs.ErrConflict, title)
		}
		return nil, err
	}
	return row, nil
}
