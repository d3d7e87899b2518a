package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gpaccess/backend/internal/domain"
	"github.com/gpaccess/backend/internal/pkg/logger"
)

// AssociationRepo owns the join tables. Every Replace* method clears the
// owning side's entire set before inserting the new members, inside the
// caller's transaction. There is no additive write path on purpose.
type AssociationRepo interface {
	ReplacePracticeForEmployee(ctx context.Context, tx *gorm.DB, employeeID, practiceID uuid.UUID) error
	ClearPracticesForEmployee(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) error
	PracticesForEmployee(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*domain.Practice, error)
	EmployeesForPractice(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID) ([]*domain.Employee, error)

	ReplaceMainPartner(ctx context.Context, tx *gorm.DB, practiceID, employeeID uuid.UUID) error
	MainPartnersForPractice(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID) ([]*domain.Employee, error)

	ReplaceAccessSystems(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID, systemIDs []uuid.UUID) error
	AccessSystemsForPractice(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID) ([]*domain.AccessSystem, error)

	ClearEmployeeLinks(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) error
	ClearPracticeLinks(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID) error
}

type associationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssociationRepo(db *gorm.DB, baseLog *logger.Logger) AssociationRepo {
	repoLog := baseLog.With("repo", "AssociationRepo")
	return &associationRepo{db: db, log: repoLog}
}

func (r *associationRepo) ReplacePracticeForEmployee(ctx context.Context, tx *gorm.DB, employeeID, practiceID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&domain.EmployeePractice{}).Error; err != nil {
		return err
	}
	link := &domain.EmployeePractice{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		PracticeID: practiceID,
	}
	return transaction.WithContext(ctx).Create(link).Error
}

func (r *associationRepo) ClearPracticesForEmployee(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&domain.EmployeePractice{}).Error
}

func (r *associationRepo) PracticesForEmployee(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*domain.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Practice
	if err := transaction.WithContext(ctx).
		Joins("JOIN employee_practice ON employee_practice.practice_id = practice.id").
		Where("employee_practice.employee_id = ?", employeeID).
		Order("practice.created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *associationRepo) EmployeesForPractice(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID) ([]*domain.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Employee
	if err := transaction.WithContext(ctx).
		Joins("JOIN employee_practice ON employee_practice.employee_id = employee.id").
		Where("employee_practice.practice_id = ?", practiceID).
		Order("employee.created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *associationRepo) ReplaceMainPartner(ctx context.Context, tx *gorm.DB, practiceID, employeeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("practice_id = ?", practiceID).
		Delete(&domain.PracticeMainPartner{}).Error; err != nil {
		return err
	}
	link := &domain.PracticeMainPartner{
		ID:         uuid.New(),
		PracticeID: practiceID,
		EmployeeID: employeeID,
	}
	return transaction.WithContext(ctx).Create(link).Error
}

func (r *associationRepo) MainPartnersForPractice(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID) ([]*domain.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Employee
	if err := transaction.WithContext(ctx).
		Joins("JOIN practice_main_partner ON practice_main_partner.employee_id = employee.id").
		Where("practice_main_partner.practice_id = ?", practiceID).
		Order("employee.created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *associationRepo) ReplaceAccessSystems(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID, systemIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("practice_id = ?", practiceID).
		Delete(&domain.PracticeAccessSystem{}).Error; err != nil {
		return err
	}
	if len(systemIDs) == 0 {
		return nil
	}
	links := make([]*domain.PracticeAccessSystem, 0, len(systemIDs))
	for _, systemID := range systemIDs {
		links = append(links, &domain.PracticeAccessSystem{
			ID:             uuid.New(),
			PracticeID:     practiceID,
			AccessSystemID: systemID,
		})
	}
	return transaction.WithContext(ctx).Create(&links).Error
}

func (r *associationRepo) AccessSystemsForPractice(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID) ([]*domain.AccessSystem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.AccessSystem
	if err := transaction.WithContext(ctx).
		Joins("JOIN practice_access_system ON practice_access_system.access_system_id = access_system.id").
		Where("practice_access_system.practice_id = ?", practiceID).
		Order("access_system.created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *associationRepo) ClearEmployeeLinks(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&domain.EmployeePractice{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&domain.PracticeMainPartner{}).Error
}

func (r *associationRepo) ClearPracticeLinks(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("practice_id = ?", practiceID).
		Delete(&domain.EmployeePractice{}).Error; err != nil {
		return err
	}
	if err := transaction.WithContext(ctx).
		Where("practice_id = ?", practiceID).
		Delete(&domain.PracticeMainPartner{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("practice_id = ?", practiceID).
		Delete(&domain.PracticeAccessSystem{}).Error
}
