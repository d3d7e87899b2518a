package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gpaccess/backend/internal/domain"
	"github.com/gpaccess/backend/internal/pkg/logger"
)

type EmployeeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, employees []*domain.Employee) ([]*domain.Employee, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, employeeIDs []uuid.UUID) ([]*domain.Employee, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*domain.Employee, error)
	GetByProfessionalNums(ctx context.Context, tx *gorm.DB, professionalNums []string) ([]*domain.Employee, error)
	FirstByFirstName(ctx context.Context, tx *gorm.DB, firstName string) (*domain.Employee, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*domain.Employee, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	Names(ctx context.Context, tx *gorm.DB) ([]string, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, employeeIDs []uuid.UUID) error
}

type employeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	repoLog := baseLog.With("repo", "EmployeeRepo")
	return &employeeRepo{db: db, log: repoLog}
}

func (r *employeeRepo) Create(ctx context.Context, tx *gorm.DB, employees []*domain.Employee) ([]*domain.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(employees) == 0 {
		return []*domain.Employee{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, employeeIDs []uuid.UUID) ([]*domain.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Employee
	if len(employeeIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", employeeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *employeeRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*domain.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Employee
	if len(emails) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("email IN ?", emails).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *employeeRepo) GetByProfessionalNums(ctx context.Context, tx *gorm.DB, professionalNums []string) ([]*domain.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Employee
	if len(professionalNums) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("professional_num IN ?", professionalNums).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FirstByFirstName returns the first match in storage order. With duplicate
// first names under concurrent writes the winner is undefined; callers must
// not rely on which row comes back.
func (r *employeeRepo) FirstByFirstName(ctx context.Context, tx *gorm.DB, firstName string) (*domain.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Employee
	if err := transaction.WithContext(ctx).
		Where("first_name = ?", firstName).
		Order("created_at ASC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *employeeRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*domain.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Employee
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *employeeRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Employee{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *employeeRepo) Names(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var names []string
	if err := transaction.WithContext(ctx).
		Model(&domain.Employee{}).
		Order("created_at ASC").
		Pluck("first_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *employeeRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	exists := count > 0
	return exists, nil
}

func (r *employeeRepo) UpdateFields(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if employeeID == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return transaction.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", employeeID).
		Updates(updates).Error
}

func (r *employeeRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, employeeIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(employeeIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", employeeIDs).
		Delete(&domain.Employee{}).Error
}
