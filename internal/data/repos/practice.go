package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gpaccess/backend/internal/domain"
	"github.com/gpaccess/backend/internal/pkg/logger"
)

type PracticeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, practices []*domain.Practice) ([]*domain.Practice, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, practiceIDs []uuid.UUID) ([]*domain.Practice, error)
	GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*domain.Practice, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*domain.Practice, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	Names(ctx context.Context, tx *gorm.DB) ([]string, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, practiceIDs []uuid.UUID) error
}

type practiceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPracticeRepo(db *gorm.DB, baseLog *logger.Logger) PracticeRepo {
	repoLog := baseLog.With("repo", "PracticeRepo")
	return &practiceRepo{db: db, log: repoLog}
}

func (r *practiceRepo) Create(ctx context.Context, tx *gorm.DB, practices []*domain.Practice) ([]*domain.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(practices) == 0 {
		return []*domain.Practice{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&practices).Error; err != nil {
		return nil, err
	}
	return practices, nil
}

func (r *practiceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, practiceIDs []uuid.UUID) ([]*domain.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Practice
	if len(practiceIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", practiceIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *practiceRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*domain.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Practice
	if len(names) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("name IN ?", names).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *practiceRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*domain.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Practice
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *practiceRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Practice{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *practiceRepo) Names(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var names []string
	if err := transaction.WithContext(ctx).
		Model(&domain.Practice{}).
		Order("created_at ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *practiceRepo) UpdateFields(ctx context.Context, tx *gorm.DB, practiceID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if practiceID == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return transaction.WithContext(ctx).
		Model(&domain.Practice{}).
		Where("id = ?", practiceID).
		Updates(updates).Error
}

func (r *practiceRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, practiceIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(practiceIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", practiceIDs).
		Delete(&domain.Practice{}).Error
}
