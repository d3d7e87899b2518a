package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gpaccess/backend/internal/domain"
	"github.com/gpaccess/backend/internal/pkg/logger"
)

type JobTitleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, titles []*domain.JobTitle) ([]*domain.JobTitle, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, titleIDs []uuid.UUID) ([]*domain.JobTitle, error)
	GetByTitles(ctx context.Context, tx *gorm.DB, titles []string) ([]*domain.JobTitle, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.JobTitle, error)
}

type jobTitleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobTitleRepo(db *gorm.DB, baseLog *logger.Logger) JobTitleRepo {
	repoLog := baseLog.With("repo", "JobTitleRepo")
	return &jobTitleRepo{db: db, log: repoLog}
}

func (r *jobTitleRepo) Create(ctx context.Context, tx *gorm.DB, titles []*domain.JobTitle) ([]*domain.JobTitle, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(titles) == 0 {
		return []*domain.JobTitle{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&titles).Error; err != nil {
		return nil, err
	}
	return titles, nil
}

func (r *jobTitleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, titleIDs []uuid.UUID) ([]*domain.JobTitle, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.JobTitle
	if len(titleIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", titleIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *jobTitleRepo) GetByTitles(ctx context.Context, tx *gorm.DB, titles []string) ([]*domain.JobTitle, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.JobTitle
	if len(titles) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("title IN ?", titles).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *jobTitleRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.JobTitle, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.JobTitle
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
