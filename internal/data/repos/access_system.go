package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gpaccess/backend/internal/domain"
	"github.com/gpaccess/backend/internal/pkg/logger"
)

type AccessSystemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, systems []*domain.AccessSystem) ([]*domain.AccessSystem, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*domain.AccessSystem, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*domain.AccessSystem, error)
}

type accessSystemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccessSystemRepo(db *gorm.DB, baseLog *logger.Logger) AccessSystemRepo {
	repoLog := baseLog.With("repo", "AccessSystemRepo")
	return &accessSystemRepo{db: db, log: repoLog}
}

func (r *accessSystemRepo) Create(ctx context.Context, tx *gorm.DB, systems []*domain.AccessSystem) ([]*domain.AccessSystem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(systems) == 0 {
		return []*domain.AccessSystem{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&systems).Error; err != nil {
		return nil, err
	}
	return systems, nil
}

func (r *accessSystemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*domain.AccessSystem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.AccessSystem
	if len(systemIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", systemIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *accessSystemRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*domain.AccessSystem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.AccessSystem
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
