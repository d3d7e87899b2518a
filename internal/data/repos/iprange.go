package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gpaccess/backend/internal/domain"
	"github.com/gpaccess/backend/internal/pkg/logger"
)

type IPRangeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ranges []*domain.IPRange) ([]*domain.IPRange, error)
	GetByAccessSystemIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*domain.IPRange, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*domain.IPRange, error)
}

type ipRangeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIPRangeRepo(db *gorm.DB, baseLog *logger.Logger) IPRangeRepo {
	repoLog := baseLog.With("repo", "IPRangeRepo")
	return &ipRangeRepo{db: db, log: repoLog}
}

func (r *ipRangeRepo) Create(ctx context.Context, tx *gorm.DB, ranges []*domain.IPRange) ([]*domain.IPRange, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ranges) == 0 {
		return []*domain.IPRange{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&ranges).Error; err != nil {
		return nil, err
	}
	return ranges, nil
}

func (r *ipRangeRepo) GetByAccessSystemIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*domain.IPRange, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.IPRange
	if len(systemIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("access_system_id IN ?", systemIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ipRangeRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*domain.IPRange, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.IPRange
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
