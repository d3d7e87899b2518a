package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gpaccess/backend/internal/domain"
	"github.com/gpaccess/backend/internal/pkg/logger"
)

type AddressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, addresses []*domain.Address) ([]*domain.Address, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, addressIDs []uuid.UUID) ([]*domain.Address, error)
	GetByPracticeIDs(ctx context.Context, tx *gorm.DB, practiceIDs []uuid.UUID) ([]*domain.Address, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*domain.Address, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, addressID uuid.UUID, updates map[string]interface{}) error
	DeleteByPracticeIDs(ctx context.Context, tx *gorm.DB, practiceIDs []uuid.UUID) error
}

type addressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddressRepo(db *gorm.DB, baseLog *logger.Logger) AddressRepo {
	repoLog := baseLog.With("repo", "AddressRepo")
	return &addressRepo{db: db, log: repoLog}
}

func (r *addressRepo) Create(ctx context.Context, tx *gorm.DB, addresses []*domain.Address) ([]*domain.Address, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(addresses) == 0 {
		return []*domain.Address{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepo) GetByIDs(ctx context.Context, tx *gorm.DB, addressIDs []uuid.UUID) ([]*domain.Address, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Address
	if len(addressIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", addressIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *addressRepo) GetByPracticeIDs(ctx context.Context, tx *gorm.DB, practiceIDs []uuid.UUID) ([]*domain.Address, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Address
	if len(practiceIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("practice_id IN ?", practiceIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *addressRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*domain.Address, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Address
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *addressRepo) UpdateFields(ctx context.Context, tx *gorm.DB, addressID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if addressID == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return transaction.WithContext(ctx).
		Model(&domain.Address{}).
		Where("id = ?", addressID).
		Updates(updates).Error
}

func (r *addressRepo) DeleteByPracticeIDs(ctx context.Context, tx *gorm.DB, practiceIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(practiceIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("practice_id IN ?", practiceIDs).
		Delete(&domain.Address{}).Error
}
