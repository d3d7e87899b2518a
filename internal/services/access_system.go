package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gpaccess/backend/internal/data/repos"
	"github.com/gpaccess/backend/internal/domain"
	errs "github.com/gpaccess/backend/internal/pkg/errors"
	"github.com/gpaccess/backend/internal/pkg/logger"
)

type AccessSystemInput struct {
	Name    string `json:"name" binding:"required"`
	Variant string `json:"variant"`
}

type IPRangeInput struct {
	CIDR           string    `json:"cidr" binding:"required"`
	AccessSystemID uuid.UUID `json:"access_system_id" binding:"required"`
}

type AccessSystemService interface {
	Create(ctx context.Context, in AccessSystemInput) (*domain.AccessSystem, error)
	List(ctx context.Context, offset, limit int) ([]*domain.AccessSystem, error)
	AddIPRange(ctx context.Context, in IPRangeInput) (*domain.IPRange, error)
	ListIPRanges(ctx context.Context, offset, limit int) ([]*domain.IPRange, error)
	IPRangesForAccessSystem(ctx context.Context, systemID uuid.UUID) ([]*domain.IPRange, error)
}

type accessSystemService struct {
	db          *gorm.DB
	log         *logger.Logger
	systemRepo  repos.AccessSystemRepo
	ipRangeRepo repos.IPRangeRepo
}

func NewAccessSystemService(db *gorm.DB, log *logger.Logger, systemRepo repos.AccessSystemRepo, ipRangeRepo repos.IPRangeRepo) AccessSystemService {
	serviceLog := log.With("service", "AccessSystemService")
	return &accessSystemService{
		db:          db,
		log:         serviceLog,
		systemRepo:  systemRepo,
		ipRangeRepo: ipRangeRepo,
	}
}

func (s *accessSystemService) Create(ctx context.Context, in AccessSystemInput) (*domain.AccessSystem, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: access system name is required", errs.ErrInvalidArgument)
	}
	row := &domain.AccessSystem{ID: uuid.New(), Name: in.Name, Variant: in.Variant}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.systemRepo.Create(ctx, tx, []*domain.AccessSystem{row})
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *accessSystemService) List(ctx context.Context, offset, limit int) ([]*domain.AccessSystem, error) {
	return s.systemRepo.List(ctx, nil, offset, limit)
}

func (s *accessSystemService) AddIPRange(ctx context.Context, in IPRangeInput) (*domain.IPRange, error) {
	if in.CIDR == "" {
		return nil, fmt.Errorf("%w: ip range cidr is required", errs.ErrInvalidArgument)
	}
	row := &domain.IPRange{ID: uuid.New(), CIDR: in.CIDR, AccessSystemID: in.AccessSystemID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		systems, err := s.systemRepo.GetByIDs(ctx, tx, []uuid.UUID{in.AccessSystemID})
		if err != nil {
			return err
		}
		if len(systems) == 0 {
			return fmt.Errorf("%w: no access system found with ID %s", errs.ErrNotFound, in.AccessSystemID)
		}
		_, err = s.ipRangeRepo.Create(ctx, tx, []*domain.IPRange{row})
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *accessSystemService) ListIPRanges(ctx context.Context, offset, limit int) ([]*domain.IPRange, error) {
	return s.ipRangeRepo.List(ctx, nil, offset, limit)
}

func (s *accessSystemService) IPRangesForAccessSystem(ctx context.Context, systemID uuid.UUID) ([]*domain.IPRange, error) {
	ranges, err := s.ipRangeRepo.GetByAccessSystemIDs(ctx, nil, []uuid.UUID{systemID})
	if err != nil {
		return nil, err
	}
	if ranges == nil {
		ranges = []*domain.IPRange{}
	}
	return ranges, nil
}
