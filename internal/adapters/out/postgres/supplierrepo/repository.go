// Package supplierrepo persists suppliers. Emails are unique across suppliers.
package supplierrepo

import (
	"context"
	"errors"
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/supplier"
	"ferryops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"not null;uniqueIndex"`
	Phone     string    `gorm:"not null;default:''"`
	Address   string    `gorm:"not null;default:''"`
	Status    string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (SupplierDTO) TableName() string {
	return "suppliers"
}

type GormSupplierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormSupplierRepository(db *gorm.DB, tracker aggregateTracker) *GormSupplierRepository {
	return &GormSupplierRepository{db: db, tracker: tracker}
}

func (r *GormSupplierRepository) Add(ctx context.Context, aggregate *supplier.Supplier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("email", errors.New("email is already registered"))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormSupplierRepository) Update(ctx context.Context, aggregate *supplier.Supplier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SupplierDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":    dto.Name,
			"phone":   dto.Phone,
			"address": dto.Address,
			"status":  dto.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("supplier", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormSupplierRepository) Get(ctx context.Context, id kernel.UUID) (*supplier.Supplier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SupplierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("supplier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func fromDomain(s *supplier.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:        s.ID().Bytes(),
		Name:      s.Name(),
		Email:     s.Email(),
		Phone:     s.Phone(),
		Address:   s.Address(),
		Status:    s.Status().String(),
		CreatedAt: s.CreatedAt(),
	}
}

func toDomain(dto SupplierDTO) (*supplier.Supplier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := supplier.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return supplier.RestoreSupplier(id, dto.Name, dto.Email, dto.Phone, dto.Address, status, dto.CreatedAt.UTC())
}
