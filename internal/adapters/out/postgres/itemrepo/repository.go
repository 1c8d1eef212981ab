// Package itemrepo persists inventory items.
package itemrepo

import (
	"context"
	"errors"
	"time"

	"ferryops/internal/core/domain/model/inventory"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Category     string    `gorm:"not null"`
	Unit         string    `gorm:"not null"`
	CurrentStock int       `gorm:"not null;default:0;check:current_stock >= 0"`
	ReorderLevel int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "inventory_items"
}

type GormItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormItemRepository(db *gorm.DB, tracker aggregateTracker) *GormItemRepository {
	return &GormItemRepository{db: db, tracker: tracker}
}

func (r *GormItemRepository) Add(ctx context.Context, item *inventory.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := ItemDTO{
		ID:           item.ID().Bytes(),
		Name:         item.Name(),
		Category:     item.Category(),
		Unit:         item.Unit(),
		CurrentStock: item.CurrentStock(),
		ReorderLevel: item.ReorderLevel(),
		CreatedAt:    item.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

// Update leaves current_stock untouched; it only moves through IncrementStock.
func (r *GormItemRepository) Update(ctx context.Context, item *inventory.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ?", item.ID().Bytes()).
		Updates(map[string]any{
			"name":          item.Name(),
			"category":      item.Category(),
			"unit":          item.Unit(),
			"reorder_level": item.ReorderLevel(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("item", item.ID().String())
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

func (r *GormItemRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("item", id.String())
		}
		return nil, err
	}

	itemID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return inventory.RestoreItem(itemID, dto.Name, dto.Category, dto.Unit, dto.CurrentStock, dto.ReorderLevel, dto.CreatedAt.UTC())
}

func (r *GormItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ItemDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("item", id.String())
	}
	return nil
}

// IncrementStock adds quantity in one statement so concurrent receipts never
// overwrite each other.
func (r *GormItemRepository) IncrementStock(ctx context.Context, id kernel.UUID, quantity int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}

	result := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ?", id.Bytes()).
		UpdateColumn("current_stock", gorm.Expr("current_stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("item", id.String())
	}
	return nil
}
