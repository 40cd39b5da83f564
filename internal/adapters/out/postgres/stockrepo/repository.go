package stockrepo

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockConfirmationDTO records a buyable whose reservations await confirmation.
type StockConfirmationDTO struct {
	BuyableID uuid.UUID `gorm:"primaryKey;type:uuid"`
	Processed bool      `gorm:"index"`
	CreatedAt time.Time `gorm:""`
}

// TableName overrides the table name used by GORM.
func (StockConfirmationDTO) TableName() string {
	return "stock_confirmations"
}

// GormStockConfirmationRepository implements StockConfirmationRepository using GORM.
type GormStockConfirmationRepository struct {
	db *gorm.DB
}

// NewGormStockConfirmationRepository creates a new GORM stock confirmation repository.
func NewGormStockConfirmationRepository(db *gorm.DB) *GormStockConfirmationRepository {
	return &GormStockConfirmationRepository{db: db}
}

// Add registers a buyable for confirmation. Registering a buyable that is
// already pending is a no-op, a processed row is reopened.
func (r *GormStockConfirmationRepository) Add(ctx context.Context, buyableID kernel.UUID) error {
	if err := buyableID.Validate(); err != nil {
		return err
	}

	dto := StockConfirmationDTO{
		BuyableID: buyableID.Bytes(),
		Processed: false,
		CreatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "buyable_id"}},
			DoUpdates: clause.Assignments(map[string]any{"processed": false}),
		}).
		Create(&dto).Error
}

// GetUnprocessed returns the buyables still awaiting confirmation, oldest first.
func (r *GormStockConfirmationRepository) GetUnprocessed(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&StockConfirmationDTO{}).
		Where("processed = ?", false).
		Order("created_at").
		Pluck("buyable_id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		kid, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, kid)
	}
	return ids, nil
}

// MarkProcessed closes the confirmation entry of a buyable.
func (r *GormStockConfirmationRepository) MarkProcessed(ctx context.Context, buyableID kernel.UUID) error {
	if err := buyableID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&StockConfirmationDTO{}).
		Where("buyable_id = ?", buyableID.Bytes()).
		Update("processed", true).Error
}
