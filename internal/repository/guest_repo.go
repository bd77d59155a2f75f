package repository

import (
	"context"

	"github.com/hostflow/hostflow-server/internal/models"
	"gorm.io/gorm"
)

type GuestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, guest *models.Guest) error
	FindByPropertyID(ctx context.Context, propertyID string) ([]models.Guest, error)
}

type guestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) Create(ctx context.Context, tx *gorm.DB, guest *models.Guest) error {
	return tx.WithContext(ctx).Create(guest).Error
}

func (r *guestRepository) FindByPropertyID(ctx context.Context, propertyID string) ([]models.Guest, error) {
	var guests []models.Guest
	if err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Order("name ASC").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}
