package repository

import (
	"context"

	"github.com/hostflow/hostflow-server/internal/models"
	"gorm.io/gorm"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	Save(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id string) (*models.Property, error)
	FindAll(ctx context.Context) ([]models.Property, error)
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *propertyRepository) Save(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

func (r *propertyRepository) FindByID(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) FindAll(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}
