package repository

import (
	"context"

	"github.com/hostflow/hostflow-server/internal/models"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, transaction *models.Transaction) error
	FindByPropertyID(ctx context.Context, propertyID string) ([]models.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *gorm.DB, transaction *models.Transaction) error {
	return tx.WithContext(ctx).Create(transaction).Error
}

func (r *transactionRepository) FindByPropertyID(ctx context.Context, propertyID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Order("date DESC, id ASC").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}
