package repository

import (
	"context"

	"github.com/hostflow/hostflow-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	Save(ctx context.Context, booking *models.Booking) error
	SaveTx(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	UpsertAll(ctx context.Context, bookings []models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByPropertyID(ctx context.Context, propertyID string, status *models.BookingStatus) ([]models.Booking, error)
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) Save(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *bookingRepository) SaveTx(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Save(booking).Error
}

// UpsertAll writes a reconciled booking set back in one statement per batch.
// Conflicts on the primary key (the feed UID for synced rows) update in
// place, which is what keeps repeated syncs idempotent at the store level.
func (r *bookingRepository) UpsertAll(ctx context.Context, bookings []models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"guest_name", "check_in", "check_out", "status",
			"total_price", "guests_count", "is_synced", "updated_at",
		}),
	}).Create(&bookings).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByPropertyID(ctx context.Context, propertyID string, status *models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Where("property_id = ?", propertyID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("check_in ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
