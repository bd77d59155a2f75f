package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hostflow/hostflow-server/internal/models"
	"github.com/hostflow/hostflow-server/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPropertyNotFound  = errors.New("property not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidStay       = errors.New("check-out must be after check-in")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrStayCompleted     = errors.New("a completed stay cannot be cancelled")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ManualBookingInput is a reception-desk booking entered outside any feed.
type ManualBookingInput struct {
	PropertyID  string
	GuestName   string
	GuestEmail  string
	GuestPhone  string
	CheckIn     string
	CheckOut    string
	TotalPrice  float64
	GuestsCount int
	Rating      int
	Source      models.BookingSource
}

type BookingService interface {
	CreateManualBooking(ctx context.Context, input ManualBookingInput) (*models.Booking, error)
	FinalizeBooking(ctx context.Context, bookingID, guestName string, totalPrice float64) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	CheckInBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	CheckOutBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, propertyID string, status *models.BookingStatus) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo     repository.BookingRepository
	guestRepo       repository.GuestRepository
	propertyRepo    repository.PropertyRepository
	transactionRepo repository.TransactionRepository
}

func NewBookingService(bookingRepo repository.BookingRepository, guestRepo repository.GuestRepository, propertyRepo repository.PropertyRepository, transactionRepo repository.TransactionRepository) BookingService {
	return &bookingService{
		bookingRepo:     bookingRepo,
		guestRepo:       guestRepo,
		propertyRepo:    propertyRepo,
		transactionRepo: transactionRepo,
	}
}

// CreateManualBooking records an offline reservation: the booking itself, a
// CRM guest and the income ledger row, in one transaction.
func (s *bookingService) CreateManualBooking(ctx context.Context, input ManualBookingInput) (*models.Booking, error) {
	if _, err := s.propertyRepo.FindByID(ctx, input.PropertyID); err != nil {
		return nil, ErrPropertyNotFound
	}
	if input.CheckOut <= input.CheckIn {
		return nil, ErrInvalidStay
	}

	source := input.Source
	if source == "" {
		source = models.SourceManual
	}
	if input.GuestsCount <= 0 {
		input.GuestsCount = 1
	}

	booking := &models.Booking{
		ID:          uuid.NewString(),
		PropertyID:  input.PropertyID,
		GuestID:     uuid.NewString(),
		GuestName:   input.GuestName,
		CheckIn:     input.CheckIn,
		CheckOut:    input.CheckOut,
		Status:      models.StatusUpcoming,
		TotalPrice:  input.TotalPrice,
		GuestsCount: input.GuestsCount,
		Source:      source,
		IsSynced:    false,
	}

	err := s.bookingRepo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}

		guest := &models.Guest{
			ID:         booking.GuestID,
			PropertyID: input.PropertyID,
			Name:       input.GuestName,
			Email:      input.GuestEmail,
			Phone:      input.GuestPhone,
			Rating:     input.Rating,
			TotalStays: 1,
			LastStay:   input.CheckIn,
			Notes:      "Offline manual booking entry",
		}
		if err := s.guestRepo.Create(ctx, tx, guest); err != nil {
			return err
		}

		if input.TotalPrice > 0 {
			return s.transactionRepo.Create(ctx, tx, &models.Transaction{
				ID:          uuid.NewString(),
				PropertyID:  input.PropertyID,
				Date:        input.CheckIn,
				Type:        models.TransactionIncome,
				Category:    "Booking",
				Amount:      input.TotalPrice,
				Description: fmt.Sprintf("Manual booking entry: %s", input.GuestName),
				ReferenceID: booking.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create manual booking: %w", err)
	}

	return booking, nil
}

// FinalizeBooking completes a synced booking that came in with the
// placeholder guest label and a zero price. After this the reconciler treats
// guest name and price as staff-owned.
func (s *bookingService) FinalizeBooking(ctx context.Context, bookingID, guestName string, totalPrice float64) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	booking.GuestName = guestName
	booking.TotalPrice = totalPrice
	booking.IsSynced = true

	err = s.bookingRepo.InTx(ctx, func(tx *gorm.DB) error {
		if booking.GuestID == "" {
			guest := &models.Guest{
				ID:         uuid.NewString(),
				PropertyID: booking.PropertyID,
				Name:       guestName,
				TotalStays: 1,
				LastStay:   booking.CheckIn,
				Notes:      "Created while finalizing a synced reservation",
			}
			if err := s.guestRepo.Create(ctx, tx, guest); err != nil {
				return err
			}
			booking.GuestID = guest.ID
		}

		if err := s.bookingRepo.SaveTx(ctx, tx, booking); err != nil {
			return err
		}

		if totalPrice > 0 {
			return s.transactionRepo.Create(ctx, tx, &models.Transaction{
				ID:          uuid.NewString(),
				PropertyID:  booking.PropertyID,
				Date:        booking.CheckIn,
				Type:        models.TransactionIncome,
				Category:    "Booking",
				Amount:      totalPrice,
				Description: fmt.Sprintf("Finalized synced reservation: %s", guestName),
				ReferenceID: booking.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("finalize booking: %w", err)
	}

	return booking, nil
}

// CancelBooking is the explicit staff action. Calendar syncs cancel through
// reconciliation instead; both honor the same state machine.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	switch booking.Status {
	case models.StatusCancelled:
		return nil, ErrAlreadyCancelled
	case models.StatusCompleted:
		return nil, ErrStayCompleted
	}

	booking.Status = models.StatusCancelled
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) CheckInBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, models.StatusUpcoming, models.StatusCheckedIn)
}

func (s *bookingService) CheckOutBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, models.StatusCheckedIn, models.StatusCompleted)
}

func (s *bookingService) transition(ctx context.Context, bookingID string, from, to models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.Status != from {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
	}

	booking.Status = to
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, propertyID string, status *models.BookingStatus) ([]models.Booking, error) {
	return s.bookingRepo.FindByPropertyID(ctx, propertyID, status)
}
