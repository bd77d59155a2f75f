package service

import (
	"context"
	"testing"

	"github.com/hostflow/hostflow-server/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock repositories ---

type mockBookingRepo struct {
	byID    map[string]*models.Booking
	created []*models.Booking
	saved   []*models.Booking
}

func newMockBookingRepo(bookings ...*models.Booking) *mockBookingRepo {
	m := &mockBookingRepo{byID: make(map[string]*models.Booking)}
	for _, b := range bookings {
		m.byID[b.ID] = b
	}
	return m
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	m.created = append(m.created, b)
	m.byID[b.ID] = b
	return nil
}
func (m *mockBookingRepo) Save(ctx context.Context, b *models.Booking) error {
	m.saved = append(m.saved, b)
	return nil
}
func (m *mockBookingRepo) SaveTx(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	m.saved = append(m.saved, b)
	return nil
}
func (m *mockBookingRepo) UpsertAll(ctx context.Context, bookings []models.Booking) error {
	return nil
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	if b, ok := m.byID[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockBookingRepo) FindByPropertyID(ctx context.Context, propertyID string, status *models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type mockGuestRepo struct {
	created []*models.Guest
}

func (m *mockGuestRepo) Create(ctx context.Context, tx *gorm.DB, g *models.Guest) error {
	m.created = append(m.created, g)
	return nil
}
func (m *mockGuestRepo) FindByPropertyID(ctx context.Context, propertyID string) ([]models.Guest, error) {
	return nil, nil
}

type mockPropertyRepo struct {
	property *models.Property
}

func (m *mockPropertyRepo) Create(ctx context.Context, p *models.Property) error { return nil }
func (m *mockPropertyRepo) Save(ctx context.Context, p *models.Property) error   { return nil }
func (m *mockPropertyRepo) FindByID(ctx context.Context, id string) (*models.Property, error) {
	if m.property == nil || m.property.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.property, nil
}
func (m *mockPropertyRepo) FindAll(ctx context.Context) ([]models.Property, error) {
	return nil, nil
}

type mockTransactionRepo struct {
	created []*models.Transaction
}

func (m *mockTransactionRepo) Create(ctx context.Context, tx *gorm.DB, t *models.Transaction) error {
	m.created = append(m.created, t)
	return nil
}
func (m *mockTransactionRepo) FindByPropertyID(ctx context.Context, propertyID string) ([]models.Transaction, error) {
	return nil, nil
}

func newTestBookingService(bookings *mockBookingRepo, guests *mockGuestRepo, transactions *mockTransactionRepo) BookingService {
	return NewBookingService(
		bookings,
		guests,
		&mockPropertyRepo{property: &models.Property{ID: "prop-1", Name: "Hill Cottage"}},
		transactions,
	)
}

// --- Tests ---

func TestCreateManualBooking_Success(t *testing.T) {
	bookings := newMockBookingRepo()
	guests := &mockGuestRepo{}
	transactions := &mockTransactionRepo{}
	svc := newTestBookingService(bookings, guests, transactions)

	booking, err := svc.CreateManualBooking(context.Background(), ManualBookingInput{
		PropertyID:  "prop-1",
		GuestName:   "Asha Rao",
		GuestPhone:  "9000000000",
		CheckIn:     "2024-06-01",
		CheckOut:    "2024-06-04",
		TotalPrice:  7500,
		GuestsCount: 2,
		Rating:      5,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.StatusUpcoming, booking.Status)
	assert.Equal(t, models.SourceManual, booking.Source)
	assert.False(t, booking.IsSynced)
	assert.NotEmpty(t, booking.ID)

	assert.Len(t, guests.created, 1)
	assert.Equal(t, booking.GuestID, guests.created[0].ID)
	assert.Equal(t, "Asha Rao", guests.created[0].Name)

	assert.Len(t, transactions.created, 1)
	assert.Equal(t, models.TransactionIncome, transactions.created[0].Type)
	assert.Equal(t, 7500.0, transactions.created[0].Amount)
	assert.Equal(t, booking.ID, transactions.created[0].ReferenceID)
}

func TestCreateManualBooking_InvalidStay(t *testing.T) {
	svc := newTestBookingService(newMockBookingRepo(), &mockGuestRepo{}, &mockTransactionRepo{})

	_, err := svc.CreateManualBooking(context.Background(), ManualBookingInput{
		PropertyID: "prop-1",
		GuestName:  "Asha Rao",
		CheckIn:    "2024-06-04",
		CheckOut:   "2024-06-04",
	})

	assert.ErrorIs(t, err, ErrInvalidStay)
}

func TestCreateManualBooking_PropertyNotFound(t *testing.T) {
	svc := newTestBookingService(newMockBookingRepo(), &mockGuestRepo{}, &mockTransactionRepo{})

	_, err := svc.CreateManualBooking(context.Background(), ManualBookingInput{
		PropertyID: "prop-404",
		GuestName:  "Asha Rao",
		CheckIn:    "2024-06-01",
		CheckOut:   "2024-06-04",
	})

	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestFinalizeBooking_CompletesSyncedBooking(t *testing.T) {
	incomplete := &models.Booking{
		ID:         "abc123",
		PropertyID: "prop-1",
		GuestName:  models.PlaceholderGuestName,
		CheckIn:    "2024-06-01",
		CheckOut:   "2024-06-04",
		Status:     models.StatusUpcoming,
		Source:     models.SourceAirbnb,
		IsSynced:   true,
	}
	bookings := newMockBookingRepo(incomplete)
	guests := &mockGuestRepo{}
	transactions := &mockTransactionRepo{}
	svc := newTestBookingService(bookings, guests, transactions)

	booking, err := svc.FinalizeBooking(context.Background(), "abc123", "Jane Doe", 4500)

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", booking.GuestName)
	assert.Equal(t, 4500.0, booking.TotalPrice)
	assert.True(t, booking.Finalized())
	assert.NotEmpty(t, booking.GuestID, "finalize links a CRM guest")

	assert.Len(t, guests.created, 1)
	assert.Len(t, transactions.created, 1)
	assert.Equal(t, "abc123", transactions.created[0].ReferenceID)
}

func TestFinalizeBooking_NotFound(t *testing.T) {
	svc := newTestBookingService(newMockBookingRepo(), &mockGuestRepo{}, &mockTransactionRepo{})

	_, err := svc.FinalizeBooking(context.Background(), "missing", "Jane Doe", 4500)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelBooking_StateMachine(t *testing.T) {
	upcoming := &models.Booking{ID: "b1", Status: models.StatusUpcoming, Source: models.SourceManual}
	checkedIn := &models.Booking{ID: "b2", Status: models.StatusCheckedIn, Source: models.SourceManual}
	completed := &models.Booking{ID: "b3", Status: models.StatusCompleted, Source: models.SourceManual}
	cancelled := &models.Booking{ID: "b4", Status: models.StatusCancelled, Source: models.SourceManual}
	svc := newTestBookingService(newMockBookingRepo(upcoming, checkedIn, completed, cancelled), &mockGuestRepo{}, &mockTransactionRepo{})

	b, err := svc.CancelBooking(context.Background(), "b1")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)

	b, err = svc.CancelBooking(context.Background(), "b2")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)

	_, err = svc.CancelBooking(context.Background(), "b3")
	assert.ErrorIs(t, err, ErrStayCompleted)

	_, err = svc.CancelBooking(context.Background(), "b4")
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCheckInCheckOut_Transitions(t *testing.T) {
	booking := &models.Booking{ID: "b1", Status: models.StatusUpcoming, Source: models.SourceAirbnb}
	svc := newTestBookingService(newMockBookingRepo(booking), &mockGuestRepo{}, &mockTransactionRepo{})

	b, err := svc.CheckInBooking(context.Background(), "b1")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCheckedIn, b.Status)

	b, err = svc.CheckOutBooking(context.Background(), "b1")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, b.Status)

	// Completed is terminal for staff transitions.
	_, err = svc.CheckInBooking(context.Background(), "b1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
