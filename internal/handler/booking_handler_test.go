package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hostflow/hostflow-server/internal/dto"
	"github.com/hostflow/hostflow-server/internal/models"
	"github.com/hostflow/hostflow-server/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn   func(ctx context.Context, input service.ManualBookingInput) (*models.Booking, error)
	finalizeFn func(ctx context.Context, bookingID, guestName string, totalPrice float64) (*models.Booking, error)
	cancelFn   func(ctx context.Context, bookingID string) (*models.Booking, error)
	checkInFn  func(ctx context.Context, bookingID string) (*models.Booking, error)
	checkOutFn func(ctx context.Context, bookingID string) (*models.Booking, error)
	getFn      func(ctx context.Context, id string) (*models.Booking, error)
	listFn     func(ctx context.Context, propertyID string, status *models.BookingStatus) ([]models.Booking, error)
}

func (m *mockBookingService) CreateManualBooking(ctx context.Context, input service.ManualBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, input)
}
func (m *mockBookingService) FinalizeBooking(ctx context.Context, bookingID, guestName string, totalPrice float64) (*models.Booking, error) {
	return m.finalizeFn(ctx, bookingID, guestName, totalPrice)
}
func (m *mockBookingService) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return m.cancelFn(ctx, bookingID)
}
func (m *mockBookingService) CheckInBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return m.checkInFn(ctx, bookingID)
}
func (m *mockBookingService) CheckOutBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return m.checkOutFn(ctx, bookingID)
}
func (m *mockBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingService) ListBookings(ctx context.Context, propertyID string, status *models.BookingStatus) ([]models.Booking, error) {
	return m.listFn(ctx, propertyID, status)
}

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- Tests ---

func TestCreateManualBooking_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.ManualBookingInput) (*models.Booking, error) {
			return &models.Booking{
				ID:         "local-1",
				PropertyID: input.PropertyID,
				GuestName:  input.GuestName,
				CheckIn:    input.CheckIn,
				CheckOut:   input.CheckOut,
				Status:     models.StatusUpcoming,
				TotalPrice: input.TotalPrice,
				Source:     models.SourceManual,
			}, nil
		},
	}

	body := `{"guest_name":"Asha Rao","check_in":"2024-06-01","check_out":"2024-06-04","total_price":7500}`
	c, rec := postJSON("/api/v1/properties/prop-1/bookings", body)
	c.SetParamNames("id")
	c.SetParamValues("prop-1")

	h := NewBookingHandler(svc, nil)
	err := h.CreateManualBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "local-1", resp.ID)
	assert.Equal(t, models.StatusUpcoming, resp.Status)
	assert.Equal(t, models.SourceManual, resp.Source)
}

func TestCreateManualBooking_Handler_MissingGuestName(t *testing.T) {
	c, _ := postJSON("/api/v1/properties/prop-1/bookings", `{"check_in":"2024-06-01","check_out":"2024-06-04"}`)
	c.SetParamNames("id")
	c.SetParamValues("prop-1")

	h := NewBookingHandler(nil, nil)
	err := h.CreateManualBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateManualBooking_Handler_InvalidStay(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.ManualBookingInput) (*models.Booking, error) {
			return nil, service.ErrInvalidStay
		},
	}

	body := `{"guest_name":"Asha Rao","check_in":"2024-06-04","check_out":"2024-06-04"}`
	c, _ := postJSON("/api/v1/properties/prop-1/bookings", body)
	c.SetParamNames("id")
	c.SetParamValues("prop-1")

	h := NewBookingHandler(svc, nil)
	err := h.CreateManualBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestFinalizeBooking_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		finalizeFn: func(ctx context.Context, bookingID, guestName string, totalPrice float64) (*models.Booking, error) {
			return &models.Booking{
				ID:         bookingID,
				GuestName:  guestName,
				TotalPrice: totalPrice,
				Status:     models.StatusUpcoming,
				Source:     models.SourceAirbnb,
				IsSynced:   true,
			}, nil
		},
	}

	c, rec := postJSON("/api/v1/bookings/abc123/finalize", `{"guest_name":"Jane Doe","total_price":4500}`)
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	h := NewBookingHandler(svc, nil)
	err := h.FinalizeBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Jane Doe", resp.GuestName)
	assert.False(t, resp.Incomplete)
}

func TestFinalizeBooking_Handler_RejectsZeroPrice(t *testing.T) {
	c, _ := postJSON("/api/v1/bookings/abc123/finalize", `{"guest_name":"Jane Doe","total_price":0}`)
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	h := NewBookingHandler(nil, nil)
	err := h.FinalizeBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCancelBooking_Handler_CompletedConflict(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return nil, service.ErrStayCompleted
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/b3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("b3")

	h := NewBookingHandler(svc, nil)
	err := h.CancelBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestCheckIn_Handler_InvalidTransition(t *testing.T) {
	svc := &mockBookingService{
		checkInFn: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return nil, service.ErrInvalidTransition
		},
	}

	c, _ := postJSON("/api/v1/bookings/b1/checkin", "")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	h := NewBookingHandler(svc, nil)
	err := h.CheckIn(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestListBookings_Handler_WithStatusFilter(t *testing.T) {
	var capturedStatus *models.BookingStatus
	svc := &mockBookingService{
		listFn: func(ctx context.Context, propertyID string, status *models.BookingStatus) ([]models.Booking, error) {
			capturedStatus = status
			return []models.Booking{
				{ID: "abc123", Status: models.StatusUpcoming, Source: models.SourceAirbnb},
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/prop-1/bookings?status=Upcoming", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("prop-1")

	h := NewBookingHandler(svc, nil)
	err := h.ListBookings(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, capturedStatus)
	assert.Equal(t, models.StatusUpcoming, *capturedStatus)

	var resp []dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func TestGetBooking_Handler_NotFound(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, id string) (*models.Booking, error) {
			return nil, service.ErrBookingNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	h := NewBookingHandler(svc, nil)
	err := h.GetBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
