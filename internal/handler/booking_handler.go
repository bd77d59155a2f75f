package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/hostflow/hostflow-server/internal/dto"
	"github.com/hostflow/hostflow-server/internal/models"
	"github.com/hostflow/hostflow-server/internal/repository"
	"github.com/hostflow/hostflow-server/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc       service.BookingService
	guestRepo repository.GuestRepository
}

func NewBookingHandler(svc service.BookingService, guestRepo repository.GuestRepository) *BookingHandler {
	return &BookingHandler{svc: svc, guestRepo: guestRepo}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	properties := e.Group("/api/v1/properties")
	properties.GET("/:id/bookings", h.ListBookings)
	properties.POST("/:id/bookings", h.CreateManualBooking)
	properties.GET("/:id/guests", h.ListGuests)

	bookings := e.Group("/api/v1/bookings")
	bookings.GET("/:id", h.GetBooking)
	bookings.DELETE("/:id", h.CancelBooking)
	bookings.POST("/:id/finalize", h.FinalizeBooking)
	bookings.POST("/:id/checkin", h.CheckIn)
	bookings.POST("/:id/checkout", h.CheckOut)
}

func (h *BookingHandler) CreateManualBooking(c echo.Context) error {
	propertyID := c.Param("id")

	var req dto.ManualBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.GuestName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "guest_name is required")
	}
	if req.CheckIn == "" || req.CheckOut == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "check_in and check_out are required")
	}

	booking, err := h.svc.CreateManualBooking(c.Request().Context(), service.ManualBookingInput{
		PropertyID:  propertyID,
		GuestName:   req.GuestName,
		GuestEmail:  req.GuestEmail,
		GuestPhone:  req.GuestPhone,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		TotalPrice:  req.TotalPrice,
		GuestsCount: req.GuestsCount,
		Rating:      req.Rating,
		Source:      models.BookingSource(req.Source),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPropertyNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidStay):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) FinalizeBooking(c echo.Context) error {
	var req dto.FinalizeBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.GuestName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "guest_name is required")
	}
	if req.TotalPrice <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "total_price must be positive")
	}

	booking, err := h.svc.FinalizeBooking(c.Request().Context(), c.Param("id"), req.GuestName, req.TotalPrice)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	booking, err := h.svc.CancelBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyCancelled), errors.Is(err, service.ErrStayCompleted):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CheckIn(c echo.Context) error {
	return h.staffTransition(c, h.svc.CheckInBooking)
}

func (h *BookingHandler) CheckOut(c echo.Context) error {
	return h.staffTransition(c, h.svc.CheckOutBooking)
}

func (h *BookingHandler) staffTransition(c echo.Context, fn func(ctx context.Context, bookingID string) (*models.Booking, error)) error {
	booking, err := fn(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.svc.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) ListGuests(c echo.Context) error {
	guests, err := h.guestRepo.FindByPropertyID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, guests)
}
