package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/hostflow/hostflow-server/internal/calendar"
	"github.com/hostflow/hostflow-server/internal/dto"
	"github.com/labstack/echo/v4"
)

type CalendarHandler struct {
	svc calendar.SyncService
}

func NewCalendarHandler(svc calendar.SyncService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

func (h *CalendarHandler) RegisterRoutes(e *echo.Echo) {
	properties := e.Group("/api/v1/properties")
	properties.POST("/:id/sync", h.Sync)
	properties.POST("/:id/sync/upload", h.SyncUpload)
}

// Sync pulls the property's external feed and reconciles it. The feed URL in
// the body is optional; the property's stored URL is the default.
func (h *CalendarHandler) Sync(c echo.Context) error {
	propertyID := c.Param("id")

	var req dto.SyncRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := h.svc.Sync(c.Request().Context(), propertyID, req.ICalURL)
	if err != nil {
		return h.mapSyncError(err)
	}

	return c.JSON(http.StatusOK, toSyncResponse(propertyID, res))
}

// SyncUpload is the manual fallback path: the raw .ics text is the request
// body, for feeds that cannot be reached programmatically.
func (h *CalendarHandler) SyncUpload(c echo.Context) error {
	propertyID := c.Param("id")

	body, err := io.ReadAll(c.Request().Body)
	if err != nil || len(body) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must contain iCalendar text")
	}

	res, err := h.svc.SyncFromText(c.Request().Context(), propertyID, string(body))
	if err != nil {
		return h.mapSyncError(err)
	}

	return c.JSON(http.StatusOK, toSyncResponse(propertyID, res))
}

func (h *CalendarHandler) mapSyncError(err error) error {
	switch {
	case errors.Is(err, calendar.ErrPropertyNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, calendar.ErrSyncInProgress):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, calendar.ErrUnreachableSource):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	case errors.Is(err, calendar.ErrEmptyFeed):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func toSyncResponse(propertyID string, res *calendar.Result) dto.SyncResponse {
	return dto.SyncResponse{
		PropertyID: propertyID,
		Inserted:   res.Inserted,
		Updated:    res.Updated,
		Cancelled:  res.Cancelled,
		Bookings:   dto.ToBookingResponses(res.Bookings),
	}
}
