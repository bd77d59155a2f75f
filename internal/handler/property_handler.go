package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/hostflow/hostflow-server/internal/dto"
	"github.com/hostflow/hostflow-server/internal/models"
	"github.com/hostflow/hostflow-server/internal/repository"
	"github.com/hostflow/hostflow-server/internal/service"
	"github.com/hostflow/hostflow-server/pkg/vault"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type PropertyHandler struct {
	repo   repository.PropertyRepository
	backup service.BackupService
}

func NewPropertyHandler(repo repository.PropertyRepository, backup service.BackupService) *PropertyHandler {
	return &PropertyHandler{repo: repo, backup: backup}
}

func (h *PropertyHandler) RegisterRoutes(e *echo.Echo) {
	properties := e.Group("/api/v1/properties")
	properties.POST("", h.CreateProperty)
	properties.GET("", h.ListProperties)
	properties.GET("/:id", h.GetProperty)
	properties.POST("/:id/backup", h.Backup)
	properties.GET("/:id/backup", h.Restore)
}

func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	var req dto.CreatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	property := &models.Property{
		ID:           uuid.NewString(),
		Name:         req.Name,
		ManagerName:  req.ManagerName,
		ManagerEmail: req.ManagerEmail,
		ManagerPhone: req.ManagerPhone,
		AirbnbURL:    req.AirbnbURL,
		ICalURL:      req.ICalURL,
		IsConfigured: req.ICalURL != "",
	}

	if err := h.repo.Create(c.Request().Context(), property); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, property)
}

func (h *PropertyHandler) ListProperties(c echo.Context) error {
	properties, err := h.repo.FindAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, properties)
}

func (h *PropertyHandler) GetProperty(c echo.Context) error {
	property, err := h.repo.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "property not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) Backup(c echo.Context) error {
	propertyID := c.Param("id")
	key, err := h.backup.Backup(c.Request().Context(), propertyID)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, dto.BackupResponse{PropertyID: propertyID, VaultKey: key})
}

func (h *PropertyHandler) Restore(c echo.Context) error {
	snapshot, err := h.backup.Restore(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPropertyNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, vault.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "no snapshot stored for this property")
		default:
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
	}
	return c.JSON(http.StatusOK, snapshot)
}
