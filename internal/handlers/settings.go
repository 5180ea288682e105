package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vivek-boini/furniture/internal/events"
	"github.com/vivek-boini/furniture/internal/logging"
	"github.com/vivek-boini/furniture/internal/models"
)

type SettingsHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

type settingsRequest struct {
	WhatsappNumber string `json:"whatsappNumber"`
	CallNumber     string `json:"callNumber"`
	Address        string `json:"address"`
	Email          string `json:"email"`
}

type createCallbackRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type callbackStatusRequest struct {
	Status string `json:"status"`
}

// GetSettings lazily creates the singleton row with defaults on first
// read. The fixed key makes concurrent first reads converge on one row.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.get_settings")

	var settings models.Settings
	err := h.DB.WithContext(ctx).First(&settings, models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultSettings()
		err = h.DB.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&settings).Error
		if err == nil {
			err = h.DB.WithContext(ctx).First(&settings, models.SettingsID).Error
		}
	}
	if err != nil {
		l.Error("get_settings_failed", "status", 500, "reason", "query error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.update_settings")

	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var settings models.Settings
	err := h.DB.WithContext(ctx).First(&settings, models.SettingsID).Error
	missing := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !missing {
		l.Error("update_settings_failed", "status", 500, "reason", "query error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	settings.ID = models.SettingsID
	settings.WhatsappNumber = req.WhatsappNumber
	settings.CallNumber = req.CallNumber
	settings.Address = req.Address
	settings.Email = req.Email

	if missing {
		err = h.DB.WithContext(ctx).Create(&settings).Error
	} else {
		err = h.DB.WithContext(ctx).Save(&settings).Error
	}
	if err != nil {
		l.Error("update_settings_failed", "status", 500, "reason", "save error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	l.Info("update_settings_success")
	return c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) CreateCallback(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.create_callback")

	var req createCallbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Phone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name and phone are required")
	}

	request := models.CallbackRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
		Status:  models.CallbackStatusPending,
	}

	if err := h.DB.WithContext(ctx).Create(&request).Error; err != nil {
		l.Error("create_callback_failed", "status", 500, "reason", "create error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(pubCtx, "callback_events", fmt.Sprint(request.ID), map[string]any{
		"type":       "callback_created",
		"callbackID": request.ID,
		"phone":      request.Phone,
	}); err != nil {
		l.Warn("kafka_publish_failed", "error", err)
	}

	l.Info("create_callback_success", "callbackID", request.ID)
	return c.JSON(http.StatusCreated, map[string]string{"message": "Callback request received"})
}

func (h *SettingsHandler) ListCallbacks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.list_callbacks")

	requests := []models.CallbackRequest{}
	if err := h.DB.WithContext(ctx).Order("created_at DESC").Find(&requests).Error; err != nil {
		l.Error("list_callbacks_failed", "status", 500, "reason", "query error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, requests)
}

// UpdateCallbackStatus sets any of the three statuses; there is no
// transition enforcement between them.
func (h *SettingsHandler) UpdateCallbackStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.update_callback")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req callbackStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var request models.CallbackRequest
	if err := h.DB.WithContext(ctx).First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Request not found")
		}
		l.Error("update_callback_failed", "status", 500, "reason", "query error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	switch req.Status {
	case models.CallbackStatusPending, models.CallbackStatusContacted, models.CallbackStatusResolved:
		request.Status = req.Status
	case "":
		// an empty status keeps the current one
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
	}

	if err := h.DB.WithContext(ctx).Save(&request).Error; err != nil {
		l.Error("update_callback_failed", "status", 500, "reason", "save error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	l.Info("update_callback_success", "callbackID", request.ID, "callbackStatus", request.Status)
	return c.JSON(http.StatusOK, request)
}
