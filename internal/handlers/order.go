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

	"github.com/vivek-boini/furniture/internal/events"
	"github.com/vivek-boini/furniture/internal/logging"
	"github.com/vivek-boini/furniture/internal/models"
)

type OrderHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

type createOrderRequest struct {
	Product string  `json:"product"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Notes   string  `json:"notes"`
	Amount  float64 `json:"amount"`
	Status  string  `json:"status"`
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

type orderStats struct {
	TotalOrders           int64          `json:"totalOrders"`
	TotalSales            float64        `json:"totalSales"`
	ProductCount          int64          `json:"productCount"`
	PendingOrders         int64          `json:"pendingOrders"`
	CallbackRequestsCount int64          `json:"callbackRequestsCount"`
	RecentOrders          []models.Order `json:"recentOrders"`
}

// CreateOrder is public. The amount is accepted from the caller as-is;
// nothing re-checks it against a product price.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Product == "" || req.Name == "" || req.Email == "" || req.Phone == "" || req.Address == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "All required fields must be provided")
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	order := models.Order{
		Product: req.Product,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
		Amount:  req.Amount,
		Status:  status,
	}

	if err := h.DB.WithContext(ctx).Create(&order).Error; err != nil {
		l.Error("create_order_failed", "status", 500, "reason", "create error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(pubCtx, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"product": order.Product,
		"amount":  order.Amount,
	}); err != nil {
		l.Warn("kafka_publish_failed", "error", err)
	}

	l.Info("create_order_success", "orderID", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	orders := []models.Order{}
	if err := h.DB.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		l.Error("list_orders_failed", "status", 500, "reason", "query error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Status != models.OrderStatusPending && req.Status != models.OrderStatusCompleted {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
	}

	var order models.Order
	if err := h.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		l.Error("update_status_failed", "status", 500, "reason", "query error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	order.Status = req.Status
	if err := h.DB.WithContext(ctx).Save(&order).Error; err != nil {
		l.Error("update_status_failed", "status", 500, "reason", "save error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	l.Info("update_status_success", "orderID", order.ID, "orderStatus", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_order")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	res := h.DB.WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		l.Error("delete_order_failed", "status", 500, "reason", "delete error", "error", res.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}

	l.Info("delete_order_success", "orderID", id)
	return c.JSON(http.StatusOK, map[string]string{"message": "Order deleted"})
}

// GetStats recomputes the dashboard aggregate on every call.
func (h *OrderHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_stats")

	var stats orderStats
	db := h.DB.WithContext(ctx)

	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		l.Error("get_stats_failed", "status", 500, "reason", "order count", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalSales).Error; err != nil {
		l.Error("get_stats_failed", "status", 500, "reason", "sales sum", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if err := db.Model(&models.Product{}).Count(&stats.ProductCount).Error; err != nil {
		l.Error("get_stats_failed", "status", 500, "reason", "product count", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		l.Error("get_stats_failed", "status", 500, "reason", "pending count", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if err := db.Model(&models.CallbackRequest{}).
		Where("status = ?", models.CallbackStatusPending).
		Count(&stats.CallbackRequestsCount).Error; err != nil {
		l.Error("get_stats_failed", "status", 500, "reason", "callback count", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	stats.RecentOrders = []models.Order{}
	if err := db.Order("created_at DESC").Limit(5).Find(&stats.RecentOrders).Error; err != nil {
		l.Error("get_stats_failed", "status", 500, "reason", "recent orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, stats)
}
