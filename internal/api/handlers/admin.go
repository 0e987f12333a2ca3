package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/domain"
	"github.com/matbakhapp/orderapi/internal/repository"
	"github.com/matbakhapp/orderapi/internal/service"
	"github.com/matbakhapp/orderapi/pkg/errors"
)

// HandleUpdateOrderStatus handles POST /v1/admin/orders/:id/status.
// Normal requests go through the state machine; forced requests bypass
// the adjacency rule and are audited under their own event type.
func HandleUpdateOrderStatus(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		var req service.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		target, err := domain.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order *domain.Order
		if req.Forced {
			order, err = orders.ForceStatus(c.Request.Context(), orderID, target)
		} else {
			order, err = orders.Transition(c.Request.Context(), orderID, target)
		}
		if err != nil {
			switch e := err.(type) {
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			case *errors.ErrInvalidStateTransition:
				c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
			default:
				logger.Error("Failed to update order status", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     order.ID.String(),
			"status": order.Status,
		})
	}
}

// HandleListOrders handles GET /v1/admin/orders with an optional
// ?status= filter
func HandleListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *domain.OrderStatus
		if raw := c.Query("status"); raw != "" {
			parsed, err := domain.ParseOrderStatus(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status = &parsed
		}

		orders, err := repos.Order.List(c.Request.Context(), status)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]OrderResponse, len(orders))
		for i, order := range orders {
			responses[i] = toOrderResponse(order)
		}

		c.JSON(http.StatusOK, gin.H{"orders": responses})
	}
}
