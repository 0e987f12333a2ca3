package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/api/middleware"
	"github.com/matbakhapp/orderapi/internal/domain"
	"github.com/matbakhapp/orderapi/internal/service"
	"github.com/matbakhapp/orderapi/pkg/errors"
)

// CheckoutResponse represents a successful order submission
type CheckoutResponse struct {
	OrderID  string             `json:"order_id"`
	Status   domain.OrderStatus `json:"status"`
	Subtotal string             `json:"subtotal"`
	Discount string             `json:"discount"`
	Total    string             `json:"total"`
}

// HandleCheckout handles POST /v1/checkout. The cart is cleared only
// after the persistence collaborator acknowledges the order; on failure
// it is preserved so the customer can retry.
func HandleCheckout(carts *service.CartService, orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
			return
		}

		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cart, err := carts.Get(c.Request.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to load cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if cart.IsEmpty() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}

		order, err := orders.Submit(c.Request.Context(), cart, req)
		if err != nil {
			switch e := err.(type) {
			case *errors.ErrPromoNotFound:
				c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
			case *errors.ErrPromoMinimumNotMet:
				c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
			case *errors.ErrSubmissionFailed:
				logger.Error("Order submission failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
			default:
				logger.Error("Failed to submit order", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		if err := carts.Clear(c.Request.Context(), sessionID); err != nil {
			// The order exists; a stale cart is the lesser problem
			logger.Warn("Failed to clear cart after checkout",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}

		c.JSON(http.StatusCreated, CheckoutResponse{
			OrderID:  order.ID.String(),
			Status:   order.Status,
			Subtotal: order.Subtotal.StringFixed(2),
			Discount: order.Discount.StringFixed(2),
			Total:    order.Total.StringFixed(2),
		})
	}
}
