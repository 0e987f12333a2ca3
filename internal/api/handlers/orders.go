package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/domain"
	"github.com/matbakhapp/orderapi/internal/repository"
	"github.com/matbakhapp/orderapi/pkg/errors"
)

// OrderResponse represents the order projection
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	Address       string              `json:"address"`
	Notes         *string             `json:"notes,omitempty"`
	SellerID      string              `json:"seller_id"`
	PromoCode     *string             `json:"promo_code,omitempty"`
	Subtotal      string              `json:"subtotal"`
	Discount      string              `json:"discount"`
	Total         string              `json:"total"`
	Status        domain.OrderStatus  `json:"status"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     string              `json:"created_at"`
	UpdatedAt     string              `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	SellerID  string `json:"seller_id"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			SellerID:  item.SellerID,
		}
	}

	return OrderResponse{
		ID:            order.ID.String(),
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Address:       order.Address,
		Notes:         order.Notes,
		SellerID:      order.SellerID,
		PromoCode:     order.PromoCode,
		Subtotal:      order.Subtotal.StringFixed(2),
		Discount:      order.Discount.StringFixed(2),
		Total:         order.Total.StringFixed(2),
		Status:        order.Status,
		Items:         items,
		CreatedAt:     order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		order, err := repos.Order.GetByID(c.Request.Context(), orderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(order))
	}
}

// HandleSearchOrders handles GET /v1/orders?phone=. The phone is
// normalized to digits and matched exactly or as a substring.
func HandleSearchOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		phone := c.Query("phone")
		if domain.NormalizePhone(phone) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone query parameter is required"})
			return
		}

		orders, err := repos.Order.SearchByPhone(c.Request.Context(), phone)
		if err != nil {
			logger.Error("Failed to search orders", zap.Error(err))
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
