package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/api/middleware"
	"github.com/matbakhapp/orderapi/internal/service"
	"github.com/matbakhapp/orderapi/pkg/errors"
)

// ConflictResponse is returned when an addition would cross sellers. The
// cart is unchanged; the client resolves by replacing or keeping it.
type ConflictResponse struct {
	Error           string `json:"error"`
	CurrentSeller   string `json:"current_seller"`
	CandidateSeller string `json:"candidate_seller"`
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
			return
		}

		view, err := carts.View(c.Request.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to load cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, view)
	}
}

// HandleUpsertItem handles POST /v1/cart/items
func HandleUpsertItem(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
			return
		}

		var req service.UpsertItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cart, err := carts.AddOrUpdate(c.Request.Context(), sessionID, req.LineItem(), req.Quantity)
		if err != nil {
			switch e := err.(type) {
			case *errors.ErrInvalidQuantity:
				c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
			case *errors.ErrSellerConflict:
				c.JSON(http.StatusConflict, ConflictResponse{
					Error:           "seller_conflict",
					CurrentSeller:   e.CurrentSeller,
					CandidateSeller: e.CandidateSeller,
				})
			default:
				logger.Error("Failed to update cart", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, carts.ViewOf(c.Request.Context(), cart))
	}
}

// HandleReplaceCart handles POST /v1/cart/items/replace. It resolves a
// seller conflict by discarding the cart and inserting the new item.
func HandleReplaceCart(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
			return
		}

		var req service.ReplaceItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cart, err := carts.ResolveConflictByReplacing(c.Request.Context(), sessionID, req.LineItem(), req.Quantity)
		if err != nil {
			if e, ok := err.(*errors.ErrInvalidQuantity); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
				return
			}
			logger.Error("Failed to replace cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, carts.ViewOf(c.Request.Context(), cart))
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
			return
		}

		if err := carts.Clear(c.Request.Context(), sessionID); err != nil {
			logger.Error("Failed to clear cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleApplyPromo handles POST /v1/cart/promo
func HandleApplyPromo(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
			return
		}

		var req service.ApplyPromoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cart, _, err := carts.ApplyPromo(c.Request.Context(), sessionID, req.Code)
		if err != nil {
			switch e := err.(type) {
			case *errors.ErrPromoNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
			case *errors.ErrPromoMinimumNotMet:
				c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
			default:
				logger.Error("Failed to apply promo", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, carts.ViewOf(c.Request.Context(), cart))
	}
}

// HandleRemovePromo handles DELETE /v1/cart/promo
func HandleRemovePromo(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
			return
		}

		cart, err := carts.RemovePromo(c.Request.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to remove promo", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, carts.ViewOf(c.Request.Context(), cart))
	}
}
