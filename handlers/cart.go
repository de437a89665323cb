package handlers

import (
	"encoding/json"
	"net/http"

	"little-lemon-api/middleware"
	"little-lemon-api/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type CartHandler struct {
	Svc *services.CartService
}

type addCartLineRequest struct {
	MenuItemID uint `json:"menuitem_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

func (h *CartHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	lines, subtotal, err := h.Svc.List(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(lines), "subtotal": subtotal, "items": lines})
}

// Add puts an item in the caller's cart. The owning user comes from the
// token; unit_price and price are server-computed and rejected if the client
// tries to supply them.
func (h *CartHandler) Add(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, field := range []string{"unit_price", "price"} {
		if _, present := raw[field]; present {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{field: "read-only field"}})
			return
		}
	}

	var req addCartLineRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	line, err := h.Svc.Add(userID, req.MenuItemID, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Added to cart", "line": line})
}

// Flush empties the caller's cart. Succeeds even when already empty.
func (h *CartHandler) Flush(c *gin.Context) {
	userID := middleware.GetUserID(c)
	deleted, err := h.Svc.Flush(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart flushed", "deleted": deleted})
}
