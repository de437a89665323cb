package handlers

import (
	"net/http"

	"little-lemon-api/middleware"
	"little-lemon-api/models"
	"little-lemon-api/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	Svc   *services.OrderService
	Roles *services.RoleResolver
}

type orderPatchRequest struct {
	Status         *models.OrderStatus `json:"status"`
	DeliveryCrewID *uint               `json:"delivery_crew_id"`
}

// requester builds the identity-plus-role the services operate on. The role
// is resolved from the store here, once per request.
func (h *OrderHandler) requester(c *gin.Context) (services.Requester, bool) {
	userID := middleware.GetUserID(c)
	role, err := h.Roles.EffectiveRole(userID)
	if err != nil {
		fail(c, err)
		return services.Requester{}, false
	}
	return services.Requester{UserID: userID, Role: role}, true
}

func (h *OrderHandler) List(c *gin.Context) {
	req, ok := h.requester(c)
	if !ok {
		return
	}
	orders, err := h.Svc.List(req, c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// Create converts the caller's cart into an order. The response confirms
// creation without echoing the full order body.
func (h *OrderHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	order, err := h.Svc.CreateFromCart(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order placed successfully",
		"order_id": order.ID,
		"total":    order.Total,
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	req, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.Svc.Get(req, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *OrderHandler) Update(c *gin.Context) {
	req, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var body orderPatchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.Svc.Update(req, id, services.OrderPatch{
		Status:         body.Status,
		DeliveryCrewID: body.DeliveryCrewID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "order": order})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	req, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(req, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted", "order_id": id})
}
