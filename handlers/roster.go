package handlers

import (
	"net/http"

	"little-lemon-api/models"
	"little-lemon-api/services"

	"github.com/gin-gonic/gin"
)

// RosterHandler serves the /groups/{manager,delivery-crew}/users endpoints.
// Each route is bound to its role at registration time; the route gate has
// already verified the caller is a manager.
type RosterHandler struct {
	Svc *services.RosterService
}

type rosterAddRequest struct {
	Username string `json:"username" binding:"required"`
}

func (h *RosterHandler) List(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := h.Svc.List(role)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
	}
}

func (h *RosterHandler) Add(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req rosterAddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		user, err := h.Svc.Add(role, req.Username)
		if err != nil {
			fail(c, err)
			return
		}
		group, _ := models.GroupForRole(role)
		c.JSON(http.StatusOK, gin.H{
			"message": user.Username + " added to " + group + " group successfully",
			"user":    user,
		})
	}
}

func (h *RosterHandler) Remove(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := idParam(c, "userId")
		if !ok {
			return
		}
		user, err := h.Svc.Remove(role, userID)
		if err != nil {
			fail(c, err)
			return
		}
		group, _ := models.GroupForRole(role)
		c.JSON(http.StatusOK, gin.H{
			"message": user.Username + " removed from " + group + " group successfully",
			"user":    user,
		})
	}
}
