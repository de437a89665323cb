package middleware

import (
	"net/http"

	"little-lemon-api/models"
	"little-lemon-api/services"

	"github.com/gin-gonic/gin"
)

// RoleGate enforces group membership before the target handler runs.
// Membership is looked up in the store per request, never from the token.
type RoleGate struct {
	roles *services.RoleResolver
}

func NewRoleGate(roles *services.RoleResolver) *RoleGate {
	return &RoleGate{roles: roles}
}

// Require passes the request through if the caller holds any of the given
// roles; otherwise it aborts with 403 and no side effects.
func (g *RoleGate) Require(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		for _, role := range roles {
			ok, err := g.roles.HasRole(userID, role)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve roles"})
				c.Abort()
				return
			}
			if ok {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Required role(s): " + rolesString(roles)})
		c.Abort()
	}
}

func rolesString(roles []models.Role) string {
	s := ""
	for i, r := range roles {
		if i > 0 {
			s += ", "
		}
		s += string(r)
	}
	return s
}
