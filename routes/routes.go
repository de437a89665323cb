package routes

import (
	"little-lemon-api/handlers"
	"little-lemon-api/middleware"
	"little-lemon-api/models"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth   *handlers.AuthHandler
	Menu   *handlers.MenuHandler
	Roster *handlers.RosterHandler
	Cart   *handlers.CartHandler
	Order  *handlers.OrderHandler
}

// Setup registers the whole API surface. The group structure is the
// authorization policy: read routes need authentication only, every
// mutation of the catalog, the rosters, or order deletion needs the
// Manager role.
func Setup(r *gin.Engine, auth *middleware.Auth, gate *middleware.RoleGate, h Handlers) {
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)
	}

	authed := r.Group("/api")
	authed.Use(auth.Required())
	{
		authed.GET("/profile", h.Auth.Profile)

		// Menu catalog: open reads
		authed.GET("/menu-items", h.Menu.ListItems)
		authed.GET("/menu-items/:id", h.Menu.GetItem)
		authed.GET("/categories", h.Menu.ListCategories)
		authed.GET("/categories/:id", h.Menu.GetCategory)

		// Cart: owning user only, the identity comes from the token
		authed.GET("/cart/menu-items", h.Cart.List)
		authed.POST("/cart/menu-items", h.Cart.Add)
		authed.DELETE("/cart/menu-items", h.Cart.Flush)

		// Orders: visibility is scoped inside the service
		authed.GET("/orders", h.Order.List)
		authed.POST("/orders", h.Order.Create)
		authed.GET("/orders/:id", h.Order.Get)
		authed.PUT("/orders/:id", h.Order.Update)
		authed.PATCH("/orders/:id", h.Order.Update)
	}

	manager := r.Group("/api")
	manager.Use(auth.Required(), gate.Require(models.RoleManager))
	{
		// Catalog mutation
		manager.POST("/menu-items", h.Menu.CreateItem)
		manager.PUT("/menu-items/:id", h.Menu.UpdateItem)
		manager.PATCH("/menu-items/:id", h.Menu.PatchItem)
		manager.DELETE("/menu-items/:id", h.Menu.DeleteItem)
		manager.POST("/categories", h.Menu.CreateCategory)
		manager.PUT("/categories/:id", h.Menu.UpdateCategory)
		manager.DELETE("/categories/:id", h.Menu.DeleteCategory)

		// Staff rosters
		manager.GET("/groups/manager/users", h.Roster.List(models.RoleManager))
		manager.POST("/groups/manager/users", h.Roster.Add(models.RoleManager))
		manager.DELETE("/groups/manager/users/:userId", h.Roster.Remove(models.RoleManager))
		manager.GET("/groups/delivery-crew/users", h.Roster.List(models.RoleDeliveryCrew))
		manager.POST("/groups/delivery-crew/users", h.Roster.Add(models.RoleDeliveryCrew))
		manager.DELETE("/groups/delivery-crew/users/:userId", h.Roster.Remove(models.RoleDeliveryCrew))

		// Order deletion
		manager.DELETE("/orders/:id", h.Order.Delete)
	}
}
