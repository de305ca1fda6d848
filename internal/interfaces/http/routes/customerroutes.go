package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nitrodesk/nitrodesk/internal/interfaces/http/handlers"
)

type CustomerRouteConfig struct {
	Handler *handlers.CustomerHandler
}

// SetupCustomerRoutes registers /customers. PUT and DELETE are also accepted on
// the collection with the id in the body or ?id=.
func SetupCustomerRoutes(api *gin.RouterGroup, config *CustomerRouteConfig) {
	customers := api.Group("/customers")
	{
		customers.GET("", config.Handler.ListCustomers)
		customers.POST("", config.Handler.CreateCustomer)
		customers.PUT("", config.Handler.UpdateCustomer)
		customers.DELETE("", config.Handler.DeleteCustomer)

		customers.GET("/:id", config.Handler.GetCustomer)
		customers.PUT("/:id", config.Handler.UpdateCustomer)
		customers.DELETE("/:id", config.Handler.DeleteCustomer)
		customers.POST("/:id/renew", config.Handler.RenewCustomer)
	}
}
