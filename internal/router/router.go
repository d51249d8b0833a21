// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"franceguessr/internal/cache"
	"franceguessr/internal/database"
	"franceguessr/internal/handler"
	"franceguessr/internal/handler/auth"
	"franceguessr/internal/handler/postalcodes"
	"franceguessr/internal/handler/users"
	"franceguessr/internal/middleware"
	"franceguessr/internal/service"
)

// Setup registers every API route.
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, lookup postalcodes.Lookup, tokens service.TokenCodec) {
	api := e.Group("/api")

	// health check
	api.GET("/ping", handler.PingHandler(db, cch))

	v1 := api.Group("/v1")

	// postal codes
	v1.GET("/city/:insee_code", postalcodes.GetCityHandler(lookup))
	v1.GET("/cities/:insee_region_code", postalcodes.GetCitiesHandler(lookup))

	// accounts
	v1.POST("/register", users.RegisterHandler(db))
	v1.POST("/login", auth.LoginHandler(db, tokens))
	v1.DELETE("/delete", users.DeleteHandler(db, tokens), middleware.ExtractToken)
}
