// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"franceguessr/internal/api"
	"franceguessr/internal/cache"
	"franceguessr/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const healthKey = "postalcodes:health"

// PingResponse is returned when every dependency answers.
// swagger:model PingResponse
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}

// PingHandler checks the database and the cache.
// @Summary     Health Check
// @Description Pings the database and writes a health key to the cache
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("database ping failed")
			return c.JSON(http.StatusInternalServerError, api.NewError("database unhealthy"))
		}
		if err := cch.Set(ctx, healthKey, "ok", time.Minute).Err(); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("cache ping failed")
			return c.JSON(http.StatusInternalServerError, api.NewError("cache unhealthy"))
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
