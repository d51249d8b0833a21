// File: internal/handler/users/register.go
package users

import (
	"fmt"
	"net/http"

	"franceguessr/internal/api"
	"franceguessr/internal/database"
	"franceguessr/internal/model"
	"franceguessr/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var (
	createUser = store.CreateUser
	deleteUser = store.DeleteUser
)

// RegisterHandler creates a user account.
// @Summary     Register a user
// @Description Stores the user as sent. hashed_password is an opaque string hashed by the client.
// @Tags        users
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       body body api.RegisterRequest true "New user"
// @Success     200 {object} model.User
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Router      /v1/register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.NewError(fmt.Sprintf("Invalid request body: %v", err)))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.NewError(err.Error()))
		}

		ctx := c.Request().Context()
		user, err := createUser(ctx, db, &model.User{
			Username:       req.Username,
			Email:          req.Email,
			HashedPassword: req.HashedPassword,
		})
		if err != nil {
			msg := fmt.Sprintf("Error while registering user: %s - %v", req.Username, err)
			zerolog.Ctx(ctx).Error().Err(err).Str("username", req.Username).Msg("register failed")
			return c.JSON(http.StatusConflict, api.NewError(msg))
		}
		return c.JSON(http.StatusOK, user)
	}
}
