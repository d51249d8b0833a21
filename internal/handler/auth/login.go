// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"franceguessr/internal/api"
	"franceguessr/internal/database"
	"franceguessr/internal/model"
	"franceguessr/internal/service"
	"franceguessr/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var getUserByEmail = store.GetUserByEmail

// TokenIssuer is implemented by service.TokenCodec.
type TokenIssuer interface {
	Issue(user model.User) (string, *time.Time, error)
}

// LoginHandler checks the credentials and returns a signed token.
// @Summary     Log in
// @Description Compares email and hashed_password with the stored account and returns an HS256 token
// @Tags        auth
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       body body api.LoginRequest true "Credentials"
// @Success     200 {object} api.LoginResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /v1/login [post]
func LoginHandler(db database.DB, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.NewError(fmt.Sprintf("Invalid request body: %v", err)))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.NewError(err.Error()))
		}

		ctx := c.Request().Context()
		user, err := getUserByEmail(ctx, db, req.Email)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, api.NewError("Invalid credentials or user does not exist"))
		}
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("load user failed")
			return c.JSON(http.StatusInternalServerError, api.NewError("Internal server error"))
		}

		if err := service.AuthenticateUser(*user, req.Email, req.HashedPassword); err != nil {
			return c.JSON(http.StatusUnauthorized, api.NewError("Invalid credentials"))
		}

		token, expiresAt, err := tokens.Issue(*user)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("issue token failed")
			return c.JSON(http.StatusInternalServerError, api.NewError("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			User:      user.Username,
			Token:     token,
			ExpiresAt: expiresAt,
		})
	}
}
