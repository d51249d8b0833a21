// File: internal/handler/users/delete.go
package users

import (
	"errors"
	"fmt"
	"net/http"

	"franceguessr/internal/api"
	"franceguessr/internal/database"
	"franceguessr/internal/middleware"
	"franceguessr/internal/service"
	"franceguessr/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// TokenVerifier is implemented by service.TokenCodec.
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

// DeleteHandler removes the account the token was issued for.
// @Summary     Delete a user
// @Description The token comes from the authorization field of the body or, when absent, from the Authorization header. The account must match both the email of the request and the credentials inside the token.
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body api.AuthRequest true "Account and token"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /v1/delete [delete]
func DeleteHandler(db database.DB, tokens TokenVerifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.AuthRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.NewError(fmt.Sprintf("Invalid request body: %v", err)))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.NewError(err.Error()))
		}

		token := req.Authorization
		if token == "" {
			token = middleware.Token(c)
		}
		if token == "" {
			return c.JSON(http.StatusUnauthorized, api.NewError("No token provided"))
		}

		ctx := c.Request().Context()
		claims, err := tokens.Verify(token)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("token rejected")
			return c.JSON(http.StatusUnauthorized, api.NewError("Invalid token"))
		}
		if claims.Email != req.Email {
			return c.JSON(http.StatusUnauthorized, api.NewError("Invalid credentials"))
		}

		username, err := deleteUser(ctx, db, claims.Email, claims.HashedPassword)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, api.NewError("Invalid credentials or user does not exist"))
		}
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("delete user failed")
			return c.JSON(http.StatusInternalServerError, api.NewError("Internal server error"))
		}

		zerolog.Ctx(ctx).Info().Str("username", username).Msg("user deleted")
		return c.JSON(http.StatusOK, api.MessageResponse{Message: fmt.Sprintf("User %s deleted", username)})
	}
}
