package postalcodes

import (
	"net/http"

	"franceguessr/internal/api"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// GetCityHandler returns the first postal code of an INSEE code.
// @Summary     Get city by INSEE code
// @Description Returns the first postal code row for the code, or null when none matches. All-digit codes shorter than 5 characters are left-padded with zeros.
// @Tags        postal codes
// @Produce     json
// @Param       insee_code path string true "INSEE code" example(01001)
// @Success     200 {object} model.PostalCode
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /v1/city/{insee_code} [get]
func GetCityHandler(lookup Lookup) echo.HandlerFunc {
	return func(c echo.Context) error {
		code, ok := normalizeCode(c.Param("insee_code"))
		if !ok {
			return c.JSON(http.StatusBadRequest, api.NewError("Invalid INSEE code"))
		}
		code = padInseeCode(code)

		ctx := c.Request().Context()
		p, err := lookup.ByCode(ctx, code)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("insee_code", code).Msg("city lookup failed")
			return c.JSON(http.StatusInternalServerError, api.NewError("Internal server error"))
		}
		return c.JSON(http.StatusOK, p)
	}
}
