package postalcodes

import (
	"net/http"

	"franceguessr/internal/api"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// GetCitiesHandler returns every postal code whose INSEE code starts with
// the given prefix.
// @Summary     List cities by INSEE prefix
// @Description Returns all rows whose INSEE code starts with the prefix, in no particular order
// @Tags        postal codes
// @Produce     json
// @Param       insee_region_code path string true "INSEE code prefix" example(01)
// @Success     200 {array}  model.PostalCode
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /v1/cities/{insee_region_code} [get]
func GetCitiesHandler(lookup Lookup) echo.HandlerFunc {
	return func(c echo.Context) error {
		prefix, ok := normalizeCode(c.Param("insee_region_code"))
		if !ok {
			return c.JSON(http.StatusBadRequest, api.NewError("Invalid INSEE region code"))
		}

		ctx := c.Request().Context()
		list, err := lookup.ByPrefix(ctx, prefix)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("prefix", prefix).Msg("cities lookup failed")
			return c.JSON(http.StatusInternalServerError, api.NewError("Internal server error"))
		}
		return c.JSON(http.StatusOK, list)
	}
}
