package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// ContextTokenKey holds the raw token taken from the Authorization header.
const ContextTokenKey = "token"

// bearerToken returns the token carried by an Authorization header value.
// The Bearer scheme is optional; the scheme alone carries no token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// ExtractToken stores the Authorization header token under ContextTokenKey.
// Requests without one pass through untouched.
func ExtractToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if tok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization)); tok != "" {
			c.Set(ContextTokenKey, tok)
		}
		return next(c)
	}
}

// Token returns the value stored by ExtractToken, or "".
func Token(c echo.Context) string {
	tok, _ := c.Get(ContextTokenKey).(string)
	return tok
}

// RequestLogger logs one line per request with log and attaches a request
// scoped logger to the request context for zerolog.Ctx.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		BeforeNextFunc: func(c echo.Context) {
			l := log.With().
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Logger()
			c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
		},
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
