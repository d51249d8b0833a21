package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"   ":              "",
		"abc.def.ghi":      "abc.def.ghi",
		"Bearer abc":       "abc",
		"bearer  abc ":     "abc",
		"BEARER abc.def":   "abc.def",
		"Bearer":           "",
		"bearer   ":        "",
		"Basic dXNlcjpwdw": "Basic dXNlcjpwdw",
	}
	for in, want := range cases {
		require.Equal(t, want, bearerToken(in), "header %q", in)
	}
}

func TestExtractToken(t *testing.T) {
	ctx, _ := newContext("Bearer tok")
	var got string
	require.NoError(t, ExtractToken(func(c echo.Context) error {
		got = Token(c)
		return nil
	})(ctx))
	require.Equal(t, "tok", got)

	ctx, _ = newContext("")
	got = "unset"
	require.NoError(t, ExtractToken(func(c echo.Context) error {
		got = Token(c)
		require.Nil(t, c.Get(ContextTokenKey))
		return nil
	})(ctx))
	require.Empty(t, got)

	ctx, _ = newContext("Bearer")
	require.NoError(t, ExtractToken(func(c echo.Context) error {
		require.Nil(t, c.Get(ContextTokenKey))
		return nil
	})(ctx))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	ctx, rec := newContext("")
	h := RequestLogger(log)(func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("inside")
		return c.String(http.StatusTeapot, "ok")
	})
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Contains(t, buf.String(), `"message":"inside"`)
	require.Contains(t, buf.String(), `"status":418`)
	require.Contains(t, buf.String(), `"message":"request"`)

	buf.Reset()
	ctx, _ = newContext("")
	h = RequestLogger(log)(func(echo.Context) error { return errors.New("boom") })
	require.Error(t, h(ctx))
	require.Contains(t, buf.String(), `"level":"error"`)
	require.Contains(t, buf.String(), `"error":"boom"`)
}
