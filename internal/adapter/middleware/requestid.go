package middleware

import (
	"bicocont/pkg/id"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RequestID keeps a well-formed incoming X-Request-ID and otherwise issues
// a fresh 32-hex id.
func RequestID() echo.MiddlewareFunc {
	assign := echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: id.NewID32})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := assign(next)
		return func(c echo.Context) error {
			req := c.Request()
			if rid := req.Header.Get(echo.HeaderXRequestID); rid != "" && !id.Valid(rid) {
				req.Header.Del(echo.HeaderXRequestID)
			}
			return h(c)
		}
	}
}
