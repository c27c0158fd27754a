package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Routes collects what Register mounts. Nil optional fields leave their
// route or middleware out.
type Routes struct {
	Health    *Handler
	Materials *MaterialHandler
	Counts    *CountHandler

	Metrics http.Handler
	// CountGuard wraps POST /counts, e.g. with idempotency.
	CountGuard echo.MiddlewareFunc
	// UploadMaxBytes caps the request body of the import endpoints.
	UploadMaxBytes int64
}

func Register(e *echo.Echo, r Routes) {
	e.GET("/health", r.Health.Health)

	mats := e.Group("/materials")
	mats.GET("/lookup", r.Materials.Lookup)
	imports := mats.Group("/import")
	if r.UploadMaxBytes > 0 {
		// multipart framing on top of the file itself
		imports.Use(echomw.BodyLimit(fmt.Sprintf("%dK", r.UploadMaxBytes/1024+64)))
	}
	imports.POST("", r.Materials.Import)
	imports.POST("/preview", r.Materials.Preview)

	counts := e.Group("/counts")
	var guards []echo.MiddlewareFunc
	if r.CountGuard != nil {
		guards = append(guards, r.CountGuard)
	}
	counts.POST("", r.Counts.Create, guards...)
	counts.GET("", r.Counts.List)
	counts.GET("/export", r.Counts.Export)

	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}
}
