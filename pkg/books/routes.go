package books

import (
	"github.com/labstack/echo/v4"
	"github.com/shelfsearch/shelfsearch/pkg/config"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config) {
	bookService := NewService(db)

	h := &handler{
		bookService: bookService,
		publicURL:   cfg.PublicBaseURL(),
	}

	g := e.Group("/books")
	g.GET("", h.list)
}
