package server

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/shelfsearch/shelfsearch/pkg/binder"
	"github.com/shelfsearch/shelfsearch/pkg/books"
	"github.com/shelfsearch/shelfsearch/pkg/config"
	"github.com/shelfsearch/shelfsearch/pkg/errcodes"
	"github.com/shelfsearch/shelfsearch/pkg/testutils"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

type Options struct {
	// TestRoutes registers the /test endpoints used to seed the catalog.
	TestRoutes bool
}

func New(cfg *config.Config, db *bun.DB, opts Options) (*http.Server, error) {
	e, err := NewEcho(cfg, db, opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

// NewEcho builds the router with every middleware and route registered.
func NewEcho(cfg *config.Config, db *bun.DB, opts Options) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b
	e.JSONSerializer = &jsonSerializer{}

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))
	if cfg.RateLimitPerSecond > 0 {
		store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(cfg.RateLimitPerSecond),
			Burst: int(math.Max(1, math.Ceil(cfg.RateLimitPerSecond))),
		})
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: healthSkipper,
			Store:   store,
			DenyHandler: func(_ echo.Context, _ string, _ error) error {
				return errcodes.TooManyRequests()
			},
		}))
	}
	if cfg.QueryTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Skipper: healthSkipper,
			Timeout: cfg.QueryTimeout,
			// Store timeouts are reported by the service as execution errors.
			ErrorHandler: func(err error, _ echo.Context) error {
				return err
			},
		}))
	}

	health.RegisterRoutes(e)

	books.RegisterRoutes(e, db, cfg)

	if opts.TestRoutes {
		testutils.RegisterRoutes(e, db)
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

func healthSkipper(c echo.Context) bool {
	return c.Path() == "/health"
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
