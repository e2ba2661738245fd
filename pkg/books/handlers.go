package books

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	bookService *Service
	publicURL   *url.URL
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	// Bind params.
	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	filters := params.Filters()
	page, pageSize := *params.Page, *params.PageSize

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		Filters:  filters,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	log.Info("listed books", logger.Data{
		"ids":       filters.IDs,
		"language":  filters.Languages,
		"mime_type": filters.MimeTypes,
		"topic":     filters.Topics,
		"author":    filters.Authors,
		"title":     filters.Titles,
		"page":      page,
		"page_size": pageSize,
		"count":     total,
	})

	resp := NewPage(h.linkBase(c), total, page, pageSize, NewBookResults(books))

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

// linkBase is the URL the pagination links are built from: the request's own
// path and query, on the public URL when one is configured.
func (h *handler) linkBase(c echo.Context) *url.URL {
	req := c.Request()
	u := &url.URL{
		Scheme:   c.Scheme(),
		Host:     req.Host,
		Path:     req.URL.Path,
		RawQuery: req.URL.RawQuery,
	}
	if h.publicURL != nil {
		u.Scheme = h.publicURL.Scheme
		u.Host = h.publicURL.Host
		u.Path = strings.TrimSuffix(h.publicURL.Path, "/") + req.URL.Path
	}
	return u
}
