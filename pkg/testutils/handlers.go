package testutils

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

type createBooksPayload struct {
	Books []BookFixture `json:"books" validate:"required,min=1,dive"`
}

type createBooksResponse struct {
	Created int `json:"created"`
}

// createBooks stores the books in the request body.
// POST /test/books.
func (h *handler) createBooks(c echo.Context) error {
	ctx := c.Request().Context()

	params := createBooksPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	for _, f := range params.Books {
		if _, err := CreateBook(ctx, h.db, f); err != nil {
			return errors.Wrap(err, "failed to create book")
		}
	}

	return c.JSON(http.StatusCreated, createBooksResponse{Created: len(params.Books)})
}

type deleteBooksResponse struct {
	Deleted int `json:"deleted"`
}

// deleteBooks empties the catalog.
// DELETE /test/books.
func (h *handler) deleteBooks(c echo.Context) error {
	deleted, err := DeleteCatalog(c.Request().Context(), h.db)
	if err != nil {
		return errors.Wrap(err, "failed to delete books")
	}

	return c.JSON(http.StatusOK, deleteBooksResponse{Deleted: deleted})
}
