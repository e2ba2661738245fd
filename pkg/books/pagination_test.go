package books

import (
	"net/url"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	base := mustParse(t, "http://localhost:8000/books?topic=fiction&page=2&page_size=1")

	t.Run("middle page links both ways", func(tt *testing.T) {
		p := NewPage(base, 3, 2, 1, []BookResult{{ID: 2}})
		assert.Equal(tt, 3, p.Count)
		assert.Equal(tt, 2, p.Page)
		assert.Equal(tt, 1, p.PageSize)
		require.NotNil(tt, p.Next)
		require.NotNil(tt, p.Previous)
		assert.Equal(tt, "http://localhost:8000/books?page=3&page_size=1&topic=fiction", *p.Next)
		assert.Equal(tt, "http://localhost:8000/books?page=1&page_size=1&topic=fiction", *p.Previous)
	})

	t.Run("last page has no next", func(tt *testing.T) {
		p := NewPage(base, 3, 3, 1, []BookResult{{ID: 3}})
		assert.Nil(tt, p.Next)
		assert.NotNil(tt, p.Previous)
	})

	t.Run("first page has no previous", func(tt *testing.T) {
		p := NewPage(base, 3, 1, 1, []BookResult{{ID: 1}})
		assert.NotNil(tt, p.Next)
		assert.Nil(tt, p.Previous)
	})

	t.Run("exact multiple has no next", func(tt *testing.T) {
		p := NewPage(base, 50, 2, 25, nil)
		assert.Nil(tt, p.Next)
	})

	t.Run("no matches", func(tt *testing.T) {
		p := NewPage(base, 0, 1, 25, nil)
		assert.Nil(tt, p.Next)
		assert.Nil(tt, p.Previous)

		b, err := json.Marshal(p)
		require.NoError(tt, err)
		assert.JSONEq(tt, `{"count":0,"page":1,"page_size":25,"next":null,"previous":null,"results":[]}`, string(b))
	})

	t.Run("pins the effective page size", func(tt *testing.T) {
		p := NewPage(mustParse(tt, "http://localhost/books?language=en"), 60, 1, 25, nil)
		require.NotNil(tt, p.Next)
		assert.Equal(tt, "http://localhost/books?language=en&page=2&page_size=25", *p.Next)
	})

	t.Run("does not modify the base url", func(tt *testing.T) {
		_ = NewPage(base, 3, 2, 1, nil)
		assert.Equal(tt, "topic=fiction&page=2&page_size=1", base.RawQuery)
	})
}
