package books

import (
	"net/url"
	"strconv"
)

// Page is the envelope around one page of results.
type Page struct {
	Count    int          `json:"count"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Next     *string      `json:"next"`
	Previous *string      `json:"previous"`
	Results  []BookResult `json:"results"`
}

// NewPage wraps results. The next and previous links are built from base,
// keeping its query parameters but replacing page and pinning page_size to the
// size that was actually used.
func NewPage(base *url.URL, count, page, pageSize int, results []BookResult) Page {
	if results == nil {
		results = []BookResult{}
	}

	p := Page{
		Count:    count,
		Page:     page,
		PageSize: pageSize,
		Results:  results,
	}

	if page*pageSize < count {
		p.Next = pageLink(base, page+1, pageSize)
	}
	if page > 1 {
		p.Previous = pageLink(base, page-1, pageSize)
	}

	return p
}

func pageLink(base *url.URL, page, pageSize int) *string {
	u := *base
	q := base.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
