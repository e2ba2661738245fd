package books

// ListBooksQuery is the query string of GET /books. The multi-valued fields
// accept either a repeated key or a single comma separated string.
type ListBooksQuery struct {
	IDs       []int    `query:"ids" json:"ids,omitempty" validate:"omitempty,dive,min=1"`
	Languages []string `query:"language" json:"language,omitempty" validate:"omitempty,dive,len=2,alpha"`
	MimeTypes []string `query:"mime_type" json:"mime_type,omitempty" validate:"omitempty,dive,mime_type"`
	Topics    []string `query:"topic" json:"topic,omitempty" validate:"omitempty,dive,max=100"`
	Authors   []string `query:"author" json:"author,omitempty" validate:"omitempty,dive,max=150"`
	Titles    []string `query:"title" json:"title,omitempty" validate:"omitempty,dive,max=200"`
	Page      *int     `query:"page" json:"page" default:"1" validate:"min=1"`
	PageSize  *int     `query:"page_size" json:"page_size" default:"25" validate:"min=1,max=25"`
}

func (ListBooksQuery) MultiValueParams() []string {
	return []string{"ids", "language", "mime_type", "topic", "author", "title"}
}
