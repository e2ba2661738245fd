package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	mimeTypeRE = regexp.MustCompile(`^[\w-]+/?$`)
)

// mimeTypeValidator accepts the type component of a media type, optionally
// followed by a single slash ("text", "application/").
func mimeTypeValidator(fl validator.FieldLevel) bool {
	return mimeTypeRE.MatchString(fl.Field().String())
}
