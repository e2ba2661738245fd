package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
)

const (
	alpha    = "alpha"
	gte      = "gte"
	length   = "len"
	mimeType = "mime_type"
	mx       = "max"
	mn       = "min"
	oneof    = "oneof"
	required = "required"
)

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatSchemaConversionError(err schema.ConversionError) string {
	field := err.Key
	if err.Index >= 0 {
		field = fmt.Sprintf("%s[%d]", err.Key, err.Index)
	}
	return fmt.Sprintf("%q should be of type %s", field, err.Type)
}

func isNumeric(kind reflect.Kind) bool {
	//exhaustive:ignore
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func plural(resource, param string) string {
	if param != "1" {
		return resource + "s"
	}
	return resource
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case alpha:
		return fmt.Sprintf("%q must contain only letters", field)
	case gte:
		return fmt.Sprintf("%q must be greater than or equal to %s", field, err.Param())
	case length:
		if isNumeric(err.Kind()) {
			return fmt.Sprintf("%q must be equal to %s", field, err.Param())
		}
		resource := "character"
		if err.Kind() == reflect.Slice {
			resource = "element"
		}
		return fmt.Sprintf("%q length must be exactly %s %s", field, err.Param(), plural(resource, err.Param()))
	case mimeType:
		return fmt.Sprintf("%q must be a media type such as \"text\" or \"application/\"", field)
	case mx:
		if isNumeric(err.Kind()) {
			return fmt.Sprintf("%q must be less than or equal to %s", field, err.Param())
		}
		resource := "character"
		if err.Kind() == reflect.Slice {
			resource = "element"
		}
		return fmt.Sprintf("%q length must be less than or equal to %s %s", field, err.Param(), plural(resource, err.Param()))
	case mn:
		if isNumeric(err.Kind()) {
			return fmt.Sprintf("%q must be greater than or equal to %s", field, err.Param())
		}
		resource := "character"
		if err.Kind() == reflect.Slice {
			resource = "element"
		}
		return fmt.Sprintf("%q length must be greater than or equal to %s %s", field, err.Param(), plural(resource, err.Param()))
	case oneof:
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", "))
	case required:
		return fmt.Sprintf("%q is required", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
