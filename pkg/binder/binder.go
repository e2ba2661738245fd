package binder

import (
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/segmentio/encoding/json"
	"github.com/shelfsearch/shelfsearch/pkg/errcodes"
)

var unknownFieldsRE = regexp.MustCompile(`^json: unknown field "(.*)"$`)

// MultiValuer is implemented by query structs whose parameters may be sent
// either as a repeated key or as a single comma-separated string.
type MultiValuer interface {
	MultiValueParams() []string
}

// Binder is a custom struct that implements the Echo Binder interface. It binds
// query parameters to a struct, uses mold to clean up the params, and validator
// to validate them.
type Binder struct {
	queryDecoder *schema.Decoder
	conform      *mold.Transformer
	validate     *validator.Validate
}

// New initializes a new Binder instance with the appropriate validation
// functions registered.
func New() (*Binder, error) {
	queryDecoder := schema.NewDecoder()
	queryDecoder.SetAliasTag("query")
	queryDecoder.IgnoreUnknownKeys(true)
	conform := modifiers.New()
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation(mimeType, mimeTypeValidator); err != nil {
		return nil, errors.WithStack(err)
	}

	return &Binder{queryDecoder, conform, validate}, nil
}

// Bind binds a JSON body, or the query string of a GET or DELETE request, to
// the given struct, then modifies and validates it. Every offending parameter
// is reported in one error. Unknown JSON fields are rejected, unknown query
// parameters are ignored.
func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	log := logger.FromEchoContext(c)

	if req.ContentLength > 0 {
		// request has a body
		if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
			return errcodes.UnsupportedMediaType()
		}
		dec := json.NewDecoder(req.Body)
		dec.DisallowUnknownFields()
		defer req.Body.Close()
		if err := dec.Decode(i); err != nil {
			// return better error message when there are unknown fields
			if matches := unknownFieldsRE.FindStringSubmatch(err.Error()); len(matches) > 1 {
				return errcodes.UnknownParameter(matches[1])
			}

			// return better error message on type errors
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				return errcodes.ValidationTypeError(formatUnmarshalTypeError(typeErr))
			}

			log.Err(err).Error("unknown json decode error")

			return errcodes.MalformedPayload()
		}
	} else {
		// request doesn't have a body
		if req.Method != http.MethodGet && req.Method != http.MethodDelete {
			return errcodes.EmptyRequestBody()
		}
		params := c.QueryParams()
		if mv, ok := i.(MultiValuer); ok {
			params = NormalizeMultiValues(params, mv.MultiValueParams()...)
		}
		if err := b.decodeQuery(i, params); err != nil {
			return err
		}
	}

	if err := b.conform.Struct(req.Context(), i); err != nil {
		return errors.WithStack(err)
	}

	if err := defaults.Set(i); err != nil {
		return errors.WithStack(err)
	}

	if err := b.validate.Struct(i); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return errors.WithStack(err)
		}
		fields := make([]errcodes.FieldError, 0, len(errs))
		for _, fe := range errs {
			fields = append(fields, errcodes.FieldError{
				Field:  baseField(fe.Field()),
				Reason: formatValidationError(fe),
			})
		}
		return errcodes.ValidationErrors(fields)
	}
	return nil
}

func (b *Binder) decodeQuery(i interface{}, params url.Values) error {
	err := b.queryDecoder.Decode(i, params)
	if err == nil {
		return nil
	}

	errs, ok := err.(schema.MultiError)
	if !ok {
		return errors.WithStack(err)
	}

	// MultiError is a map, so sort the keys to keep the report stable.
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]errcodes.FieldError, 0, len(errs))
	for _, k := range keys {
		switch e := errs[k].(type) {
		case schema.ConversionError:
			fields = append(fields, errcodes.FieldError{
				Field:  e.Key,
				Reason: formatSchemaConversionError(e),
			})
		default:
			return errors.WithStack(errs[k])
		}
	}
	return errcodes.ValidationErrors(fields)
}

// baseField strips the element index validator adds when diving into slices,
// so "ids[2]" is reported against "ids".
func baseField(field string) string {
	if idx := strings.IndexByte(field, '['); idx > 0 {
		return field[:idx]
	}
	return field
}
