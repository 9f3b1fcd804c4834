package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/nutri-api/internal/errs"
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads that know how to validate themselves.
// Payloads are pointers so c.Bind can populate them.
type Validatable interface {
	Validate() error
}

// MessageKeyer lets a payload choose the localized message of its 400 response.
type MessageKeyer interface {
	MessageKey() string
}

// Identified is implemented by payloads that address a single record. On
// routes with an :id segment the payload must address that same record.
type Identified interface {
	Identifier() string
}

// CustomValidationError represents a single issue that cannot be expressed via tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// KeyedValidationError is a rejection that carries its own localized message
// key, overriding the payload's MessageKey.
type KeyedValidationError struct {
	Key    string
	Errors CustomValidationErrors
}

func (e KeyedValidationError) Error() string {
	return e.Errors.Error()
}

func (e KeyedValidationError) Unwrap() error {
	return e.Errors
}

func init() {
	// Report fields by their JSON names ("nameFood", not "NameFood").
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
}

// Struct runs the shared validator over v.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate binds path params and the JSON body into payload, then
// validates it. Any failure yields a 400 *errs.HTTPError that the caller
// must return as is; nothing past a failed validation may touch the store.
func BindAndValidate(c echo.Context, payload Validatable) error {
	message := invalidMessage(c, payload)

	if err := c.Bind(payload); err != nil {
		return errs.NewValidationError(message, bindFieldErrors(err)).WithCause(err)
	}

	if err := checkPathID(c, payload); err != nil {
		return err
	}

	if err := payload.Validate(); err != nil {
		var keyed KeyedValidationError
		if errors.As(err, &keyed) {
			message = i18n.FromContext(c.Request().Context(), keyed.Key)
		}
		return errs.NewValidationError(message, extractValidationError(err)).WithCause(err)
	}

	return nil
}

// checkPathID rejects a body id that differs from the :id path segment.
// Echo binds the path before the body, so a body id would otherwise win.
func checkPathID(c echo.Context, payload Validatable) error {
	pathID := c.Param("id")
	identified, ok := payload.(Identified)
	if pathID == "" || !ok || identified.Identifier() == pathID {
		return nil
	}

	return errs.NewValidationError(
		i18n.FromContext(c.Request().Context(), i18n.MsgInvalidID),
		[]errs.FieldError{{Field: "id", Error: "does not match the id in the path"}},
	)
}

func invalidMessage(c echo.Context, payload Validatable) string {
	key := i18n.MsgInvalidData
	if keyer, ok := payload.(MessageKeyer); ok {
		key = keyer.MessageKey()
	}
	return i18n.FromContext(c.Request().Context(), key)
}

// bindFieldErrors turns decoder failures into field errors. A JSON string
// sent for a numeric field is reported as a type error on that field.
func bindFieldErrors(err error) []errs.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []errs.FieldError{{
			Field: field,
			Error: fmt.Sprintf("must be of type %s, got %s", jsonKind(typeErr.Type), typeErr.Value),
		}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []errs.FieldError{{Field: "body", Error: "malformed JSON"}}
	}

	return []errs.FieldError{{Field: "body", Error: "could not be decoded"}}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, e := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		field := err.Field()
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		case "uuid":
			msg = "must be a valid UUID"

		case "notblank":
			msg = "must not be blank"

		default:
			if values, ok := enumValues(err.Tag()); ok {
				msg = enumMessage(values)
			} else if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return fieldErrors
}

