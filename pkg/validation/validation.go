package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	dErrors "tenderai/pkg/domain-errors"
	s "tenderai/pkg/platform/strings"
)

// isoTimestamp is the strict wire format for timestamps.
var isoTimestamp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{1,6})?(?:Z|[+-]\d{2}:\d{2})$`)

// ParseISO8601 parses a strict ISO-8601 timestamp.
func ParseISO8601(value string) (time.Time, bool) {
	if !isoTimestamp.MatchString(value) {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Validator wraps go-playground/validator with the custom tags used for
// wire DTOs: notblank, wholenum, iso8601 and any registered enums.
type Validator struct {
	v     *validator.Validate
	enums map[string][]string
}

// Option registers extra rules on a Validator.
type Option func(*Validator)

// Enum registers tag as a closed set of allowed string values.
func Enum[T ~string](tag string, allowed ...T) Option {
	values := make([]string, len(allowed))
	for i, a := range allowed {
		values[i] = string(a)
	}
	return func(val *Validator) {
		val.enums[tag] = values
		_ = val.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return slices.Contains(values, fl.Field().String())
		})
	}
}

var defaultValidator = New()

// New builds a Validator whose field names come from json tags.
func New(opts ...Option) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return s.ToSnakeCase(fld.Name)
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("wholenum", func(fl validator.FieldLevel) bool {
		switch fl.Field().Kind() {
		case reflect.Float32, reflect.Float64:
			f := fl.Field().Float()
			return !math.IsInf(f, 0) && f == math.Trunc(f)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, ok := ParseISO8601(fl.Field().String())
		return ok
	})

	val := &Validator{v: v, enums: map[string][]string{}}
	for _, opt := range opts {
		opt(val)
	}
	return val
}

// FieldError describes the first field that failed validation.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   any
	Allowed []string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason()
}

// Reason is the human readable rule that failed.
func (e *FieldError) Reason() string {
	if len(e.Allowed) > 0 {
		return "must be one of: " + strings.Join(e.Allowed, ", ")
	}
	switch e.Tag {
	case "required":
		return "is required"
	case "notblank":
		return "must be a non-empty string"
	case "wholenum":
		return "must be a whole number"
	case "iso8601":
		return "must be an ISO-8601 timestamp"
	case "gte", "min":
		return "must be >= " + e.Param
	case "lte", "max":
		return "must be <= " + e.Param
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(e.Param, " ", ", ")
	case "type":
		switch e.Param {
		case "array", "object":
			return "must be an " + e.Param
		}
		return "must be a " + e.Param
	}
	return "is invalid"
}

// Struct validates st and returns the first failing field as *FieldError.
func (val *Validator) Struct(st any) error {
	err := val.v.Struct(st)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}
	fe := validationErrs[0]
	field := fe.Field()
	if field == "" {
		field = s.ToSnakeCase(fe.StructField())
	}
	return &FieldError{
		Field:   field,
		Tag:     fe.Tag(),
		Param:   fe.Param(),
		Value:   fe.Value(),
		Allowed: val.enums[fe.Tag()],
	}
}

// CheckDTO validates a wire DTO and reports the failing field together with
// the entity name and id, e.g. "invalid TeamMemberDTO.completion_rate (id=m2): must be <= 100, got 150".
func (val *Validator) CheckDTO(entity, id string, dto any) error {
	err := val.Struct(dto)
	if err == nil {
		return nil
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		return dErrors.Wrap(err, dErrors.CodeInvalidDTO, fmt.Sprintf("invalid %s: %v", entity, err))
	}
	where := ""
	if id != "" {
		where = fmt.Sprintf(" (id=%s)", id)
	}
	return &dErrors.Error{
		Code:    dErrors.CodeInvalidDTO,
		Message: fmt.Sprintf("invalid %s.%s%s: %s, got %s", entity, fe.Field, where, fe.Reason(), describe(fe.Value)),
		Err:     fe,
	}
}

// DecodeDTO unmarshals one wire row. A field holding the wrong JSON type is
// reported the way CheckDTO reports a failed rule, e.g.
// "invalid TeamMemberDTO.completion_rate (id=m2): must be a number, got \"high\"".
// On such an error the returned DTO still carries every field that decoded.
func DecodeDTO[D any](entity string, raw json.RawMessage) (D, error) {
	var dto D
	err := json.Unmarshal(raw, &dto)
	if err == nil {
		return dto, nil
	}

	var fields map[string]json.RawMessage
	_ = json.Unmarshal(raw, &fields)
	where := ""
	if rowID := rawID(fields["id"]); rowID != "" {
		where = fmt.Sprintf(" (id=%s)", rowID)
	}

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return dto, &dErrors.Error{
			Code:    dErrors.CodeInvalidDTO,
			Message: fmt.Sprintf("invalid %s%s: %v", entity, where, err),
			Err:     err,
		}
	}

	fe := &FieldError{Field: typeErr.Field, Tag: "type", Param: jsonKind(typeErr.Type), Value: typeErr.Value}
	name, got := entity, typeErr.Value
	if fe.Field != "" {
		name += "." + fe.Field
		top, _, _ := strings.Cut(fe.Field, ".")
		if v, ok := fields[top]; ok {
			got = string(v)
		}
	}
	return dto, &dErrors.Error{
		Code:    dErrors.CodeInvalidDTO,
		Message: fmt.Sprintf("invalid %s%s: %s, got %s", name, where, fe.Reason(), got),
		Err:     fe,
	}
}

func rawID(raw json.RawMessage) string {
	var str string
	if json.Unmarshal(raw, &str) == nil {
		return str
	}
	var num json.Number
	if json.Unmarshal(raw, &num) == nil {
		return num.String()
	}
	return ""
}

// jsonKind names the JSON type a Go type decodes from.
func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	}
	return t.String()
}

func describe(v any) string {
	if v == nil {
		return "nothing"
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "nothing"
		}
		v = rv.Elem().Interface()
	}
	if str, ok := v.(string); ok {
		return fmt.Sprintf("%q", str)
	}
	return fmt.Sprintf("%v", v)
}

// Check validates an outgoing request payload. Failures are CodeInvalidInput
// so they can be reported before any request is sent.
func (val *Validator) Check(req any) error {
	if err := val.Struct(req); err != nil {
		return &dErrors.Error{Code: dErrors.CodeInvalidInput, Message: ErrorMessage(err), Err: err}
	}
	return nil
}

// Validate validates a request struct with the default rules and returns a
// domain error suitable for callers.
func Validate(req any) error {
	return defaultValidator.Check(req)
}

// ErrorMessage converts a validation error into a human-readable message.
func ErrorMessage(err error) string {
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field == "" {
		return "invalid request body"
	}
	return fe.Error()
}
