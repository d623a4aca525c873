// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/eventscope/internal/geo"
)

// ErrorCode is the APIError code produced for every validation failure.
const ErrorCode = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// chipPattern matches a single upstream filter chip such as date:today or
// event_type:Virtual-Event.
var chipPattern = regexp.MustCompile(`^[a-z_]+:[A-Za-z0-9_-]+$`)

// ValidationError is a single failed rule on a single field.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the wire name of the field (its query or json tag), falling
// back to the Go field name.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the rule that failed.
func (e *ValidationError) Tag() string { return e.tag }

// Param returns the rule parameter, e.g. "100" for max=100.
func (e *ValidationError) Param() string { return e.param }

// Value returns the rejected value.
func (e *ValidationError) Value() interface{} { return e.value }

func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects every failed rule for one request.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual failures in field order.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i := range ve.errors {
		messages[i] = ve.errors[i].message
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors the api package's error body without importing it.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts the failures to an APIError. A single failure keeps its
// own message; several are joined and listed under details.fields.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errors) {
	case 0:
		return &APIError{Code: ErrorCode, Message: "Validation failed"}
	case 1:
		e := ve.errors[0]
		return &APIError{
			Code:    ErrorCode,
			Message: e.message,
			Details: map[string]interface{}{
				"field": e.field,
				"tag":   e.tag,
				"value": e.value,
			},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	messages := make([]string, len(ve.errors))
	for i, e := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   e.field,
			"tag":     e.tag,
			"message": e.message,
		}
		messages[i] = e.message
	}
	return &APIError{
		Code:    ErrorCode,
		Message: strings.Join(messages, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the shared validator, registering the custom rules on
// first use:
//
//   - chip: a key:value upstream filter chip
//   - geo.BoundingBox: coordinate ranges and min <= max on both axes
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(wireName)
		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("chip", validateChip)
		validate.RegisterStructValidation(validateBoundingBox, geo.BoundingBox{})
	})
	return validate
}

// wireName reports fields by their query parameter or JSON name so error
// messages refer to what the client actually sent.
func wireName(f reflect.StructField) string {
	for _, key := range []string{"query", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

func validateChip(fl validator.FieldLevel) bool {
	return chipPattern.MatchString(fl.Field().String())
}

func validateBoundingBox(sl validator.StructLevel) {
	box, ok := sl.Current().Interface().(geo.BoundingBox)
	if !ok {
		return
	}

	for _, c := range []struct {
		value  float64
		name   string
		field  string
		tag    string
		maxAbs float64
	}{
		{box.MinLat, "min_lat", "MinLat", "latitude", 90},
		{box.MaxLat, "max_lat", "MaxLat", "latitude", 90},
		{box.MinLon, "min_lon", "MinLon", "longitude", 180},
		{box.MaxLon, "max_lon", "MaxLon", "longitude", 180},
	} {
		if c.value < -c.maxAbs || c.value > c.maxAbs {
			sl.ReportError(c.value, c.name, c.field, c.tag, "")
		}
	}

	if box.MinLat > box.MaxLat {
		sl.ReportError(box.MaxLat, "max_lat", "MaxLat", "gtefield", "min_lat")
	}
	if box.MinLon > box.MaxLon {
		sl.ReportError(box.MaxLon, "max_lon", "MaxLon", "gtefield", "min_lon")
	}
}

// ValidateStruct validates s with the shared validator. It returns nil when
// every rule passes.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{
			errors: []ValidationError{{field: "unknown", tag: "unknown", message: err.Error()}},
		}
	}

	out := make([]ValidationError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translateError(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

var errorMessageTemplates = map[string]string{
	"required":  "%s is required",
	"latitude":  "%s must be a valid latitude (-90 to 90)",
	"longitude": "%s must be a valid longitude (-180 to 180)",
	"chip":      "%s must be a filter chip of the form key:value",
	"url":       "%s must be a valid URL",
}

var errorMessageWithParam = map[string]string{
	"oneof":         "%s must be one of: %s",
	"gte":           "%s must be greater than or equal to %s",
	"lte":           "%s must be less than or equal to %s",
	"gt":            "%s must be greater than %s",
	"lt":            "%s must be less than %s",
	"gtefield":      "%s must be greater than or equal to %s",
	"required_with": "%s is required together with %s",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	if tmpl, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := errorMessageWithParam[fe.Tag()]; ok {
		param := fe.Param()
		if fe.Tag() == "required_with" {
			param = snakeCase(param)
		}
		return fmt.Sprintf(tmpl, field, param)
	}
	return translateMinMax(fe, field, fe.Tag(), fe.Param())
}

func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}

// snakeCase turns Go field references such as "MaxLat MinLon" into the
// matching query names "max_lat min_lon".
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && s[i-1] != ' ' {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
