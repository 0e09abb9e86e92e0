// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

// Package validation validates API request structs with go-playground/validator.
//
// A single validator instance is shared by all handlers. Field names in
// errors come from the struct's query tag, so messages name the parameter
// the client actually sent.
//
//	type PredictPriceRequest struct {
//	    Category   string `query:"category" validate:"required"`
//	    StockCount string `query:"stock_count" validate:"required,intstr"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    if verr.HasTag("required") { ... }
//	}
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// RequestValidationError collects every failed rule of a request.
type RequestValidationError struct {
	Fields []FieldError
}

// Error joins the field messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// HasTag reports whether any field failed the given rule.
func (ve *RequestValidationError) HasTag(tag string) bool {
	for _, f := range ve.Fields {
		if f.Tag == tag {
			return true
		}
	}
	return false
}

// GetValidator returns the shared validator, registering the custom rules
// on first use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(tagName)

		// intstr: string holding a base-10 int64.
		mustRegister("intstr", func(fl validator.FieldLevel) bool {
			_, err := strconv.ParseInt(strings.TrimSpace(fl.Field().String()), 10, 64)
			return err == nil
		})
		// floatstr: string holding a finite float64.
		mustRegister("floatstr", func(fl validator.FieldLevel) bool {
			f, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
			return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
		})
	})
	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// tagName prefers the query tag, then json, then the Go field name.
func tagName(fld reflect.StructField) string {
	for _, key := range []string{"query", "json"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// ValidateStruct validates s. It returns nil when every rule passes.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translateError(fe),
		}
	}
	return &RequestValidationError{Fields: fields}
}

// errorMessageTemplates maps the rules request structs use to messages.
var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"intstr":   "%s must be an integer",
	"floatstr": "%s must be a number",
}

func translateError(fe validator.FieldError) string {
	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, fe.Field())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
