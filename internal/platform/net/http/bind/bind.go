// Package bind decodes and validates request input into project errors
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "scopetrack/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// MaxJSONBytes caps ParseJSON reads
const MaxJSONBytes int64 = 1 << 20

type checker struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	once sync.Once
	chk  checker
)

func get() checker {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = entrans.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("oneof_fold", oneOfFold)
		for tag, text := range map[string]string{
			"min":        "{0} must be at least {1}",
			"max":        "{0} must be at most {1}",
			"oneof_fold": "{0} must be one of [{1}]",
		} {
			registerMessage(v, trans, tag, text)
		}
		chk = checker{v: v, trans: trans}
	})
	return chk
}

// jsonName reports fields by their wire name
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// oneOfFold is oneof without case; empty passes so it pairs with omitempty style fields
func oneOfFold(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	for _, opt := range strings.Fields(fl.Param()) {
		if strings.EqualFold(val, opt) {
			return true
		}
	}
	return false
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// ParseJSON decodes one JSON object into T and validates it
// unknown fields, trailing data and oversized bodies are JSON errors; bad values are validation errors
func ParseJSON[T any](r *http.Request) (T, error) {
	var zero, dst T
	if r.Body == nil {
		return zero, perr.JSONErrf("empty body")
	}
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxJSONBytes))
	dec.DisallowUnknownFields()
	switch err := dec.Decode(&dst); {
	case errors.Is(err, io.EOF):
		return zero, perr.JSONErrf("empty body")
	case err != nil:
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Struct validates v and returns the first failing field as a validation error
func Struct(v any) error {
	err := get().v.Struct(v)
	if err == nil {
		return nil
	}
	field, msg := FieldMessage(err)
	return perr.WithField(perr.Validationf("%s", msg), field)
}

// FieldMessage translates the first validator failure
func FieldMessage(err error) (field, msg string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(get().trans)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}
