package client

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

func init() {
	validate = validator.New()
	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("client: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}

// requestDescriptor is the validated shape of an outgoing request.
type requestDescriptor struct {
	Method string `json:"method" validate:"required,oneof=GET POST PUT PATCH DELETE"`
	URL    string `json:"url" validate:"required,url"`
}

// checkRequest validates the request descriptor before any encoding
// or network work happens.
func checkRequest(method, url string) error {
	desc := requestDescriptor{Method: method, URL: url}
	if err := validate.Struct(desc); err != nil {
		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		var fields FieldErrors
		for _, verror := range verrors {
			fields = append(fields, FieldError{
				Field: verror.Field(),
				Err:   verror.Translate(translator),
			})
		}
		return fields
	}

	return nil
}

// FieldError represents a single validation error for a specific field.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors is the collection of field validation errors for one request.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, f := range fe {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Err))
	}

	return "invalid request: " + strings.Join(msgs, "; ")
}
