package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const notBlankTag = "notblank"

var (
	translator ut.Translator
	setupOnce  sync.Once
)

// RegisterGinValidator configures gin's binding validator with JSON field
// names, English messages and the custom tags used by request DTOs.
func RegisterGinValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_en := en.New()
		uni := ut.New(_en, _en)
		translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, translator)

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation(notBlankTag, notBlank)
		_ = v.RegisterTranslation(notBlankTag, translator,
			func(ut.Translator) error { return nil },
			func(_ ut.Translator, fe validator.FieldError) string {
				return fe.Field() + " cannot be blank"
			})
	})
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	for field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

// FromBinding turns a binding failure into Errors. Anything other than
// validator field errors (malformed JSON, type mismatches) is returned
// as a single violation without a field.
func FromBinding(err error) Errors {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Message: "invalid request body"}}
	}

	errs := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fe.Error()
		if translator != nil {
			msg = fe.Translate(translator)
		}
		errs = append(errs, Violation{Field: fe.Field(), Message: msg})
	}
	return errs
}
