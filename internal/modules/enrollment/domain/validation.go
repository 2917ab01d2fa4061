package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const notBlankTag = "notblank"

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// report json names so messages match form field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && strings.TrimSpace(s) != ""
	})
	_ = validate.RegisterTranslation(notBlankTag, translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " is required"
		})
}

type FieldError struct {
	Field   string
	Message string
}

// ValidateStep checks the fields collected at one step.
func (f Form) ValidateStep(step Step) []FieldError {
	switch step {
	case StepPersonal:
		return collect(validate.Struct(f.Personal))
	case StepAddress:
		return collect(validate.Struct(f.Address))
	case StepAdditional:
		return collect(validate.Struct(f.Additional))
	default:
		return nil
	}
}

func (f Form) ValidateAll() []FieldError {
	out := []FieldError{}
	for step := StepPersonal; step <= StepAdditional; step++ {
		out = append(out, f.ValidateStep(step)...)
	}
	return out
}

func collect(err error) []FieldError {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: fe.Translate(translator)})
	}
	return out
}
