package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"

	"ops-dashboard/internal/middleware"
)

type requestValidator struct {
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
}

var defaultValidator = &requestValidator{}

func (v *requestValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New(validator.WithRequiredStructEnabled())
		v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"query", "json"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})

		locale := en.New()
		uni := ut.New(locale, locale)
		v.translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v.validate, v.translator)
	})
}

func (v *requestValidator) Struct(obj any) error {
	v.lazyinit()
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return middleware.BadRequest(verrs[0].Translate(v.translator))
	}
	return middleware.BadRequest(err.Error())
}

// parseQuery binds the query string into out and validates it.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}
	return defaultValidator.Struct(out)
}
