package middleware

import (
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

// LocaleKey stores the resolved language in the Echo context.
const LocaleKey = "locale"

// Locale resolves the response language from ?lang=, then Accept-Language,
// then fallback, and stores it in the Echo and Go contexts.
func Locale(fallback language.Tag) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tag := i18n.ResolveTag(c.Request(), fallback)

			c.Set(LocaleKey, tag)
			c.SetRequest(c.Request().WithContext(i18n.WithTag(c.Request().Context(), tag)))
			c.Response().Header().Set("Content-Language", tag.String())

			return next(c)
		}
	}
}

// GetLocale returns the request language, Portuguese when Locale did not run.
func GetLocale(c echo.Context) language.Tag {
	if tag, ok := c.Get(LocaleKey).(language.Tag); ok {
		return tag
	}
	return i18n.Portuguese
}
