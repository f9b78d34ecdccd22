package middleware

import (
	"paxala/internal/i18n"

	"github.com/gin-gonic/gin"
)

// Locale resolves the request locale from the x-locale header, then the
// NEXT_LOCALE cookie, then Accept-Language, and stores it on the request
// context and the x-locale header.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := resolveLocale(c)

		c.Request.Header.Set(i18n.Header, string(locale))
		c.Request = c.Request.WithContext(i18n.WithLocale(c.Request.Context(), locale))
		c.Header("Content-Language", string(locale))
		c.Next()
	}
}

func resolveLocale(c *gin.Context) i18n.Locale {
	if l, ok := i18n.Parse(c.GetHeader(i18n.Header)); ok {
		return l
	}
	if cookie, err := c.Cookie(i18n.CookieName); err == nil {
		if l, ok := i18n.Parse(cookie); ok {
			return l
		}
	}
	if l, ok := i18n.FromAcceptLanguage(c.GetHeader("Accept-Language")); ok {
		return l
	}
	return i18n.Default
}
