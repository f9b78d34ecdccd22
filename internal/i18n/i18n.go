// Package i18n holds the locale set served by the studio site and the
// per-locale text columns stored on content models.
package i18n

import (
	"context"
	"strings"
)

type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"
	Hebrew  Locale = "he"

	Default = English
)

// Header is set by the locale middleware and read by handlers.
const Header = "x-locale"

// CookieName is the cookie written by the website's language switcher.
const CookieName = "NEXT_LOCALE"

var supported = []Locale{English, Arabic, Hebrew}

type ctxKey struct{}

// Supported returns the locales in display order.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Parse normalizes s ("he-IL", " AR ") to a supported locale.
func Parse(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	for _, l := range supported {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// FromAcceptLanguage picks the first supported tag of an Accept-Language value.
// Quality weights are ignored; browsers already send tags in preference order.
func FromAcceptLanguage(header string) (Locale, bool) {
	for _, part := range strings.Split(header, ",") {
		tag := part
		if i := strings.Index(tag, ";"); i >= 0 {
			tag = tag[:i]
		}
		if l, ok := Parse(tag); ok {
			return l, true
		}
	}
	return "", false
}

func WithLocale(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func FromContext(ctx context.Context) Locale {
	if l, ok := ctx.Value(ctxKey{}).(Locale); ok {
		return l
	}
	return Default
}

// IsRTL reports whether the locale is written right-to-left.
func (l Locale) IsRTL() bool {
	return l == Arabic || l == Hebrew
}
