package i18n_test

import (
	"context"
	"testing"

	"paxala/internal/i18n"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := map[string]i18n.Locale{
		"en":    i18n.English,
		" AR ":  i18n.Arabic,
		"he-IL": i18n.Hebrew,
		"he_il": i18n.Hebrew,
	}
	for in, want := range cases {
		got, ok := i18n.Parse(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := i18n.Parse("fr")
	assert.False(t, ok)
	_, ok = i18n.Parse("")
	assert.False(t, ok)
}

func TestFromAcceptLanguage(t *testing.T) {
	l, ok := i18n.FromAcceptLanguage("fr-FR,fr;q=0.9,he;q=0.8,en;q=0.7")
	assert.True(t, ok)
	assert.Equal(t, i18n.Hebrew, l)

	_, ok = i18n.FromAcceptLanguage("de,fr")
	assert.False(t, ok)
}

func TestText_In(t *testing.T) {
	full := i18n.Text{En: "Showreel", Ar: "عرض", He: "שואוריל"}
	assert.Equal(t, "Showreel", full.In(i18n.English))
	assert.Equal(t, "عرض", full.In(i18n.Arabic))
	assert.Equal(t, "שואוריל", full.In(i18n.Hebrew))

	// Missing translation falls back to English.
	partial := i18n.Text{En: "Showreel"}
	assert.Equal(t, "Showreel", partial.In(i18n.Hebrew))

	// No English either: first available translation.
	onlyHe := i18n.Text{He: "שואוריל"}
	assert.Equal(t, "שואוריל", onlyHe.In(i18n.Arabic))

	assert.Equal(t, "", i18n.Text{}.In(i18n.English))
	assert.True(t, i18n.Text{}.IsEmpty())
}

func TestContext(t *testing.T) {
	assert.Equal(t, i18n.Default, i18n.FromContext(context.Background()))

	ctx := i18n.WithLocale(context.Background(), i18n.Arabic)
	assert.Equal(t, i18n.Arabic, i18n.FromContext(ctx))
	assert.True(t, i18n.Arabic.IsRTL())
	assert.False(t, i18n.English.IsRTL())
}
