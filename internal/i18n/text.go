package i18n

// Text is a translatable string stored as <prefix>en, <prefix>ar and
// <prefix>he columns when embedded with an embeddedPrefix.
type Text struct {
	En string `gorm:"column:en" json:"en"`
	Ar string `gorm:"column:ar" json:"ar"`
	He string `gorm:"column:he" json:"he"`
}

// In returns the value for l, falling back to English and then to the first
// non-empty translation.
func (t Text) In(l Locale) string {
	var v string
	switch l {
	case Arabic:
		v = t.Ar
	case Hebrew:
		v = t.He
	default:
		v = t.En
	}
	if v != "" {
		return v
	}
	if t.En != "" {
		return t.En
	}
	for _, alt := range []string{t.Ar, t.He} {
		if alt != "" {
			return alt
		}
	}
	return ""
}

func (t Text) IsEmpty() bool {
	return t.En == "" && t.Ar == "" && t.He == ""
}
