package i18n

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiateExplicitQuery(t *testing.T) {
	assert.Equal(t, Telugu, Negotiate("telugu", ""))
	assert.Equal(t, English, Negotiate("english", "te"))
}

func TestNegotiateAcceptLanguage(t *testing.T) {
	assert.Equal(t, Telugu, Negotiate("", "te"))
	assert.Equal(t, Telugu, Negotiate("", "te-IN,te;q=0.9,en;q=0.5"))
	assert.Equal(t, English, Negotiate("", "en-US,en;q=0.9"))
}

func TestNegotiateFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, English, Negotiate("", ""))
	assert.Equal(t, English, Negotiate("klingon", "garbage"))
	assert.Equal(t, English, Negotiate("", "fr-FR"))
}

func TestBundlesAreComplete(t *testing.T) {
	for lang, bundle := range bundles {
		v := reflect.ValueOf(bundle)
		for i := 0; i < v.NumField(); i++ {
			assert.NotEmpty(t, v.Field(i).String(),
				"%s missing %s", lang, v.Type().Field(i).Name)
		}
	}
}

func TestForUnknownLanguage(t *testing.T) {
	assert.Equal(t, bundles[English], For(Language("klingon")))
}

func TestValidationKeyMapping(t *testing.T) {
	b := For(English)

	assert.Equal(t, b.InvalidEmail, b.Validation("email_invalid"))
	assert.Equal(t, b.PasswordLength, b.Validation("password_length"))
	assert.Equal(t, b.PasswordMismatch, b.Validation("password_mismatch"))

	// Unknown keys pass through so the client still sees something.
	assert.Equal(t, "odd_key", b.Validation("odd_key"))
}

func TestTags(t *testing.T) {
	assert.Equal(t, "en", English.Tag().String())
	assert.Equal(t, "te", Telugu.Tag().String())
}
