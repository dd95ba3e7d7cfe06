package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	msg := T("not_a_plain_object", nil)
	assert.NotEqual(t, "not_a_plain_object", msg)
	assert.NotEmpty(t, msg)

	SetLanguage("ja")
	assert.NotEqual(t, msg, T("not_a_plain_object", nil))

	// reset to en
	SetLanguage("en")
	assert.Equal(t, msg, T("not_a_plain_object", nil))
}

func TestTranslator_UnknownCodeEchoes(t *testing.T) {
	assert.Equal(t, "no_such_code", T("no_such_code", nil))
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	assert.Equal(t, "X:union_unresolved", T("union_unresolved", nil))
	SetTranslator(nil)
	assert.Equal(t, "value matches no union alternative", T("union_unresolved", nil))
}
