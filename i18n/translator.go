package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_input_kind":
			return "入力はオブジェクトまたは配列である必要があります"
		case "invalid_schema_kind":
			return "スキーマの種類が不正です"
		case "not_an_object":
			return "入力がオブジェクトではありません"
		case "not_a_plain_object":
			return "入力がプレーンなオブジェクトではありません"
		case "not_a_record_schema":
			return "スキーマがレコード型ではありません"
		case "union_unresolved":
			return "ユニオンのどの候補にも一致しません"
		case "cyclic_schema":
			return "遅延参照が解決できません"
		case "too_many_entities":
			return "エンティティ数が上限を超えました"
		case "too_deep":
			return "ネストが深すぎます"
		}
	default: // "en"
		switch code {
		case "invalid_input_kind":
			return "expected input to be an object or an array"
		case "invalid_schema_kind":
			return "schema kind does not match the input"
		case "not_an_object":
			return "input is not an object"
		case "not_a_plain_object":
			return "input was expected to be a plain object"
		case "not_a_record_schema":
			return "schema is not a record"
		case "union_unresolved":
			return "value matches no union alternative"
		case "cyclic_schema":
			return "lazy schema never resolves to a concrete node"
		case "too_many_entities":
			return "too many entities"
		case "too_deep":
			return "value is nested too deeply"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
