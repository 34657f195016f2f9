package client

import (
	"encoding/json"
	"strconv"
)

// Сервер отвечает на запуск и retry в нескольких формах в зависимости
// от версии: {"executionId": ...}, {"data": {"executionId": ...}},
// {"id": ...}, {"data": {"id": ...}}. Вместо неявного "поищем где-нибудь"
// формы перечислены явным упорядоченным списком экстракторов: первый
// непустой результат побеждает.

var executionIDExtractors = []func(m map[string]any) string{
	func(m map[string]any) string { return stringField(m, "executionId") },
	func(m map[string]any) string { return stringField(nested(m, "data"), "executionId") },
	func(m map[string]any) string { return stringField(m, "id") },
	func(m map[string]any) string { return stringField(nested(m, "data"), "id") },
}

// extractExecutionID достаёт идентификатор execution из тела ответа.
// Возвращает "" если не нашёл; ошибкой это становится у вызывающего.
func extractExecutionID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return ""
	}
	for _, extract := range executionIDExtractors {
		if id := extract(m); id != "" {
			return id
		}
	}
	return ""
}

// nested возвращает вложенный объект по ключу, либо nil.
func nested(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]any)
	return sub
}

// stringField возвращает строковое значение поля.
// Числовые идентификаторы приводятся к строке.
func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
