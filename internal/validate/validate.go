package validate

import (
	"fmt"
	"strings"

	"github.com/mdwit/spec2registry/internal/registry"
)

// Result — итог проверки payload'а. Невалидность — ожидаемый
// результат, сообщаемый через MissingFields, а не ошибка.
type Result struct {
	Valid                 bool             `json:"valid"`
	MissingFields         []string         `json:"missingFields"`
	ServerDefaultedFields []string         `json:"serverDefaultedFields"`
	RecommendedFields     []Recommendation `json:"recommendedFields,omitempty"`
	Warnings              []string         `json:"warnings,omitempty"`
	Hints                 []string         `json:"hints,omitempty"`
}

// Recommendation — поле с неиспользованным рекомендованным значением
type Recommendation struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Validate проверяет payload против метаданных ресурса в реестре.
// Чистая функция от входов и снимка реестра, без побочных эффектов.
// Неизвестный ключ ресурса всегда валиден: проверять нечего.
func Validate(reg *registry.Registry, key, op string, payload map[string]any) Result {
	result := Result{
		Valid:                 true,
		MissingFields:         []string{},
		ServerDefaultedFields: []string{},
	}

	desc, ok := reg.Lookup(key)
	if !ok || len(desc.Fields) == 0 {
		return result
	}

	op = normalizeOp(op)

	// 1. поля без дефолта, обязательные для операции:
	// отсутствие делает payload невалидным
	userRequired := map[string]bool{}
	for _, field := range desc.Fields.UserRequiredFields(op) {
		userRequired[field] = true
		if missing(payload, field) {
			result.MissingFields = append(result.MissingFields, field)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("required field %q must be provided for %s", field, op))
		}
	}

	// 2. серверно-дефолтные поля (надмножество номинально обязательных,
	// которые сервер заполнит сам): информационно, на валидность не влияет
	for _, field := range desc.Fields.ServerDefaultFields() {
		if userRequired[field] {
			continue
		}
		if missing(payload, field) {
			result.ServerDefaultedFields = append(result.ServerDefaultedFields, field)
			result.Hints = append(result.Hints,
				fmt.Sprintf("field %q omitted, server will apply a default", field))
		}
	}

	// 3. рекомендованные значения, которыми payload не воспользовался
	for _, field := range desc.Fields.RecommendedValueFields() {
		if !missing(payload, field) {
			continue
		}
		value := desc.Fields[field].RecommendedValue
		result.RecommendedFields = append(result.RecommendedFields, Recommendation{
			Field: field,
			Value: value,
		})
		result.Hints = append(result.Hints,
			fmt.Sprintf("consider setting %q to %v", field, value))
	}

	result.Valid = len(result.MissingFields) == 0
	return result
}

func normalizeOp(op string) string {
	if op == "update" {
		return "update"
	}
	return "create"
}

// missing: значение отсутствует, nil, пустая или пробельная строка,
// либо пустой массив
func missing(payload map[string]any, path string) bool {
	v, ok := lookupPath(payload, path)
	if !ok || v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	}
	return false
}

// lookupPath спускается по dotted-пути через вложенные объекты
func lookupPath(payload map[string]any, path string) (any, bool) {
	current := any(payload)
	for _, seg := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
