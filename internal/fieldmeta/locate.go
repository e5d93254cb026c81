package fieldmeta

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// LocateSpecSchema ищет схему спецификации ресурса среди component-схем.
// Два кандидата имени в порядке предпочтения: <key>CreateSpecType
// (схема создания) и <key>SpecType (общая схема). Сравнение точное,
// но без учёта регистра.
func LocateSpecSchema(key string, components openapi3.Schemas) (*openapi3.SchemaRef, string, bool) {
	candidates := []string{key + "CreateSpecType", key + "SpecType"}

	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, candidate := range candidates {
		for _, name := range names {
			if strings.EqualFold(name, candidate) {
				return components[name], name, true
			}
		}
	}
	return nil, "", false
}
