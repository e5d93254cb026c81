package registry

import (
	"strings"
)

// Фиксированные префиксы, отбрасываемые из заголовков документации
const (
	docTitlePrefix   = "F5 Distributed Cloud API for "
	schemaPathPrefix = "ves.io.schema."
)

// DisplayName выводит отображаемое имя ресурса из заголовка
// документации; если заголовка нет — из ключа ресурса по тем же
// правилам. Разделители превращаются в пробелы, каждое слово
// капитализируется, результат ставится во множественное число,
// если уже не оканчивается на s или ing.
func DisplayName(title, key string) string {
	source := title
	if source == "" {
		source = key
	}

	source = strings.TrimPrefix(source, docTitlePrefix)
	source = strings.TrimPrefix(source, schemaPathPrefix)
	// схемы views.* именуют ресурс последним сегментом
	source = strings.TrimPrefix(source, "views.")

	source = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(source)

	words := strings.Fields(source)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	name := strings.Join(words, " ")

	if name == "" {
		return name
	}
	if !strings.HasSuffix(name, "s") && !strings.HasSuffix(name, "ing") {
		name += "s"
	}
	return name
}
