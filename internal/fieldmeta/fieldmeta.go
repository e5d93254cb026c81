package fieldmeta

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Кастомные аннотации на свойствах component-схем
const (
	extServerDefault    = "x-ves-server-default"
	extRequiredFor      = "x-ves-required"
	extRecommendedValue = "x-ves-recommended-value"
)

// RequiredFor — флаги обязательности поля по операциям
type RequiredFor struct {
	MinimumConfig bool `json:"minimumConfig,omitempty"`
	Create        bool `json:"create,omitempty"`
	Update        bool `json:"update,omitempty"`
}

func (r RequiredFor) any() bool {
	return r.MinimumConfig || r.Create || r.Update
}

// Entry — метаданные одного поля по его dotted-пути.
// Запись существует только если есть хотя бы одно из:
// default, server-default, required-for, recommended value.
type Entry struct {
	Default          any         `json:"default,omitempty"`
	ServerDefault    bool        `json:"serverDefault,omitempty"`
	RequiredFor      RequiredFor `json:"requiredFor,omitempty"`
	RecommendedValue any         `json:"recommendedValue,omitempty"`
	Description      string      `json:"description,omitempty"`
	Type             string      `json:"type,omitempty"`
}

// hasDefault: сервер заполнит поле сам, явно или неявно
func (e *Entry) hasDefault() bool {
	return e.Default != nil || e.ServerDefault
}

// Catalog — разреженная карта метаданных полей одного ресурса,
// ключ — dotted-путь вида spec.monitoring.enabled
type Catalog map[string]*Entry

// Extract обходит component-схему в глубину и собирает метаданные полей
// под базовым путём. components нужен для разрешения $ref: ссылки
// разрешаются ровно на один уровень, более длинные цепочки не
// раскрываются — это ограничивает стоимость обхода и исключает циклы.
func Extract(schema *openapi3.SchemaRef, components openapi3.Schemas, basePath string) Catalog {
	w := &walker{components: components, out: Catalog{}}
	w.schema(schema, basePath, false)
	return w.out
}

type walker struct {
	components openapi3.Schemas
	out        Catalog
}

// schema обходит один узел: allOf-ветки на том же пути,
// properties с расширением пути, items массива без расширения
func (w *walker) schema(ref *openapi3.SchemaRef, path string, resolved bool) {
	if ref == nil {
		return
	}
	if ref.Ref != "" {
		if resolved {
			// вторая ссылка в цепочке не разрешается
			return
		}
		target, ok := w.resolve(ref.Ref)
		if !ok {
			slog.Debug("unresolvable schema reference, subtree skipped", "ref", ref.Ref, "path", path)
			return
		}
		w.schema(target, path, true)
		return
	}

	s := ref.Value
	if s == nil {
		return
	}

	// композиция: ветки вносят метаданные, как если бы их
	// свойства были встроены в сам узел
	for _, branch := range s.AllOf {
		w.schema(branch, path, resolved)
	}

	for _, name := range sortedKeys(s.Properties) {
		w.property(s.Properties[name], path+"."+name, resolved)
	}

	if s.Items != nil {
		// семантика массива сплющивается на путь родителя
		w.schema(s.Items, path, resolved)
	}
}

func (w *walker) property(ref *openapi3.SchemaRef, path string, resolved bool) {
	if ref == nil {
		return
	}
	if ref.Ref != "" {
		w.schema(ref, path, resolved)
		return
	}
	if s := ref.Value; s != nil {
		if e := entryFrom(s); e != nil {
			if _, exists := w.out[path]; !exists {
				w.out[path] = e
			}
		}
	}
	w.schema(ref, path, resolved)
}

func (w *walker) resolve(ref string) (*openapi3.SchemaRef, bool) {
	name := ref
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		name = ref[i+1:]
	}
	target, ok := w.components[name]
	return target, ok && target != nil
}

// entryFrom возвращает запись, если свойство несёт хотя бы одну
// значимую аннотацию, иначе nil — карта остаётся разреженной
func entryFrom(s *openapi3.Schema) *Entry {
	e := &Entry{}
	notable := false

	if s.Default != nil {
		e.Default = s.Default
		notable = true
	}
	if b, ok := s.Extensions[extServerDefault].(bool); ok && b {
		e.ServerDefault = true
		notable = true
	}
	for _, op := range extStrings(s.Extensions[extRequiredFor]) {
		switch op {
		case "minimum_config":
			e.RequiredFor.MinimumConfig = true
		case "create":
			e.RequiredFor.Create = true
		case "update":
			e.RequiredFor.Update = true
		}
	}
	if e.RequiredFor.any() {
		notable = true
	}
	if v, ok := s.Extensions[extRecommendedValue]; ok && v != nil {
		e.RecommendedValue = v
		notable = true
	}

	if !notable {
		return nil
	}

	e.Description = s.Description
	if s.Type != nil {
		if types := s.Type.Slice(); len(types) > 0 {
			e.Type = types[0]
		}
	}
	return e
}

func extStrings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ServerDefaultFields — поля с литеральным дефолтом или серверным маркером
func (c Catalog) ServerDefaultFields() []string {
	var out []string
	for path, e := range c {
		if e.hasDefault() {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}

// UserRequiredFields — поля, обязательные для операции и не имеющие
// никакого дефолта: их обязан предоставить пользователь.
// По построению не пересекается с ServerDefaultFields.
func (c Catalog) UserRequiredFields(op string) []string {
	var out []string
	for path, e := range c {
		if e.requiredFor(op) && !e.hasDefault() {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}

// RequiredFields — номинально обязательные поля операции,
// включая те, что сервер заполнит сам
func (c Catalog) RequiredFields(op string) []string {
	var out []string
	for path, e := range c {
		if e.requiredFor(op) {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}

// RecommendedValueFields — поля с рекомендованным значением
func (c Catalog) RecommendedValueFields() []string {
	var out []string
	for path, e := range c {
		if e.RecommendedValue != nil {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}

func (e *Entry) requiredFor(op string) bool {
	switch op {
	case "update":
		return e.RequiredFor.Update
	case "minimum_config":
		return e.RequiredFor.MinimumConfig
	default:
		return e.RequiredFor.Create
	}
}

func sortedKeys(m openapi3.Schemas) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
