package registry

import (
	"sort"

	"github.com/mdwit/spec2registry/internal/document"
	"github.com/mdwit/spec2registry/internal/fieldmeta"
	"github.com/mdwit/spec2registry/internal/pathspec"
)

// Descriptor — итоговая запись реестра для одного типа ресурса:
// производные атрибуты документа плюс ручные переопределения
type Descriptor struct {
	ResourceKey     string                            `json:"resourceKey"`
	PathSuffix      string                            `json:"pathSuffix"`
	DisplayName     string                            `json:"displayName"`
	Description     string                            `json:"description,omitempty"`
	Base            string                            `json:"base"`
	Service         string                            `json:"service,omitempty"`
	PathTemplate    string                            `json:"pathTemplate"`
	Source          string                            `json:"source"`
	NamespaceScoped bool                              `json:"namespaceScoped"`
	Scope           pathspec.Scope                    `json:"scope"`
	Domain          string                            `json:"domain,omitempty"`
	Operations      map[string]document.OperationMeta `json:"operations,omitempty"`
	Fields          fieldmeta.Catalog                 `json:"fields,omitempty"`
}

// Registry — неизменяемый после построения снимок: отсортированная
// карта ключ ресурса → дескриптор и обратный индекс suffix → ключ
type Registry struct {
	Resources map[string]*Descriptor `json:"resources"`
	PathIndex map[string]string      `json:"pathIndex"`
}

// Lookup возвращает дескриптор по ключу ресурса
func (r *Registry) Lookup(key string) (*Descriptor, bool) {
	d, ok := r.Resources[key]
	return d, ok
}

// KeyForSuffix возвращает ключ ресурса по суффиксу пути
func (r *Registry) KeyForSuffix(suffix string) (string, bool) {
	key, ok := r.PathIndex[suffix]
	return key, ok
}

// Keys возвращает ключи реестра в стабильном отсортированном порядке
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.Resources))
	for k := range r.Resources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
