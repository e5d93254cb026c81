package pathspec

import (
	"regexp"
	"strings"
)

// Scope — классификация namespace-доступа ресурса
type Scope string

const (
	ScopeSystem Scope = "system" // только namespace system
	ScopeShared Scope = "shared" // только namespace shared
	ScopeAny    Scope = "any"    // любой namespace или tenant-уровень
)

// Endpoint представляет разобранный путь API
type Endpoint struct {
	Path            string `json:"path"`
	Base            string `json:"base"`
	Service         string `json:"service,omitempty"`
	Suffix          string `json:"suffix"`
	NamespaceScoped bool   `json:"namespaceScoped"`
	Scope           Scope  `json:"scope"`
}

// Шаблоны путей в порядке приоритета: первый совпавший выигрывает
var (
	// base / service / namespaces / {param|literal} / suffix [/ {param}]
	reExtended = regexp.MustCompile(`^(/[a-z0-9_]+/[a-z0-9_]+)/([a-z0-9_]+)/namespaces/(\{[^/}]+\}|[a-z0-9_.-]+)/([a-z0-9_]+)(?:/\{[^/}]+\})?$`)
	// base / namespaces / {param|literal} / suffix [/ {param}]
	reStandard = regexp.MustCompile(`^(/[a-z0-9_]+/[a-z0-9_]+)/namespaces/(\{[^/}]+\}|[a-z0-9_.-]+)/([a-z0-9_]+)(?:/\{[^/}]+\})?$`)
	// base / suffix [/ {param}] — tenant-уровень, без сегмента namespaces
	reTenant = regexp.MustCompile(`^(/[a-z0-9_]+/[a-z0-9_]+)/([a-z0-9_]+)(?:/\{[^/}]+\})?$`)
)

// Classify разбирает путь эндпоинта в дескриптор.
// Возвращает false, если путь не удалось классифицировать —
// такие пути просто исключаются из набора эндпоинтов документа.
func Classify(path string) (Endpoint, bool) {
	scope := DeriveScope(path)

	if m := reExtended.FindStringSubmatch(path); m != nil {
		return Endpoint{
			Path:            path,
			Base:            m[1],
			Service:         m[2],
			Suffix:          m[4],
			NamespaceScoped: true,
			Scope:           scope,
		}, true
	}

	if m := reStandard.FindStringSubmatch(path); m != nil {
		return Endpoint{
			Path:            path,
			Base:            m[1],
			Suffix:          m[3],
			NamespaceScoped: true,
			Scope:           scope,
		}, true
	}

	if !strings.Contains(path, "/namespaces/") {
		if m := reTenant.FindStringSubmatch(path); m != nil {
			return Endpoint{
				Path:   path,
				Base:   m[1],
				Suffix: m[2],
				Scope:  scope,
			}, true
		}
	}

	return fallback(path, scope)
}

// fallback: последний не-параметрный сегмент как suffix,
// base выводится из второго сегмента пути
func fallback(path string, scope Scope) (Endpoint, bool) {
	segments := splitSegments(path)
	if len(segments) == 0 {
		return Endpoint{}, false
	}

	suffix := ""
	for i := len(segments) - 1; i >= 0; i-- {
		if !strings.HasPrefix(segments[i], "{") {
			suffix = segments[i]
			break
		}
	}
	if suffix == "" {
		return Endpoint{}, false
	}

	base := "/" + segments[0]
	if len(segments) > 1 {
		base += "/" + segments[1]
	}

	return Endpoint{
		Path:            path,
		Base:            base,
		Suffix:          suffix,
		NamespaceScoped: strings.Contains(path, "/namespaces/"),
		Scope:           scope,
	}, true
}

// DeriveScope классифицирует namespace-доступ по литеральному тексту пути.
// Чистая функция: не зависит от того, какой шаблон совпал.
func DeriveScope(path string) Scope {
	switch {
	case strings.Contains(path, "/namespaces/system/"):
		return ScopeSystem
	case strings.Contains(path, "/namespaces/shared/"):
		return ScopeShared
	default:
		return ScopeAny
	}
}

func splitSegments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
