package jsonschema

import (
	"sort"
	"strings"

	"github.com/mdwit/spec2registry/internal/fieldmeta"
	"github.com/mdwit/spec2registry/internal/registry"
)

// Node — узел синтезированной схемы валидации. Каждый сегмент
// dotted-пути метаданных становится уровнем вложенности объектов.
type Node struct {
	Type        string           `json:"type"`
	Description string           `json:"description,omitempty"`
	Default     any              `json:"default,omitempty"`
	Properties  map[string]*Node `json:"properties,omitempty"`
	Required    []string         `json:"required,omitempty"`

	// Аннотации-подсказки для редакторских инструментов
	ServerDefault    bool `json:"x-server-default,omitempty"`
	RequiredForOp    bool `json:"x-required,omitempty"`
	RecommendedValue any  `json:"x-recommended-value,omitempty"`
}

// Synthesize строит дерево схемы по карте метаданных полей
// дескриптора. Блок metadata объявляется всегда, независимо от
// данных конкретного ресурса, с обязательным name.
func Synthesize(d *registry.Descriptor) *Node {
	root := Generic()

	if d == nil || len(d.Fields) == 0 {
		return root
	}

	paths := make([]string, 0, len(d.Fields))
	for p := range d.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		attach(root, path, d.Fields[path])
	}

	// верхний уровень required — ровно множество первых сегментов
	// путей полей, которые обязан предоставить пользователь
	root.Required = nil
	seen := map[string]bool{}
	for _, path := range d.Fields.UserRequiredFields("create") {
		first := path
		if i := strings.IndexByte(path, '.'); i >= 0 {
			first = path[:i]
		}
		if !seen[first] {
			root.Required = append(root.Required, first)
			seen[first] = true
		}
	}
	sort.Strings(root.Required)

	return root
}

// attach прокладывает промежуточные object-узлы и ставит лист
func attach(root *Node, path string, e *fieldmeta.Entry) {
	segments := strings.Split(path, ".")
	node := root
	for _, seg := range segments[:len(segments)-1] {
		child, ok := node.Properties[seg]
		if !ok {
			child = &Node{Type: "object", Properties: map[string]*Node{}}
			node.Properties[seg] = child
		}
		if child.Properties == nil {
			child.Properties = map[string]*Node{}
		}
		node = child
	}

	leaf := segments[len(segments)-1]
	node.Properties[leaf] = &Node{
		Type:             inferType(e),
		Description:      e.Description,
		Default:          e.Default,
		ServerDefault:    e.ServerDefault || e.Default != nil,
		RequiredForOp:    e.RequiredFor.Create,
		RecommendedValue: e.RecommendedValue,
	}
}

// inferType выводит примитивный тип из дефолта либо рекомендованного
// значения; если ни то ни другое не даёт ответа — string
func inferType(e *fieldmeta.Entry) string {
	sample := e.Default
	if sample == nil {
		sample = e.RecommendedValue
	}
	switch v := sample.(type) {
	case bool:
		return "boolean"
	case float64:
		if v == float64(int64(v)) {
			return "integer"
		}
		return "number"
	case float32, int, int32, int64:
		return "integer"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	if e.Type != "" {
		return e.Type
	}
	return "string"
}

// Generic возвращает универсальную fallback-схему: только
// фиксированный блок metadata и свободный spec. Используется и как
// каркас любой синтезированной схемы, и сама по себе для
// нераспознанных ключей ресурсов.
func Generic() *Node {
	return &Node{
		Type: "object",
		Properties: map[string]*Node{
			"metadata": metadataBlock(),
			"spec":     {Type: "object", Properties: map[string]*Node{}},
		},
		Required: []string{"metadata"},
	}
}

// metadataBlock — фиксированный блок метаданных объекта,
// одинаковый для всех ресурсов; name всегда обязателен
func metadataBlock() *Node {
	return &Node{
		Type: "object",
		Properties: map[string]*Node{
			"name":        {Type: "string", Description: "Object name, unique within the namespace"},
			"namespace":   {Type: "string", Description: "Namespace the object lives in"},
			"labels":      {Type: "object"},
			"annotations": {Type: "object"},
			"description": {Type: "string"},
			"disable":     {Type: "boolean"},
		},
		Required: []string{"name"},
	}
}
