package registry

import (
	"log/slog"
	"sort"

	"github.com/mdwit/spec2registry/internal/branding"
	"github.com/mdwit/spec2registry/internal/document"
	"github.com/mdwit/spec2registry/internal/fieldmeta"
	"github.com/mdwit/spec2registry/internal/pathspec"
	"github.com/mdwit/spec2registry/internal/schemaid"
)

// candidate — endpoint-кандидат одного ключа ресурса внутри документа
type candidate struct {
	endpoint   document.Endpoint
	classified pathspec.Endpoint
}

// BuildDescriptors строит дескрипторы всех ресурсов одного документа.
// Swagger-вариант обычно даёт один ключ, domain-merged — много.
// Неразбираемые пути и идентификаторы вне грамматики пропускаются,
// документ при этом обрабатывается дальше.
func BuildDescriptors(doc document.Document) []*Descriptor {
	byKey := map[string]candidate{}

	for _, ep := range doc.Endpoints() {
		key, err := endpointKey(doc, ep)
		if err != nil {
			slog.Warn("endpoint skipped", "doc", doc.ID(), "path", ep.Path, "reason", err)
			continue
		}

		cls, ok := pathspec.Classify(ep.Path)
		if !ok {
			continue
		}

		prev, seen := byKey[key]
		// предпочитаем endpoint коллекции: суффикс совпадает
		// с плюрализованным ключом
		if !seen || (prev.classified.Suffix != schemaid.PathSuffix(key) && cls.Suffix == schemaid.PathSuffix(key)) {
			byKey[key] = candidate{endpoint: ep, classified: cls}
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*Descriptor, 0, len(keys))
	for _, key := range keys {
		out = append(out, buildOne(doc, key, byKey[key]))
	}
	return out
}

// endpointKey выводит ключ ресурса эндпоинта: из operationId,
// иначе из имени файла документа
func endpointKey(doc document.Document, ep document.Endpoint) (string, error) {
	id := doc.SchemaID()
	if ep.OperationID != "" {
		opID, _, err := schemaid.FromOperationID(ep.OperationID)
		if err == nil {
			id = opID
		} else if id == "" {
			return "", err
		}
	}
	if id == "" {
		return "", schemaid.ErrNoMatch
	}
	return schemaid.ResourceKey(id)
}

func buildOne(doc document.Document, key string, c candidate) *Descriptor {
	d := &Descriptor{
		ResourceKey:     key,
		PathSuffix:      schemaid.PathSuffix(key),
		DisplayName:     DisplayName(doc.Title(), key),
		Description:     branding.Normalize(doc.Description()),
		Base:            c.classified.Base,
		Service:         c.classified.Service,
		PathTemplate:    c.classified.Path,
		Source:          doc.ID(),
		NamespaceScoped: c.classified.NamespaceScoped,
		Scope:           c.classified.Scope,
		Domain:          doc.Domain(),
		Operations:      normalizeOperations(c.endpoint.Operations),
	}

	if ref, name, ok := fieldmeta.LocateSpecSchema(key, doc.Components()); ok {
		if catalog := fieldmeta.Extract(ref, doc.Components(), "spec"); len(catalog) > 0 {
			d.Fields = catalog
			slog.Debug("field metadata extracted", "key", key, "schema", name, "fields", len(catalog))
		}
	}
	return d
}

func normalizeOperations(ops map[string]document.OperationMeta) map[string]document.OperationMeta {
	if len(ops) == 0 {
		return nil
	}
	out := make(map[string]document.OperationMeta, len(ops))
	for name, meta := range ops {
		meta.Purpose = branding.Normalize(meta.Purpose)
		out[name] = meta
	}
	return out
}
