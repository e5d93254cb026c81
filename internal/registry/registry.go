package registry

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/mdwit/spec2registry/internal/document"
)

// Build собирает реестр из документов. Документы обходятся в
// лексикографическом порядке идентификаторов (сортировка здесь,
// а не у хранилища — это требование корректности: на нём держится
// воспроизводимость дедупликации). Первый дескриптор ключа
// выигрывает, поздние дубликаты отбрасываются. После дедупликации
// применяются переопределения и строится обратный индекс.
func Build(docs []document.Document, ov Overrides) *Registry {
	sorted := make([]document.Document, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID() < sorted[j].ID() })

	resources := map[string]*Descriptor{}
	for _, doc := range sorted {
		for _, d := range BuildDescriptors(doc) {
			if _, seen := resources[d.ResourceKey]; seen {
				slog.Debug("duplicate resource key, first occurrence wins",
					"key", d.ResourceKey, "doc", doc.ID())
				continue
			}
			resources[d.ResourceKey] = d
		}
	}

	ov.apply(resources)

	index := map[string]string{}
	keys := make([]string, 0, len(resources))
	for k := range resources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		suffix := resources[key].PathSuffix
		if _, taken := index[suffix]; !taken {
			index[suffix] = key
		}
	}

	return &Registry{Resources: resources, PathIndex: index}
}

// Encode сериализует реестр детерминированно: ключи карт
// сортируются кодировщиком, так что повторная генерация над теми же
// входами даёт байт-в-байт тот же артефакт
func (r *Registry) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode registry: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile записывает артефакт реестра
func (r *Registry) WriteFile(path string) error {
	data, err := r.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Decode читает ранее сгенерированный артефакт реестра
func Decode(data []byte) (*Registry, error) {
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}
	return &r, nil
}

// ReadFile загружает артефакт реестра с диска
func ReadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	return Decode(data)
}
