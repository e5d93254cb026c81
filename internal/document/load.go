package document

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/mdwit/spec2registry/internal/schemaid"
)

const maxReaders = 8

// LoadOptions — опции загрузки документов
type LoadOptions struct {
	// Strict: domain-merged документ без тега домена пропускается
	Strict bool
}

// LoadDir читает все *.json документы каталога. Файлы читаются
// конкурентно (каждый независим), но результат всегда отсортирован
// по идентификатору документа — на этом порядке держится
// детерминизм дедупликации в реестре. Битые документы и файлы вне
// грамматики именования пропускаются с предупреждением; фатальна
// только недоступность самого каталога.
func LoadDir(root string, opts LoadOptions) ([]Document, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	docs := make([]Document, len(names))
	sem := make(chan struct{}, maxReaders)
	var wg sync.WaitGroup

	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			doc, err := loadFile(filepath.Join(root, name), name, opts)
			if err != nil {
				slog.Warn("document skipped", "file", name, "reason", err)
				return
			}
			docs[i] = doc
		}(i, name)
	}
	wg.Wait()

	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func loadFile(path, name string, opts LoadOptions) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(name, data, opts)
}

// Decode разбирает один документ, выбирая вариант по имени файла:
// имена по грамматике ves-swagger дают swagger-вариант, остальные
// пробуются как domain-merged
func Decode(name string, data []byte, opts LoadOptions) (Document, error) {
	if id, err := schemaid.FromFilename(name); err == nil {
		var doc openapi2.T
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("unparseable swagger document: %w", err)
		}
		return &SwaggerDocument{name: name, schemaID: id, doc: &doc}, nil
	}

	var payload domainPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unparseable document: %w", err)
	}
	if payload.Endpoints == nil && payload.Components == nil {
		return nil, fmt.Errorf("%w: neither ves-swagger filename nor domain document", schemaid.ErrNoMatch)
	}
	if payload.Domain == "" && opts.Strict {
		return nil, fmt.Errorf("missing domain tag in strict mode")
	}
	return &DomainDocument{name: name, payload: payload}, nil
}
