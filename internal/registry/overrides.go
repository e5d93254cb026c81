package registry

import (
	"fmt"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"

	"github.com/mdwit/spec2registry/internal/pathspec"
)

// Overrides — ручные корректировки реестра. Переопределения никогда
// не создают новых ресурсов, только правят scope или отображаемое
// имя уже существующих дескрипторов.
type Overrides struct {
	// Scopes: корзина scope → ключи ресурсов, принудительно
	// относимые к этой корзине
	Scopes map[pathspec.Scope][]string
	// Names: ключ ресурса → отображаемое имя
	Names map[string]string
}

// LoadOverrides читает файлы переопределений. Отсутствующий файл —
// это «нет переопределений», а не ошибка.
func LoadOverrides(scopesPath, namesPath string) (Overrides, error) {
	var ov Overrides

	if scopesPath != "" {
		data, err := os.ReadFile(scopesPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return ov, fmt.Errorf("failed to read scope overrides: %w", err)
		default:
			if err := json.Unmarshal(data, &ov.Scopes); err != nil {
				return ov, fmt.Errorf("invalid scope overrides: %w", err)
			}
		}
	}

	if namesPath != "" {
		data, err := os.ReadFile(namesPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return ov, fmt.Errorf("failed to read name overrides: %w", err)
		default:
			if err := json.Unmarshal(data, &ov.Names); err != nil {
				return ov, fmt.Errorf("invalid name overrides: %w", err)
			}
		}
	}

	return ov, nil
}

// apply правит дескрипторы на месте; неизвестные ключи игнорируются
// с предупреждением
func (ov Overrides) apply(resources map[string]*Descriptor) {
	for _, scope := range []pathspec.Scope{pathspec.ScopeSystem, pathspec.ScopeShared, pathspec.ScopeAny} {
		for _, key := range ov.Scopes[scope] {
			d, ok := resources[key]
			if !ok {
				slog.Warn("scope override for unknown resource", "key", key)
				continue
			}
			d.Scope = scope
		}
	}

	for key, name := range ov.Names {
		d, ok := resources[key]
		if !ok {
			slog.Warn("name override for unknown resource", "key", key)
			continue
		}
		d.DisplayName = name
	}
}
