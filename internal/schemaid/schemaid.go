package schemaid

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoMatch — имя файла или идентификатор операции не подходит под грамматику
var ErrNoMatch = errors.New("does not match naming convention")

// ErrNoKey — из schema id невозможно вывести ключ ресурса
var ErrNoKey = errors.New("no resource key in schema id")

// Фиксированная грамматика имён: <prefix>.<NNNN>.public.<dotted-id>.ves-swagger.json
var reFilename = regexp.MustCompile(`^[A-Za-z0-9-]+\.\d+\.public\.([a-z0-9_.]+)\.ves-swagger\.json$`)

// Идентификатор операции: <dotted-id>.API.<Verb>
var reOperation = regexp.MustCompile(`^([a-z0-9_.]+)\.API\.([A-Za-z]+)$`)

// FromFilename извлекает dotted schema id из имени файла спецификации
func FromFilename(name string) (string, error) {
	m := reFilename.FindStringSubmatch(name)
	if m == nil {
		return "", ErrNoMatch
	}
	return m[1], nil
}

// FromOperationID извлекает dotted schema id и глагол операции
// из идентификатора вида ves.io.schema.dns_zone.API.Create
func FromOperationID(id string) (schemaID, verb string, err error) {
	m := reOperation.FindStringSubmatch(id)
	if m == nil {
		return "", "", ErrNoMatch
	}
	return m[1], m[2], nil
}

// ResourceKey выводит нормализованный ключ ресурса из dotted schema id:
// берутся сегменты после литерального токена schema, ведущий сегмент
// views отбрасывается, остальные соединяются подчёркиванием.
// Так ves.io.schema.views.http_loadbalancer даёт http_loadbalancer,
// а ves.io.schema.api_sec.api_crawler — api_sec_api_crawler.
func ResourceKey(schemaID string) (string, error) {
	segments := strings.Split(schemaID, ".")
	idx := -1
	for i, s := range segments {
		if s == "schema" {
			idx = i
			break
		}
	}
	if idx < 0 || idx == len(segments)-1 {
		return "", ErrNoKey
	}

	rest := segments[idx+1:]
	if rest[0] == "views" {
		rest = rest[1:]
		if len(rest) == 0 {
			return "", ErrNoKey
		}
	}

	return strings.Join(rest, "_"), nil
}

// PathSuffix образует множественное число для сегмента коллекции.
// Правило идиосинкразическое и сохраняется как есть: +s, либо +es,
// если ключ уже оканчивается на s. Это не английская грамматика.
func PathSuffix(key string) string {
	if strings.HasSuffix(key, "s") {
		return key + "es"
	}
	return key + "s"
}
