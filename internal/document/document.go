package document

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi3"
)

// Document — один входной документ спецификаций. Два варианта:
// per-resource ves-swagger файл и domain-merged файл. Оба производят
// дескрипторы через общий интерфейс, а не через утиную типизацию
// опциональных полей.
type Document interface {
	// ID — идентификатор документа (имя файла); реестр обходит
	// документы в лексикографическом порядке этих идентификаторов
	ID() string
	// Domain — тег домена, пустой для swagger-варианта
	Domain() string
	// Title — заголовок документации, пустой если нет
	Title() string
	// Description — описание документа, пустое если нет
	Description() string
	// Endpoints — endpoint-пути документа, отсортированные по пути
	Endpoints() []Endpoint
	// Components — таблица именованных component-схем
	Components() openapi3.Schemas
	// SchemaID — dotted schema id из имени файла, пустой если
	// имя не следует грамматике (domain-вариант)
	SchemaID() string
}

// Endpoint — один endpoint-путь документа с метаданными операций
type Endpoint struct {
	Path        string
	OperationID string
	Operations  map[string]OperationMeta
}

// OperationMeta — человеко-ориентированные аннотации операции
type OperationMeta struct {
	Purpose              string   `json:"purpose,omitempty"`
	DangerLevel          string   `json:"dangerLevel,omitempty"`
	RequiresConfirmation bool     `json:"requiresConfirmation,omitempty"`
	SideEffects          []string `json:"sideEffects,omitempty"`
	CommonErrors         []string `json:"commonErrors,omitempty"`
}

// SwaggerDocument — per-resource ves-swagger 2.0 файл
type SwaggerDocument struct {
	name     string
	schemaID string
	doc      *openapi2.T
}

func (d *SwaggerDocument) ID() string       { return d.name }
func (d *SwaggerDocument) Domain() string   { return "" }
func (d *SwaggerDocument) SchemaID() string { return d.schemaID }

func (d *SwaggerDocument) Title() string { return d.doc.Info.Title }

func (d *SwaggerDocument) Description() string { return d.doc.Info.Description }

func (d *SwaggerDocument) Components() openapi3.Schemas { return d.doc.Definitions }

// соответствие HTTP-методов видам операций
var methodOps = []struct {
	method string
	op     string
}{
	{"POST", "create"},
	{"PUT", "update"},
	{"GET", "get"},
	{"DELETE", "delete"},
}

func (d *SwaggerDocument) Endpoints() []Endpoint {
	paths := make([]string, 0, len(d.doc.Paths))
	for p := range d.doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]Endpoint, 0, len(paths))
	for _, p := range paths {
		item := d.doc.Paths[p]
		if item == nil {
			continue
		}
		ep := Endpoint{Path: p, Operations: map[string]OperationMeta{}}
		ops := item.Operations()
		for _, mo := range methodOps {
			op, ok := ops[mo.method]
			if !ok || op == nil {
				continue
			}
			if ep.OperationID == "" && op.OperationID != "" {
				ep.OperationID = op.OperationID
			}
			if op.Summary != "" {
				ep.Operations[mo.op] = OperationMeta{Purpose: op.Summary}
			}
		}
		if len(ep.Operations) == 0 {
			ep.Operations = nil
		}
		out = append(out, ep)
	}
	return out
}

// DomainDocument — domain-merged файл: тег домена, endpoint-записи
// по путям и общая таблица component-схем
type DomainDocument struct {
	name    string
	payload domainPayload
}

type domainPayload struct {
	Domain     string                     `json:"domain"`
	Title      string                     `json:"title"`
	Desc       string                     `json:"description"`
	Endpoints  map[string]endpointPayload `json:"endpoints"`
	Components openapi3.Schemas           `json:"components"`
}

type endpointPayload struct {
	OperationID string                   `json:"operationId"`
	Operations  map[string]OperationMeta `json:"operations"`
}

func (d *DomainDocument) ID() string          { return d.name }
func (d *DomainDocument) Domain() string      { return d.payload.Domain }
func (d *DomainDocument) Title() string       { return d.payload.Title }
func (d *DomainDocument) Description() string { return d.payload.Desc }
func (d *DomainDocument) SchemaID() string    { return "" }

func (d *DomainDocument) Components() openapi3.Schemas { return d.payload.Components }

func (d *DomainDocument) Endpoints() []Endpoint {
	paths := make([]string, 0, len(d.payload.Endpoints))
	for p := range d.payload.Endpoints {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]Endpoint, 0, len(paths))
	for _, p := range paths {
		entry := d.payload.Endpoints[p]
		out = append(out, Endpoint{
			Path:        p,
			OperationID: entry.OperationID,
			Operations:  entry.Operations,
		})
	}
	return out
}
