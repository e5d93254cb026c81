package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const swaggerDoc = `{
	"swagger": "2.0",
	"info": {
		"title": "F5 Distributed Cloud API for ves.io.schema.dns_zone",
		"description": "DNS zone management.",
		"version": "2026-08-01"
	},
	"paths": {
		"/api/config/dns/namespaces/{namespace}/dns_zones": {
			"post": {
				"operationId": "ves.io.schema.dns_zone.API.Create",
				"summary": "Create a DNS zone"
			},
			"get": {
				"operationId": "ves.io.schema.dns_zone.API.List",
				"summary": "List DNS zones"
			}
		},
		"/api/config/dns/namespaces/{namespace}/dns_zones/{name}": {
			"put": {
				"operationId": "ves.io.schema.dns_zone.API.Replace",
				"summary": "Replace a DNS zone"
			}
		}
	},
	"definitions": {
		"dns_zoneCreateSpecType": {
			"type": "object",
			"properties": {
				"primary": {"type": "string", "x-ves-required": ["create"]}
			}
		}
	}
}`

const domainDoc = `{
	"domain": "web_security",
	"endpoints": {
		"/api/config/namespaces/{namespace}/app_firewalls": {
			"operationId": "ves.io.schema.app_firewall.API.Create",
			"operations": {
				"create": {
					"purpose": "Create an application firewall",
					"dangerLevel": "low"
				},
				"delete": {
					"purpose": "Remove an application firewall",
					"dangerLevel": "high",
					"requiresConfirmation": true,
					"sideEffects": ["detaches firewall from load balancers"]
				}
			}
		}
	},
	"components": {
		"app_firewallCreateSpecType": {
			"type": "object",
			"properties": {
				"blocking": {"type": "boolean", "default": false}
			}
		}
	}
}`

func TestDecodeSwagger(t *testing.T) {
	name := "docs-cloud-f5-com.0010.public.ves.io.schema.dns_zone.ves-swagger.json"
	doc, err := Decode(name, []byte(swaggerDoc), LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, name, doc.ID())
	assert.Empty(t, doc.Domain())
	assert.Equal(t, "ves.io.schema.dns_zone", doc.SchemaID())
	assert.Equal(t, "F5 Distributed Cloud API for ves.io.schema.dns_zone", doc.Title())
	assert.Contains(t, doc.Components(), "dns_zoneCreateSpecType")

	eps := doc.Endpoints()
	require.Len(t, eps, 2)
	// эндпоинты отсортированы по пути
	assert.Equal(t, "/api/config/dns/namespaces/{namespace}/dns_zones", eps[0].Path)
	assert.Equal(t, "ves.io.schema.dns_zone.API.Create", eps[0].OperationID)
	assert.Equal(t, "Create a DNS zone", eps[0].Operations["create"].Purpose)
	assert.Equal(t, "Replace a DNS zone", eps[1].Operations["update"].Purpose)
}

func TestDecodeDomain(t *testing.T) {
	doc, err := Decode("web_security.json", []byte(domainDoc), LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "web_security", doc.Domain())
	assert.Empty(t, doc.SchemaID())

	eps := doc.Endpoints()
	require.Len(t, eps, 1)
	assert.Equal(t, "ves.io.schema.app_firewall.API.Create", eps[0].OperationID)
	assert.Equal(t, "high", eps[0].Operations["delete"].DangerLevel)
	assert.True(t, eps[0].Operations["delete"].RequiresConfirmation)
}

func TestDecodeRejectsUnknownShape(t *testing.T) {
	_, err := Decode("notes.json", []byte(`{"hello": 1}`), LoadOptions{})
	assert.Error(t, err)

	_, err = Decode("broken.json", []byte(`{not json`), LoadOptions{})
	assert.Error(t, err)
}

func TestDecodeStrictRequiresDomainTag(t *testing.T) {
	data := []byte(`{"endpoints": {}, "components": {}}`)

	_, err := Decode("merged.json", data, LoadOptions{})
	assert.NoError(t, err)

	_, err = Decode("merged.json", data, LoadOptions{Strict: true})
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"docs-cloud-f5-com.0010.public.ves.io.schema.dns_zone.ves-swagger.json": swaggerDoc,
		"web_security.json": domainDoc,
		"garbage.json":      `{"hello": 1}`,   // вне грамматики: пропускается
		"broken.json":       `{not json`,      // битый: пропускается
		"ignored.txt":       "not a document", // не json
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	docs, err := LoadDir(dir, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// результат отсортирован по идентификатору документа
	assert.Equal(t, "docs-cloud-f5-com.0010.public.ves.io.schema.dns_zone.ves-swagger.json", docs[0].ID())
	assert.Equal(t, "web_security.json", docs[1].ID())
}

func TestLoadDirMissingRoot(t *testing.T) {
	// недоступность каталога — единственная фатальная ошибка загрузки
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"), LoadOptions{})
	assert.Error(t, err)
}
