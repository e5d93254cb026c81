package pathspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Endpoint
	}{
		{
			// стандартный шаблон с литеральным system
			path: "/api/config/namespaces/system/sites",
			want: Endpoint{
				Path:            "/api/config/namespaces/system/sites",
				Base:            "/api/config",
				Suffix:          "sites",
				NamespaceScoped: true,
				Scope:           ScopeSystem,
			},
		},
		{
			// стандартный шаблон с параметром namespace
			path: "/api/config/namespaces/{namespace}/http_loadbalancers",
			want: Endpoint{
				Path:            "/api/config/namespaces/{namespace}/http_loadbalancers",
				Base:            "/api/config",
				Suffix:          "http_loadbalancers",
				NamespaceScoped: true,
				Scope:           ScopeAny,
			},
		},
		{
			// расширенный шаблон с сервисным сегментом
			path: "/api/config/dns/namespaces/{namespace}/dns_zones",
			want: Endpoint{
				Path:            "/api/config/dns/namespaces/{namespace}/dns_zones",
				Base:            "/api/config",
				Service:         "dns",
				Suffix:          "dns_zones",
				NamespaceScoped: true,
				Scope:           ScopeAny,
			},
		},
		{
			// стандартный шаблон с хвостовым параметром
			path: "/api/config/namespaces/shared/virtual_sites/{name}",
			want: Endpoint{
				Path:            "/api/config/namespaces/shared/virtual_sites/{name}",
				Base:            "/api/config",
				Suffix:          "virtual_sites",
				NamespaceScoped: true,
				Scope:           ScopeShared,
			},
		},
		{
			// tenant-уровень, без сегмента namespaces
			path: "/api/register/site",
			want: Endpoint{
				Path:   "/api/register/site",
				Base:   "/api/register",
				Suffix: "site",
				Scope:  ScopeAny,
			},
		},
		{
			// вне шаблонов: fallback берёт последний не-параметрный сегмент
			path: "/custom/thing/deep/{id}/stuff",
			want: Endpoint{
				Path:   "/custom/thing/deep/{id}/stuff",
				Base:   "/custom/thing",
				Suffix: "stuff",
				Scope:  ScopeAny,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Classify(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyNoMatch(t *testing.T) {
	// пути без единого не-параметрного сегмента не классифицируются
	for _, path := range []string{"", "/", "/{id}"} {
		_, ok := Classify(path)
		assert.False(t, ok, "path %q", path)
	}
}

func TestDeriveScope(t *testing.T) {
	tests := []struct {
		path string
		want Scope
	}{
		{"/api/config/namespaces/system/sites", ScopeSystem},
		{"/api/config/namespaces/shared/virtual_sites", ScopeShared},
		{"/api/config/namespaces/{namespace}/http_loadbalancers", ScopeAny},
		{"/api/register/site", ScopeAny},
		// system выигрывает у shared, если вдруг встретились оба
		{"/api/x/namespaces/system/y/namespaces/shared/z", ScopeSystem},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveScope(tt.path), "path %q", tt.path)
	}
}

func TestDeriveScopeIsPure(t *testing.T) {
	// классификация не зависит от совпавшего шаблона
	path := "/api/config/namespaces/system/sites"
	for i := 0; i < 3; i++ {
		assert.Equal(t, ScopeSystem, DeriveScope(path))
	}
}
