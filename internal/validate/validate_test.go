package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdwit/spec2registry/internal/fieldmeta"
	"github.com/mdwit/spec2registry/internal/registry"
)

func fixtureRegistry() *registry.Registry {
	return &registry.Registry{
		Resources: map[string]*registry.Descriptor{
			"dns_zone": {
				ResourceKey: "dns_zone",
				PathSuffix:  "dns_zones",
				Fields: fieldmeta.Catalog{
					"metadata.name": {
						RequiredFor: fieldmeta.RequiredFor{Create: true, Update: true},
					},
					"spec.primary": {
						RequiredFor: fieldmeta.RequiredFor{Create: true},
					},
					"spec.timeout": {
						Default:     float64(3),
						RequiredFor: fieldmeta.RequiredFor{Create: true},
					},
					"spec.ttl": {
						RecommendedValue: float64(300),
					},
					// дефолт без маркера обязательности: всё равно
					// попадает в serverDefaultedFields при пропуске
					"spec.refresh": {
						Default: float64(60),
					},
				},
			},
		},
		PathIndex: map[string]string{"dns_zones": "dns_zone"},
	}
}

func TestValidateMissingRequired(t *testing.T) {
	reg := fixtureRegistry()

	result := Validate(reg, "dns_zone", "create", map[string]any{
		"metadata": map[string]any{},
	})

	assert.False(t, result.Valid)
	assert.Contains(t, result.MissingFields, "metadata.name")
	assert.Contains(t, result.MissingFields, "spec.primary")
	assert.NotEmpty(t, result.Warnings)
}

func TestValidateServerDefaultedNotMissing(t *testing.T) {
	reg := fixtureRegistry()

	// spec.timeout обязателен, но имеет дефолт: информационно,
	// в missingFields не попадает и валидность не ломает
	result := Validate(reg, "dns_zone", "create", map[string]any{
		"metadata": map[string]any{"name": "example"},
		"spec":     map[string]any{"primary": "ns1.example.com"},
	})

	assert.True(t, result.Valid)
	assert.Empty(t, result.MissingFields)
	assert.Equal(t, []string{"spec.refresh", "spec.timeout"}, result.ServerDefaultedFields)
}

func TestValidateRecommendedHint(t *testing.T) {
	reg := fixtureRegistry()

	result := Validate(reg, "dns_zone", "create", map[string]any{
		"metadata": map[string]any{"name": "example"},
		"spec":     map[string]any{"primary": "ns1.example.com", "timeout": float64(5)},
	})

	require.Len(t, result.RecommendedFields, 1)
	assert.Equal(t, "spec.ttl", result.RecommendedFields[0].Field)
	assert.Equal(t, float64(300), result.RecommendedFields[0].Value)
	assert.True(t, result.Valid)

	// рекомендация исчезает, когда значение задано
	result = Validate(reg, "dns_zone", "create", map[string]any{
		"metadata": map[string]any{"name": "example"},
		"spec": map[string]any{
			"primary": "ns1.example.com",
			"ttl":     float64(60),
		},
	})
	assert.Empty(t, result.RecommendedFields)
}

func TestValidateEmptyValuesCountAsMissing(t *testing.T) {
	reg := fixtureRegistry()

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"nil value", map[string]any{"metadata": map[string]any{"name": nil}}},
		{"empty string", map[string]any{"metadata": map[string]any{"name": ""}}},
		{"whitespace string", map[string]any{"metadata": map[string]any{"name": "   "}}},
		{"empty array", map[string]any{"metadata": map[string]any{"name": []any{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(reg, "dns_zone", "create", tt.payload)
			assert.False(t, result.Valid)
			assert.Contains(t, result.MissingFields, "metadata.name")
		})
	}
}

func TestValidateUpdateOperation(t *testing.T) {
	reg := fixtureRegistry()

	// spec.primary обязателен только для create
	result := Validate(reg, "dns_zone", "update", map[string]any{
		"metadata": map[string]any{"name": "example"},
	})

	assert.True(t, result.Valid)
	assert.Empty(t, result.MissingFields)
}

func TestValidateUnknownResourceAlwaysValid(t *testing.T) {
	reg := fixtureRegistry()

	result := Validate(reg, "no_such_resource", "create", map[string]any{"anything": 1})

	assert.True(t, result.Valid)
	assert.Empty(t, result.MissingFields)
	assert.Empty(t, result.ServerDefaultedFields)
	assert.Empty(t, result.RecommendedFields)
	assert.Empty(t, result.Warnings)
}

func TestValidatePureFunction(t *testing.T) {
	reg := fixtureRegistry()
	payload := map[string]any{"metadata": map[string]any{}}

	first := Validate(reg, "dns_zone", "create", payload)
	second := Validate(reg, "dns_zone", "create", payload)
	assert.Equal(t, first, second)
}
