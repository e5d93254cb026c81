package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ErrSourceRequired — не указан каталог с документами спецификаций
var ErrSourceRequired = errors.New("source directory is required")

// Config — параметры запуска spec2registry
type Config struct {
	Source         string `mapstructure:"source"`         // каталог с документами спецификаций
	Output         string `mapstructure:"output"`         // путь артефакта реестра
	SchemasDir     string `mapstructure:"schemasDir"`     // каталог для синтезированных схем (пусто — не писать)
	ScopeOverrides string `mapstructure:"scopeOverrides"` // файл переопределений scope
	NameOverrides  string `mapstructure:"nameOverrides"`  // файл переопределений имён
	Strict         bool   `mapstructure:"strict"`         // строгий режим: требовать тег домена
	Verbose        bool   `mapstructure:"verbose"`
}

// Load собирает конфигурацию: файл spec2registry.json в текущем
// каталоге (или явно указанный), поверх — окружение SPEC2REGISTRY_*.
// CLI-флаги переопределяют конфиг уже в main.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("output", "./registry.json")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("spec2registry")
		v.SetConfigType("json")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("SPEC2REGISTRY")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Source == "" {
		return ErrSourceRequired
	}
	return nil
}
