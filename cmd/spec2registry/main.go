package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/mdwit/spec2registry/internal/config"
	"github.com/mdwit/spec2registry/internal/document"
	"github.com/mdwit/spec2registry/internal/jsonschema"
	"github.com/mdwit/spec2registry/internal/registry"
	"github.com/mdwit/spec2registry/internal/validate"
)

var (
	version = "dev"

	cfgFile string
	verbose bool

	// build
	output         string
	schemasDir     string
	scopeOverrides string
	nameOverrides  string
	strict         bool

	// schema / validate
	registryPath string
	payloadFile  string
	opKind       string
	rawJSON      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "spec2registry",
		Short:   "Derive a resource registry from API specification documents",
		Long:    `spec2registry scans machine-generated API definition documents and derives a deterministic registry of resource types: paths, namespace scopes and field-level metadata.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (spec2registry.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	buildCmd := &cobra.Command{
		Use:   "build [source-dir]",
		Short: "Build the registry from a directory of specification documents",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVarP(&output, "output", "o", "", "registry artifact path (default ./registry.json)")
	buildCmd.Flags().StringVar(&schemasDir, "schemas", "", "also write one validation schema per resource into this directory")
	buildCmd.Flags().StringVar(&scopeOverrides, "scope-overrides", "", "JSON file forcing resource keys into scope buckets")
	buildCmd.Flags().StringVar(&nameOverrides, "name-overrides", "", "JSON file with display name replacements")
	buildCmd.Flags().BoolVar(&strict, "strict", false, "skip domain documents without a domain tag")

	schemaCmd := &cobra.Command{
		Use:   "schema <resource-key>",
		Short: "Print the synthesized validation schema for a resource",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchema,
	}
	schemaCmd.Flags().StringVarP(&registryPath, "registry", "r", "./registry.json", "registry artifact to read")

	validateCmd := &cobra.Command{
		Use:   "validate <resource-key>",
		Short: "Validate a JSON payload against the registry's field metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
	validateCmd.Flags().StringVarP(&registryPath, "registry", "r", "./registry.json", "registry artifact to read")
	validateCmd.Flags().StringVarP(&payloadFile, "file", "f", "", "payload JSON file (required)")
	validateCmd.Flags().StringVar(&opKind, "op", "create", "operation kind: create or update")
	validateCmd.Flags().BoolVar(&rawJSON, "json", false, "print the raw validation result as JSON")
	_ = validateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(buildCmd, schemaCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	docs, err := document.LoadDir(cfg.Source, document.LoadOptions{Strict: cfg.Strict})
	if err != nil {
		return err
	}
	slog.Info("documents loaded", "count", len(docs), "source", cfg.Source)

	ov, err := registry.LoadOverrides(cfg.ScopeOverrides, cfg.NameOverrides)
	if err != nil {
		return err
	}

	reg := registry.Build(docs, ov)
	if err := reg.WriteFile(cfg.Output); err != nil {
		return err
	}
	slog.Info("registry written", "resources", len(reg.Resources), "path", cfg.Output)

	if cfg.SchemasDir != "" {
		if err := writeSchemas(reg, cfg.SchemasDir); err != nil {
			return err
		}
		slog.Info("validation schemas written", "dir", cfg.SchemasDir)
	}
	return nil
}

func writeSchemas(reg *registry.Registry, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create schemas directory: %w", err)
	}
	for _, key := range reg.Keys() {
		desc, _ := reg.Lookup(key)
		if err := writeSchema(filepath.Join(dir, key+".schema.json"), jsonschema.Synthesize(desc)); err != nil {
			return err
		}
	}
	// универсальная схема для нераспознанных ресурсов
	return writeSchema(filepath.Join(dir, "any.schema.json"), jsonschema.Generic())
}

func writeSchema(path string, node *jsonschema.Node) error {
	data, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	reg, err := registry.ReadFile(registryPath)
	if err != nil {
		return err
	}

	var node *jsonschema.Node
	if desc, ok := reg.Lookup(args[0]); ok {
		node = jsonschema.Synthesize(desc)
	} else {
		slog.Warn("unknown resource key, using generic schema", "key", args[0])
		node = jsonschema.Generic()
	}

	data, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	reg, err := registry.ReadFile(registryPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(payloadFile)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("unparseable payload: %w", err)
	}

	result := validate.Validate(reg, args[0], opKind, payload)

	if rawJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	renderResult(args[0], result)
	// невалидный payload — ожидаемый результат, не ошибка запуска
	return nil
}

func renderResult(key string, result validate.Result) {
	if result.Valid {
		color.Green("✓ %s payload is valid", key)
	} else {
		color.Red("✗ %s payload is missing required fields", key)
	}

	for _, field := range result.MissingFields {
		color.Red("  missing: %s", field)
	}
	for _, field := range result.ServerDefaultedFields {
		color.Yellow("  server default: %s", field)
	}
	for _, rec := range result.RecommendedFields {
		color.Cyan("  recommended: %s = %v", rec.Field, rec.Value)
	}
	for _, hint := range result.Hints {
		fmt.Println("  hint:", hint)
	}
}

// loadConfig: CLI-флаги переопределяют конфиг
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Source = args[0]
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = output
	}
	if cmd.Flags().Changed("schemas") {
		cfg.SchemasDir = schemasDir
	}
	if cmd.Flags().Changed("scope-overrides") {
		cfg.ScopeOverrides = scopeOverrides
	}
	if cmd.Flags().Changed("name-overrides") {
		cfg.NameOverrides = nameOverrides
	}
	if strict {
		cfg.Strict = true
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}
