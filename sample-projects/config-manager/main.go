package main

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	goresolve "github.com/reoring/goresolve"
	"gopkg.in/yaml.v3"
)

// configSchema declares the application configuration: required connection
// settings plus defaults for everything operational. The schema itself lives
// as YAML so it can be reviewed next to the config files it governs.
const configSchema = `
type: object
properties:
  app:
    type: object
    properties:
      name: {type: string}
      environment: {type: string, default: development, enum: [development, staging, production]}
      host: {type: string, default: 0.0.0.0}
      port: {type: integer, default: 8080, minimum: 1, maximum: 65535}
    required: [name, environment, host, port]
    if:
      properties:
        environment: {const: production}
    then:
      properties:
        tls:
          type: object
          properties:
            enabled: {type: boolean, default: true}
            certFile: {type: string}
            keyFile: {type: string}
          required: [enabled, certFile, keyFile]
  database:
    type: object
    properties:
      host: {type: string}
      port: {type: integer, default: 5432}
      database: {type: string}
      username: {type: string}
      password: {type: string, default: ""}
      maxConns: {type: integer, default: 10, minimum: 1}
      sslMode: {type: string, default: prefer, enum: [disable, prefer, require]}
    required: [host, port, database, username, maxConns, sslMode]
  logging:
    type: object
    properties:
      level: {type: string, default: info, enum: [debug, info, warn, error]}
      format: {type: string, default: json, enum: [json, text]}
      output: {type: string, default: stdout}
    required: [level, format, output]
required: [app, database, logging]
additionalProperties: false
`

// ConfigManager loads, overlays and resolves configuration documents.
type ConfigManager struct {
	schema goresolve.Schema
}

func NewConfigManager() (*ConfigManager, error) {
	s, err := goresolve.SchemaFromYAML([]byte(configSchema))
	if err != nil {
		return nil, err
	}
	if err := goresolve.CheckSchema(s); err != nil {
		return nil, fmt.Errorf("config schema is malformed: %w", err)
	}
	return &ConfigManager{schema: s}, nil
}

// LoadConfig reads base.yaml, overlays <env>.yaml when present, expands
// ${VAR} / ${VAR:-default} references and resolves the result against the
// schema. Defaults and conditional sections are filled in by the resolution.
func (cm *ConfigManager) LoadConfig(ctx context.Context, env string) (map[string]any, error) {
	base, err := cm.loadValue("base.yaml")
	if err != nil {
		return nil, fmt.Errorf("load base config: %w", err)
	}
	envFile := env + ".yaml"
	if _, err := os.Stat(envFile); err == nil {
		overlay, err := cm.loadValue(envFile)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", env, err)
		}
		base = overlayValue(base, overlay)
	}
	out, err := goresolve.ResolveValues(ctx, cm.schema, base)
	if err != nil {
		return nil, err
	}
	m, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("resolved config is not a mapping")
	}
	return m, nil
}

// ValidateConfig resolves the configuration and prints every issue.
func (cm *ConfigManager) ValidateConfig(ctx context.Context, env string) error {
	_, err := cm.LoadConfig(ctx, env)
	if err != nil {
		if iss, ok := goresolve.AsIssues(err); ok {
			for _, it := range iss {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", it.PathString(), it.Message)
			}
			return fmt.Errorf("%d issue(s) found", len(iss))
		}
		return err
	}
	fmt.Printf("configuration for environment %q is valid\n", env)
	return nil
}

// ShowConfig prints the fully resolved configuration, masking secrets.
func (cm *ConfigManager) ShowConfig(ctx context.Context, env string, maskSecrets bool) error {
	cfg, err := cm.LoadConfig(ctx, env)
	if err != nil {
		return err
	}
	if maskSecrets {
		maskKey(cfg, "database", "password")
		maskKey(cfg, "app", "tls", "keyFile")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("resolved configuration (%s):\n%s", env, data)
	return nil
}

func (cm *ConfigManager) loadValue(filename string) (any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return goresolve.ValueFromYAML(expandEnvVars(data))
}

// expandEnvVars substitutes ${VAR} and ${VAR:-default} references.
func expandEnvVars(data []byte) []byte {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		if name, def, ok := strings.Cut(expr, ":-"); ok {
			if v := os.Getenv(name); v != "" {
				return []byte(v)
			}
			return []byte(def)
		}
		return []byte(os.Getenv(expr))
	})
}

// overlayValue folds the overlay document into the base: mappings merge
// member-wise, everything else from the overlay replaces the base.
func overlayValue(base, overlay any) any {
	bm, okb := base.(map[string]any)
	om, oko := overlay.(map[string]any)
	if !okb || !oko {
		return overlay
	}
	for k, ov := range om {
		if bv, has := bm[k]; has {
			bm[k] = overlayValue(bv, ov)
		} else {
			bm[k] = ov
		}
	}
	return bm
}

func maskKey(m map[string]any, path ...string) {
	for i, k := range path {
		if i == len(path)-1 {
			if _, ok := m[k]; ok {
				m[k] = "***masked***"
			}
			return
		}
		next, ok := m[k].(map[string]any)
		if !ok {
			return
		}
		m = next
	}
}

const baseTemplate = `# Base configuration (common settings)
app:
  name: "mywebapp"

database:
  host: "localhost"
  database: "myapp"
  username: "postgres"
  password: "${DB_PASSWORD:-}"

logging: {}
`

func generateTemplate() error {
	if err := os.WriteFile("base.yaml", []byte(baseTemplate), 0o644); err != nil {
		return err
	}
	fmt.Println("generated base.yaml; resolve it with: go run . show --env=development")
	return nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cm, err := NewConfigManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()

	switch os.Args[1] {
	case "validate":
		if err := cm.ValidateConfig(ctx, getEnvFlag()); err != nil {
			fmt.Fprintf(os.Stderr, "validation failed: %v\n", err)
			os.Exit(1)
		}
	case "show":
		if err := cm.ShowConfig(ctx, getEnvFlag(), !hasFlag("--no-mask")); err != nil {
			fmt.Fprintf(os.Stderr, "show failed: %v\n", err)
			os.Exit(1)
		}
	case "generate":
		if err := generateTemplate(); err != nil {
			fmt.Fprintf(os.Stderr, "generate failed: %v\n", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`goresolve config manager sample

Usage: %s <command> [flags...]

Commands:
  validate [--env=<env>]            Resolve and validate configuration
  show [--env=<env>] [--no-mask]    Print the resolved configuration
  generate                          Generate a template base.yaml

Environment files:
  base.yaml            Base configuration (required)
  <environment>.yaml   Environment-specific overrides (optional)
`, os.Args[0])
}

func getEnvFlag() string {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "--env=") {
			return strings.TrimPrefix(arg, "--env=")
		}
	}
	return "development"
}

func hasFlag(flag string) bool {
	for _, arg := range os.Args {
		if arg == flag {
			return true
		}
	}
	return false
}
