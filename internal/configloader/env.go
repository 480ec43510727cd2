package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/gomdhl/pkg/config"
)

// envVarPrefix is the prefix for all gomdhl environment variables.
const envVarPrefix = "GOMDHL_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeDuration
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"NODE_TYPES":       {field: "node_types", typ: envTypeSlice},
	"CLASS_PREFIX":     {field: "class_prefix", typ: envTypeString},
	"FLAVOR":           {field: "flavor", typ: envTypeString},
	"PERSIST_DETECTED": {field: "persist_detected", typ: envTypeBool},
	"MEMO_ENABLED":     {field: "memo.enabled", typ: envTypeBool},
	"MEMO_TTL":         {field: "memo.ttl", typ: envTypeDuration},
	"FORMAT":           {field: "format", typ: envTypeString},
	"JOBS":             {field: "jobs", typ: envTypeInt},
	"WRITE":            {field: "write", typ: envTypeBool},
	"IGNORE":           {field: "ignore", typ: envTypeSlice},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMDHL_ (e.g., GOMDHL_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q (e.g. 90s, 10m)", envVar, value)
		}
		return setDurationField(cfg, mapping.field, d)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "class_prefix":
		cfg.ClassPrefix = value
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "persist_detected":
		cfg.PersistDetected = config.Bool(value)
	case "memo.enabled":
		cfg.Memo.Enabled = config.Bool(value)
	case "write":
		cfg.Write = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setDurationField(cfg *config.Config, field string, value time.Duration) error {
	switch field {
	case "memo.ttl":
		cfg.Memo.TTL = value
	default:
		return fmt.Errorf("unknown duration field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "node_types":
		cfg.NodeTypes = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GOMDHL_NODE_TYPES":       "Comma-separated node types to highlight (e.g. code_block)",
		"GOMDHL_CLASS_PREFIX":     "Prefix for scope classes (default hljs-)",
		"GOMDHL_FLAVOR":           "Markdown flavor: commonmark or gfm",
		"GOMDHL_PERSIST_DETECTED": "Record detected languages in fences: true or false",
		"GOMDHL_MEMO_ENABLED":     "Memoize highlighter results: true or false",
		"GOMDHL_MEMO_TTL":         "Memoization lifetime, e.g. 10m",
		"GOMDHL_FORMAT":           "Output format: text, json, html, or ansi",
		"GOMDHL_JOBS":             "Number of parallel workers (0 = auto)",
		"GOMDHL_WRITE":            "Write detected languages back to files: true or false",
		"GOMDHL_IGNORE":           "Comma-separated list of ignore patterns",
	}
}
