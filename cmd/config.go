package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"db-compare/internal/dialect"
	"db-compare/internal/report"
	"db-compare/internal/source"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// Config keys, laid out like the sections of config.ini.
const (
	KeyDB1Path    = "paths.db1_path"
	KeyDB2Path    = "paths.db2_path"
	KeyDB1Driver  = "paths.db1_driver"
	KeyDB2Driver  = "paths.db2_driver"
	KeyOutputPath = "paths.output_path"
	KeyTableName  = "tables.table_name"
	KeyCol1Prefix = "columns.col1_prefix"
	KeyCol2Prefix = "columns.col2_prefix"
)

// compareKeys are the six values a comparison run cannot do without.
var compareKeys = []string{KeyDB1Path, KeyDB2Path, KeyTableName, KeyCol1Prefix, KeyCol2Prefix, KeyOutputPath}

// ConfigurationError reports a missing or malformed configuration value.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Key, e.Reason)
}

type Config struct {
	Source1    source.Location
	Source2    source.Location
	Table      string
	Labels     report.Labels
	OutputPath string
}

// LoadConfig reads the configuration from viper and validates the required keys.
// Both database locations are always required.
func LoadConfig(required ...string) (*Config, error) {
	need := map[string]bool{KeyDB1Path: true, KeyDB2Path: true}
	for _, k := range required {
		need[k] = true
	}
	for _, k := range append([]string{KeyDB1Path, KeyDB2Path}, required...) {
		if strings.TrimSpace(viper.GetString(k)) == "" {
			return nil, &ConfigurationError{Key: k, Reason: "is required"}
		}
	}

	cfg := &Config{
		Table: strings.TrimSpace(viper.GetString(KeyTableName)),
		Labels: report.Labels{
			Left:  strings.TrimSpace(viper.GetString(KeyCol1Prefix)),
			Right: strings.TrimSpace(viper.GetString(KeyCol2Prefix)),
		},
		OutputPath: strings.TrimSpace(viper.GetString(KeyOutputPath)),
	}

	var err error
	cfg.Source1, err = source.ParseLocation(viper.GetString(KeyDB1Path), viper.GetString(KeyDB1Driver))
	if err != nil {
		return nil, &ConfigurationError{Key: KeyDB1Path, Reason: err.Error()}
	}
	cfg.Source2, err = source.ParseLocation(viper.GetString(KeyDB2Path), viper.GetString(KeyDB2Driver))
	if err != nil {
		return nil, &ConfigurationError{Key: KeyDB2Path, Reason: err.Error()}
	}

	if need[KeyTableName] && !dialect.IsValidIdentifier(cfg.Table) {
		return nil, &ConfigurationError{Key: KeyTableName, Reason: fmt.Sprintf("%q is not a valid table name", cfg.Table)}
	}
	if need[KeyCol1Prefix] && need[KeyCol2Prefix] && cfg.Labels.Left == cfg.Labels.Right {
		return nil, &ConfigurationError{Key: KeyCol2Prefix, Reason: fmt.Sprintf("must differ from %s", KeyCol1Prefix)}
	}
	if need[KeyOutputPath] {
		switch strings.ToLower(filepath.Ext(cfg.OutputPath)) {
		case ".xlsx", ".xlsm":
		default:
			return nil, &ConfigurationError{Key: KeyOutputPath, Reason: "must be an .xlsx file"}
		}
	}
	return cfg, nil
}

// loadINI flattens an ini file into the nested map viper expects: one map per section,
// keys lower-cased. Keys outside any section land at the top level.
func loadINI(path string) (map[string]interface{}, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	values := make(map[string]interface{})
	for _, sec := range f.Sections() {
		keys := make(map[string]interface{}, len(sec.Keys()))
		for _, k := range sec.Keys() {
			keys[strings.ToLower(k.Name())] = k.String()
		}
		if sec.Name() == ini.DefaultSection {
			for k, v := range keys {
				values[k] = v
			}
			continue
		}
		values[strings.ToLower(sec.Name())] = keys
	}
	return values, nil
}
