package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mvdapps/panorama/internal/cache"
	"github.com/mvdapps/panorama/internal/config"
	"github.com/mvdapps/panorama/internal/database"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newStore builds the configured cache store. The returned close function
// releases the store's resources.
func newStore(cfg *config.Config) (cache.Store, func(), error) {
	switch cfg.Cache.Backend {
	case "mysql":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open > %w", err)
		}
		if err := database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("database.Migrate > %w", err)
		}
		return cache.NewDBStore(db), func() { _ = db.Close() }, nil
	default:
		return cache.NewFileStore(cfg.Cache.Directory), func() {}, nil
	}
}

// structuredOutput reports whether --output selected a structured format.
func structuredOutput() bool {
	return outputFormat != "text" && outputFormat != ""
}

// renderStructured writes v as JSON or YAML depending on --output.
func renderStructured(w io.Writer, v any) error {
	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("json.Encode > %w", err)
		}
		return nil
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer func() {
			_ = encoder.Close()
		}()
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("yaml.Encode > %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q", outputFormat)
	}
}
