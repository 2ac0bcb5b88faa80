package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	yaml "gopkg.in/yaml.v3"
)

// yamlLoader is a kong.ConfigurationLoader for a flat YAML mapping keyed by
// flag name, for example:
//
//	omdb-api-key: abc123
//	max-age: 12h
//	addr: ":8080"
//
// Underscores may be used in place of hyphens.
func yamlLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var resolver kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if v, ok := values[flag.Name]; ok {
			return v, nil
		}
		return values[strings.ReplaceAll(flag.Name, "-", "_")], nil
	}
	return resolver, nil
}

func defaultConfigPath() string {
	if path := os.Getenv("TOPLIST_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "toplist.yaml"
	}
	return filepath.Join(home, ".toplist", "config.yaml")
}
