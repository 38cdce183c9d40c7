// Package config loads run settings for the catalogstage command.
//
// Settings are layered, later sources winning:
//
//  1. built-in defaults
//  2. a YAML file
//  3. a .env file, loaded into the process environment
//  4. CATALOGSTAGE_* environment variables
//  5. command-line flags, applied by the caller
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix starts every environment variable the config reads.
const EnvPrefix = "CATALOGSTAGE_"

// Config holds the settings of one run.
type Config struct {
	// PDF is the input document.
	PDF string `yaml:"pdf"`

	// OutDir receives every output file.
	OutDir string `yaml:"out_dir"`

	// Output, when set, names the staging CSV; its directory replaces OutDir.
	Output string `yaml:"output"`

	// Pages selects pages, e.g. "1-3,5". Empty means all.
	Pages string `yaml:"pages"`

	Brand     string `yaml:"brand"`
	SKUPrefix string `yaml:"sku_prefix"`

	// IncludeSKU selects the staging CSV layout with the sku column.
	IncludeSKU bool `yaml:"include_sku"`

	Strict  bool `yaml:"strict"`
	Workers int  `yaml:"workers"`
	Images  bool `yaml:"images"`
	SQLite  bool `yaml:"sqlite"`

	Log   LogConfig   `yaml:"log"`
	Serve ServeConfig `yaml:"serve"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// ServeConfig configures the review server.
type ServeConfig struct {
	Addr string `yaml:"addr"`
	Dir  string `yaml:"dir"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		OutDir:     "staging_output",
		SKUPrefix:  "CAT",
		IncludeSKU: true,
		Workers:    1,
		Images:     true,
		Log:        LogConfig{Level: "info"},
		Serve:      ServeConfig{Addr: ":8080", Dir: "staging_output"},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), envFile (skipped when missing) and the environment.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from CATALOGSTAGE_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("PDF", &c.PDF)
	str("OUT_DIR", &c.OutDir)
	str("OUTPUT", &c.Output)
	str("PAGES", &c.Pages)
	str("BRAND", &c.Brand)
	str("SKU_PREFIX", &c.SKUPrefix)
	str("LOG_LEVEL", &c.Log.Level)
	str("ADDR", &c.Serve.Addr)
	str("SERVE_DIR", &c.Serve.Dir)

	for name, dst := range map[string]*bool{
		"INCLUDE_SKU": &c.IncludeSKU,
		"STRICT":      &c.Strict,
		"IMAGES":      &c.Images,
		"SQLITE":      &c.SQLite,
		"LOG_JSON":    &c.Log.JSON,
	} {
		if err := boolean(name, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup(EnvPrefix + "WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", EnvPrefix, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate reports settings that cannot produce a run.
func (c *Config) Validate() error {
	if c.PDF == "" {
		return errors.New("no input PDF given")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := ParsePages(c.Pages); err != nil {
		return err
	}
	return nil
}

// MaxPage is the highest page number a selection may name.
const MaxPage = 100000

// ParsePages parses a page selection such as "1-3,5,9" into sorted,
// unique 1-indexed page numbers. An empty selection returns nil.
func ParsePages(expr string) ([]int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	seen := map[int]bool{}
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		if start < 1 || end < start {
			return nil, fmt.Errorf("invalid page range %q", part)
		}
		if end > MaxPage {
			return nil, fmt.Errorf("page range %q exceeds page %d", part, MaxPage)
		}
		for p := start; p <= end; p++ {
			seen[p] = true
		}
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}
