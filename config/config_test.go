package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Workers != 1 || !cfg.Images || !cfg.IncludeSKU || cfg.SKUPrefix != "CAT" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogstage.yaml")
	content := `pdf: catalog.pdf
brand: Artos
workers: 4
strict: true
log:
  level: debug
  json: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PDF != "catalog.pdf" || cfg.Brand != "Artos" || cfg.Workers != 4 || !cfg.Strict {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	// Unset keys keep their defaults.
	if !cfg.Images || cfg.OutDir != "staging_output" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("CATALOGSTAGE_BRAND=Lumi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CATALOGSTAGE_BRAND", "")
	os.Unsetenv("CATALOGSTAGE_BRAND")

	cfg, err := Load("", envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Brand != "Lumi" {
		t.Errorf("expected brand from .env, got %q", cfg.Brand)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), ""); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CATALOGSTAGE_PDF":      "in.pdf",
		"CATALOGSTAGE_WORKERS":  "8",
		"CATALOGSTAGE_SQLITE":   "true",
		"CATALOGSTAGE_IMAGES":   "0",
		"CATALOGSTAGE_LOG_JSON": "1",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.PDF != "in.pdf" || cfg.Workers != 8 || !cfg.SQLite || cfg.Images || !cfg.Log.JSON {
		t.Errorf("unexpected config %+v", cfg)
	}

	env["CATALOGSTAGE_WORKERS"] = "many"
	if err := Default().ApplyEnv(lookup); err == nil {
		t.Error("expected error for invalid worker count")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(c *Config) { c.PDF = "a.pdf" }, false},
		{"no pdf", func(c *Config) {}, true},
		{"zero workers", func(c *Config) { c.PDF = "a.pdf"; c.Workers = 0 }, true},
		{"bad pages", func(c *Config) { c.PDF = "a.pdf"; c.Pages = "3-1" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParsePages(t *testing.T) {
	tests := []struct {
		expr    string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"3", []int{3}, false},
		{"1-3,5", []int{1, 2, 3, 5}, false},
		{" 5 , 2-3 ,3", []int{2, 3, 5}, false},
		{"0", nil, true},
		{"4-2", nil, true},
		{"a-b", nil, true},
		{"1-999999999", nil, true},
		{"100000", []int{100000}, false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParsePages(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
