package cardvault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.VaultFile != "vault.csv" || cfg.ActivityFile != "activity.csv" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if len(cfg.VaultColumns) == 0 {
		t.Error("default vault columns missing")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{
		"vault_file": "cards.csv",
		"csv_config": {"sep": ";", "decimal": ",", "date_format": "02.01.2006"}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.VaultFile != "cards.csv" {
		t.Errorf("vault file = %q", cfg.VaultFile)
	}
	if cfg.CSV.Sep != ";" || cfg.CSV.Decimal != "," {
		t.Errorf("csv config not applied: %+v", cfg.CSV)
	}
}

func TestLoadConfigRejectsEncoding(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{"csv_config": {"encoding": "latin-1"}}`))
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Fatalf("err = %v, want ErrUnsupportedEncoding", err)
	}
}

func TestArchiveSchemaSharesVaultColumns(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{}`))
	if err != nil {
		t.Fatal(err)
	}
	s, err := cfg.ArchiveSchema()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Columns()) != len(cfg.VaultColumns) {
		t.Errorf("archive columns = %d, want the vault's %d", len(s.Columns()), len(cfg.VaultColumns))
	}
}

func TestArchiveSchemaOverride(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{
		"archive_columns": [
			{"name": "pid", "type": "string"},
			{"name": "name", "type": "string"},
			{"name": "out date", "type": "date"}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	s, err := cfg.ArchiveSchema()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Columns()) != 3 || !s.Has("out date") || s.Has("comment") {
		t.Errorf("unexpected archive schema: %+v", s.Columns())
	}
}

func TestConfigSchemas(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := cfg.VaultSchema(); err != nil {
		t.Error(err)
	}
	if _, err := cfg.ActivitySchema(); err != nil {
		t.Error(err)
	}
	if _, err := cfg.TimelineSchema(); err != nil {
		t.Error(err)
	}
}
