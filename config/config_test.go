package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hh.toml")
	content := "db_file = \"family.db\"\ncurrency = \"USD\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := cfg.ReadFile(path); err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if cfg.DBFile != "family.db" || cfg.Currency != "USD" {
		t.Errorf("ReadFile() = %+v", cfg)
	}
	if cfg.Language != "en" {
		t.Errorf("ReadFile() reset an absent key: language = %q", cfg.Language)
	}
}

func TestReadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hh.toml")
	if err := os.WriteFile(path, []byte("currency = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := cfg.ReadFile(path); err == nil {
		t.Error("ReadFile() of an invalid file succeeded")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hh.toml")
	if err := os.WriteFile(path, []byte("currency = \"USD\"\naddr = \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte("HH_LANGUAGE=fr\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HH_CONFIG", path)
	t.Setenv("HH_ENV_FILE", envFile)
	t.Setenv("HH_ADDR", ":7000")
	// godotenv does not override variables already set.
	t.Setenv("HH_LANGUAGE", "")
	os.Unsetenv("HH_LANGUAGE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Currency != "USD" {
		t.Errorf("currency = %q, want USD from the file", cfg.Currency)
	}
	if cfg.Addr != ":7000" {
		t.Errorf("addr = %q, want :7000 from the environment", cfg.Addr)
	}
	if cfg.Language != "fr" {
		t.Errorf("language = %q, want fr from the env file", cfg.Language)
	}
	if cfg.DBFile != "household.jsonl" {
		t.Errorf("db file = %q, want the default", cfg.DBFile)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Language = "not a language!"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted an invalid language")
	}
	cfg = Default()
	cfg.DBFile = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted an empty db file")
	}
	if tag, err := Default().Tag(); err != nil || tag.String() != "en" {
		t.Errorf("Tag() = %v, %v", tag, err)
	}
}
