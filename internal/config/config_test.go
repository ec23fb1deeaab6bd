package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGenerateDefaults(t *testing.T) {
	cfg, err := LoadGenerate(writeConfig(t, "language: he\ncount: 5\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Language != "he" || cfg.Count != 5 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.Length != 4 || cfg.Order != "first" || cfg.Riddles != "template" || cfg.Output != "puzzles.json" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadGenerateRejectsUnknownKeys(t *testing.T) {
	if _, err := LoadGenerate(writeConfig(t, "lang: he\n")); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestFinalizeValidation(t *testing.T) {
	bad := []Generate{
		func() Generate { c := DefaultGenerate(); c.Length = 1; return c }(),
		func() Generate { c := DefaultGenerate(); c.Count = 0; return c }(),
		func() Generate { c := DefaultGenerate(); c.Order = "random"; return c }(),
		func() Generate { c := DefaultGenerate(); c.Riddles = "llm"; return c }(),
		func() Generate { c := DefaultGenerate(); c.Riddles = "gemini"; return c }(),
		func() Generate { c := DefaultGenerate(); c.Output = " "; return c }(),
	}
	for i := range bad {
		if err := bad[i].Finalize(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, bad[i])
		}
	}

	ok := DefaultGenerate()
	ok.Riddles = "GEMINI"
	ok.GCPProject = "proj"
	if err := ok.Finalize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok.Riddles != "gemini" {
		t.Fatalf("expected lowercased provider, got %q", ok.Riddles)
	}
}
