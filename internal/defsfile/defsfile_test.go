package defsfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cabsl-go/cabsl/internal/defsfile"
)

type kickDefs struct {
	A int     `yaml:"a"`
	B float64 `yaml:"b"`
}

func writeCfg(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".cfg"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadParsesKnownKeys(t *testing.T) {
	dir := t.TempDir()
	writeCfg(t, dir, "Kick", "a: 7\nb: 2.5\n")

	got, err := defsfile.Load[kickDefs](dir, "Kick")
	if err != nil {
		t.Fatal(err)
	}
	if got.A != 7 || got.B != 2.5 {
		t.Fatalf("got %+v, want {A:7 B:2.5}", got)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	writeCfg(t, dir, "Kick", "a: 7\nbb: 2.5\n")

	if _, err := defsfile.Load[kickDefs](dir, "Kick"); err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	dir := t.TempDir()
	if _, err := defsfile.Load[kickDefs](dir, "NoSuchOption"); err == nil {
		t.Fatal("expected an error for a missing definitions file")
	}
}

func TestLoadMalformedYAMLFails(t *testing.T) {
	dir := t.TempDir()
	writeCfg(t, dir, "Kick", "a: [this is not closed\n")

	if _, err := defsfile.Load[kickDefs](dir, "Kick"); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
