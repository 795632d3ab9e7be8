package romfile

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRawFilePassesThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.gb")
	want := []byte{0x00, 0xC3, 0x50, 0x01}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Load = %v, want %v", got, want)
	}
}

func TestLoadExtractsFirstFileFromZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.zip")
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	zw := zip.NewWriter(f)
	entry, err := zw.Create("game.gb")
	if err != nil {
		t.Fatalf("zip Create entry: %v", err)
	}
	if _, err := entry.Write(want); err != nil {
		t.Fatalf("zip Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file Close: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Load = %v, want %v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.gb")); err == nil {
		t.Fatalf("expected an error for a missing path")
	}
}
