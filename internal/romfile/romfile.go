// Package romfile resolves a filesystem path given on the CLI to a raw
// ROM image, transparently unpacking the .zip and .7z archives
// commercial ROM dumps are commonly distributed in. This is not a save
// feature (Non-goal): it only ever reads.
package romfile

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bodgit/sevenzip"
)

var (
	zipSignature = []byte{'P', 'K', 0x03, 0x04}
	sevenZSig    = []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}
)

// Load reads path and returns the raw ROM bytes, extracting the first
// file entry if path is a zip or 7z archive.
func Load(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("romfile: %w", err)
	}

	switch {
	case bytes.HasPrefix(raw, sevenZSig):
		return extractSevenZip(path)
	case bytes.HasPrefix(raw, zipSignature):
		return extractZip(raw)
	default:
		return raw, nil
	}
}

func extractZip(raw []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("romfile: opening zip archive: %w", err)
	}
	entry, err := firstFile(zipEntries(zr))
	if err != nil {
		return nil, err
	}
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("romfile: opening %s in archive: %w", entry.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func zipEntries(zr *zip.Reader) []*zip.File { return zr.File }

func firstFile(files []*zip.File) (*zip.File, error) {
	for _, f := range files {
		if !f.FileInfo().IsDir() {
			return f, nil
		}
	}
	return nil, fmt.Errorf("romfile: archive contains no files")
}

func extractSevenZip(path string) ([]byte, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("romfile: opening 7z archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("romfile: opening %s in archive: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		return data, nil
	}
	return nil, fmt.Errorf("romfile: archive contains no files")
}
