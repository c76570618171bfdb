package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"netinventory/internal/models"
)

// FileWriter writes the output document to a fixed path. Every call replaces
// the whole file.
type FileWriter struct {
	Path string
}

// NewFileWriter creates a new FileWriter for path
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{Path: path}
}

// WriteRecords serializes records as a compact JSON array and atomically
// replaces the file with it. A reader sees either the previous document or
// the new one, never a partial write.
func (w *FileWriter) WriteRecords(records []models.InstanceRecord) error {
	data, err := MarshalRecords(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary output file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, w.Path); err != nil {
		return fmt.Errorf("replacing %s: %w", w.Path, err)
	}
	return nil
}

// ReadRecords reads the document at the writer's path
func (w *FileWriter) ReadRecords() ([]models.InstanceRecord, error) {
	return ReadRecords(w.Path)
}

// MarshalRecords encodes records the way they are stored on disk. Interface
// lists are always arrays, never null.
func MarshalRecords(records []models.InstanceRecord) ([]byte, error) {
	out := make([]models.InstanceRecord, len(records))
	for i, r := range records {
		if r.Interfaces == nil {
			r.Interfaces = []models.InterfaceRecord{}
		}
		out[i] = r
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("error marshaling records to JSON: %w", err)
	}
	return data, nil
}

// ReadRecords decodes an output document. A missing file is not an error and
// yields no records.
func ReadRecords(path string) ([]models.InstanceRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var records []models.InstanceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return records, nil
}
