package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"TransientLoader/internal/domain"
	"TransientLoader/internal/ports"
)

// FilesystemStore lays out downloaded artifacts under
// {root}/{year}/{month}/{day}/{id} and writes the metadata sidecar there.
type FilesystemStore struct {
	root string
}

var _ ports.ArtifactStore = (*FilesystemStore)(nil)

// NewFilesystemStore roots the artifact tree at dir.
func NewFilesystemStore(dir string) *FilesystemStore {
	return &FilesystemStore{root: dir}
}

// Dir derives the artifact directory from the record's id and datetime.
// The date portion of the datetime field supplies year, month and day.
func (s *FilesystemStore) Dir(rec domain.TransientRecord) (string, error) {
	fields := strings.Fields(rec.Datetime)
	if len(fields) == 0 {
		return "", fmt.Errorf("transient %s: empty datetime", rec.ID)
	}
	parts := strings.Split(fields[0], "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("transient %s: malformed datetime date %q", rec.ID, fields[0])
	}
	return filepath.Join(s.root, parts[0], parts[1], parts[2], rec.ID), nil
}

// EnsureDir creates the artifact directory and returns its path.
func (s *FilesystemStore) EnsureDir(rec domain.TransientRecord) (string, error) {
	dir, err := s.Dir(rec)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("create artifact dir %s: %w", dir, err)
	}
	return dir, nil
}

// WriteSidecar writes {id}.csv next to the artifacts: one header row and
// one value row with the metadata fields in table order.
func (s *FilesystemStore) WriteSidecar(rec domain.TransientRecord) error {
	dir, err := s.Dir(rec)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, rec.ID+".csv")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sidecar %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(domain.MetadataColumns()); err != nil {
		_ = file.Close()
		return fmt.Errorf("write sidecar header: %w", err)
	}
	if err := writer.Write(rec.MetadataValues()); err != nil {
		_ = file.Close()
		return fmt.Errorf("write sidecar row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush sidecar: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close sidecar: %w", err)
	}
	return nil
}
