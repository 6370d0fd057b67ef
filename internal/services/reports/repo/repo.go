// Package repo provides the JSON file report store
package repo

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	perr "laborreport/internal/platform/errors"
	"laborreport/internal/platform/logger"
	"laborreport/internal/services/reports/domain"
)

// DefaultPath is the report document used when LABOR_REPORT_FILE is unset
const DefaultPath = "data/reports.json"

// FileStore keeps every report in one pretty printed JSON document. Each
// write rewrites the whole file; there is no locking, so two processes
// writing at once lose one of the updates
type FileStore struct {
	Path string
	log  *logger.Logger
}

// NewFile constructs a FileStore at path
func NewFile(path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{Path: path, log: logger.Named("reports.repo")}
}

var _ domain.Store = (*FileStore)(nil)

// Load reads the document. A missing file is an empty document; so is a
// malformed one, which is logged and replaced on the next write
func (s *FileStore) Load() (domain.Document, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Document{}, nil
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "read %s", s.Path)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return domain.Document{}, nil
	}
	var doc domain.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		s.log.Warn().Err(err).Str("path", s.Path).Msg("report file is malformed; treating as empty")
		return domain.Document{}, nil
	}
	if doc == nil {
		doc = domain.Document{}
	}
	return doc, nil
}

// Upsert stores m under name, replacing any report of that name
func (s *FileStore) Upsert(name string, m domain.Metrics) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	doc[name] = m
	return s.write(doc)
}

// Get returns the report stored under name
func (s *FileStore) Get(name string) (domain.Metrics, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	m, ok := doc[name]
	if !ok {
		return nil, perr.NotFoundf("report %q not found", name)
	}
	return m, nil
}

// List returns the stored report names sorted
func (s *FileStore) List() ([]string, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return doc.Names(), nil
}

// Delete removes the report stored under name
func (s *FileStore) Delete(name string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := doc[name]; !ok {
		return perr.NotFoundf("report %q not found", name)
	}
	delete(doc, name)
	return s.write(doc)
}

// write replaces the file through a temp file in the same directory
func (s *FileStore) write(doc domain.Document) error {
	b, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode reports")
	}
	b = append(b, '\n')

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "create %s", dir)
	}
	tmp, err := os.CreateTemp(dir, ".reports-*.json")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "create temp file in %s", dir)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return perr.Wrapf(err, perr.ErrorCodeIO, "write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "close %s", tmp.Name())
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "chmod %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "replace %s", s.Path)
	}
	s.log.Debug().Str("path", s.Path).Int("reports", len(doc)).Msg("report file written")
	return nil
}
