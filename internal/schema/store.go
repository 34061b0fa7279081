// Package schema manages the master drone parts schema document: a versioned
// JSON file holding one or more template objects per component category.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound the backing document does not exist. Distinct from a parse
// failure, which reports the underlying error.
var ErrNotFound = errors.New("schema file not found")

// Document the decoded schema file
type Document map[string]interface{}

// Store reads and writes the schema document. A single lock serializes all
// access; writes land in a temp file and are renamed over the old document so
// readers never observe a partial write.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Read loads and decodes the document
func (s *Store) Read() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema file: %w", err)
	}
	return doc, nil
}

// Write validates and atomically replaces the document. Validation failures
// are returned as a ValidationError carrying every problem found; nothing is
// written unless the document is fully valid.
func (s *Store) Write(doc Document) error {
	if errs := Validate(doc); len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create schema dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".schema-*.json")
	if err != nil {
		return fmt.Errorf("create temp schema file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp schema file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp schema file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace schema file: %w", err)
	}
	return nil
}

// Templates returns the category→template-list mapping from a document, or
// nil when absent or malformed
func (d Document) Templates() map[string][]map[string]interface{} {
	raw, ok := d["components"].(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string][]map[string]interface{}, len(raw))
	for slug, v := range raw {
		list, ok := v.([]interface{})
		if !ok {
			continue
		}
		var templates []map[string]interface{}
		for _, item := range list {
			if m, ok := item.(map[string]interface{}); ok {
				templates = append(templates, m)
			}
		}
		out[slug] = templates
	}
	return out
}
