package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "schema.json"))
}

func TestStoreReadMissingFile(t *testing.T) {
	s := tempStore(t)

	_, err := s.Read()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read on missing file = %v, want ErrNotFound", err)
	}
}

func TestStoreReadCorruptFile(t *testing.T) {
	s := tempStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := s.Read()
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Read on corrupt file = %v, want parse error distinct from ErrNotFound", err)
	}
}

func TestStoreWriteReadRoundTrip(t *testing.T) {
	s := tempStore(t)

	doc := Document{
		"schema_version": "v2",
		"components": map[string]interface{}{
			"frames": []interface{}{
				map[string]interface{}{"pid": "FRM-0001", "name": "Frame"},
			},
		},
	}
	if err := s.Write(doc); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got["schema_version"] != "v2" {
		t.Errorf("schema_version = %v", got["schema_version"])
	}
	if got.Templates()["frames"][0]["pid"] != "FRM-0001" {
		t.Errorf("Templates = %v", got.Templates())
	}
}

func TestStoreWriteRejectsInvalidDocument(t *testing.T) {
	s := tempStore(t)

	good := Document{
		"schema_version": "v2",
		"components": map[string]interface{}{
			"frames": []interface{}{
				map[string]interface{}{"pid": "FRM-0001"},
			},
		},
	}
	if err := s.Write(good); err != nil {
		t.Fatalf("Write: %v", err)
	}

	bad := Document{"schema_version": "v2", "components": "nope"}
	err := s.Write(bad)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Write(bad) = %v, want ValidationError", err)
	}
	if len(verr.Problems) == 0 {
		t.Error("ValidationError carries no problems")
	}

	// The previous document is untouched after a rejected write
	got, readErr := s.Read()
	if readErr != nil {
		t.Fatalf("Read after rejected write: %v", readErr)
	}
	if got.Templates()["frames"] == nil {
		t.Error("previous document lost after rejected write")
	}
}

func TestStoreWriteLeavesNoTempFiles(t *testing.T) {
	s := tempStore(t)

	doc := Document{
		"schema_version": "v2",
		"components": map[string]interface{}{
			"frames": []interface{}{
				map[string]interface{}{"pid": "FRM-0001"},
			},
		},
	}
	if err := s.Write(doc); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory has leftovers: %v", names)
	}
}

func TestDocumentTemplatesMalformed(t *testing.T) {
	if tpl := (Document{"components": "nope"}).Templates(); tpl != nil {
		t.Errorf("Templates on malformed doc = %v, want nil", tpl)
	}
	if tpl := (Document{}).Templates(); tpl != nil {
		t.Errorf("Templates on empty doc = %v, want nil", tpl)
	}
}
