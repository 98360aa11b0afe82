package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes contents to path, creating parent directories.
func WriteFile(t testing.TB, path, contents string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteCollection writes records as a {"data": [...]} envelope.
func WriteCollection(t testing.TB, path string, records ...string) {
	t.Helper()

	payload := `{"data":[`
	for i, rec := range records {
		if i > 0 {
			payload += ","
		}
		payload += rec
	}
	WriteFile(t, path, payload+"]}")
}

// ReadData decodes the data array of the collection at path into generic maps.
func ReadData(t testing.TB, path string) []map[string]any {
	t.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return envelope.Data
}

// ReadFile returns the contents of path as a string.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(raw)
}
