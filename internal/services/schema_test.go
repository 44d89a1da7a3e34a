package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"alfredoptarigan/resume-insights/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSchema(t *testing.T) {
	path := writeFile(t, "schema.json", `{"name":"string","skills":["string"]}`)

	schema, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("LoadSchema() error = %v", err)
	}

	m, ok := schema.Value.(map[string]any)
	if !ok || m["name"] != "string" {
		t.Errorf("Value = %#v", schema.Value)
	}
	if !strings.Contains(schema.Text, "\n    \"name\": \"string\"") {
		t.Errorf("Text not indented with 4 spaces: %q", schema.Text)
	}
}

func TestLoadSchemaErrors(t *testing.T) {
	_, err := LoadSchema(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, models.KindError(models.ErrConfigMissing)) {
		t.Errorf("missing file error = %v, want ConfigMissing", err)
	}

	_, err = LoadSchema(writeFile(t, "bad.json", `{"name":`))
	if !errors.Is(err, models.KindError(models.ErrJSONParse)) {
		t.Errorf("bad json error = %v, want JsonParseError", err)
	}
}
