package manifest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestParse(t *testing.T) {
	data := []byte(`{
  "name": "blog",
  "version": "1.0.0",
  "scripts": {"start": "nodemon src/index.js"},
  "dependencies": {"express": "^4.19.2"}
}`)

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := &PackageManifest{
		Name:         "blog",
		Version:      "1.0.0",
		Scripts:      map[string]string{"start": "nodemon src/index.js"},
		Dependencies: map[string]string{"express": "^4.19.2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"name": `)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestParseFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/p/package.json", []byte(`{"name":"shop","version":"0.1.0"}`), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := ParseFile(fsys, "/p/package.json")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if m.Name != "shop" || m.Version != "0.1.0" {
		t.Errorf("got name=%q version=%q", m.Name, m.Version)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(afero.NewMemMapFs(), "/nope/package.json")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ParseFile() error = %v, want fs.ErrNotExist", err)
	}
}
