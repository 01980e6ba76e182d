package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// Parse decodes package.json bytes.
func Parse(data []byte) (*PackageManifest, error) {
	var m PackageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &m, nil
}

// ParseFile reads and decodes a package.json from fsys.
func ParseFile(fsys afero.Fs, path string) (*PackageManifest, error) {
	data, err := readFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func readFile(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return data, nil
}
