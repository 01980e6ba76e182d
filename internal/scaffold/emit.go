package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/wavythreads/wavythreads/internal/manifest"
	"github.com/wavythreads/wavythreads/internal/platform"
	"github.com/wavythreads/wavythreads/internal/project"
)

// Result holds the outcome of an emission.
type Result struct {
	Root     string
	Files    []string
	Warnings []string
}

// Emit renders files for spec and writes them under root, replacing any
// existing content. Parent directories must already exist. When the manifest
// is among files it is validated afterwards and problems become warnings.
func Emit(fsys afero.Fs, root string, files []File, spec *project.Spec) (*Result, error) {
	result := &Result{Root: root}

	for _, f := range files {
		data, err := Render(f, spec)
		if err != nil {
			return result, err
		}

		outPath := filepath.Join(root, filepath.FromSlash(f.Path))
		if err := platform.WriteFile(fsys, outPath, data, f.Perm); err != nil {
			return result, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, f.Path)

		if f == ManifestFile {
			result.Warnings = append(result.Warnings, manifestWarnings(fsys, outPath)...)
		}
	}

	return result, nil
}

func manifestWarnings(fsys afero.Fs, path string) []string {
	res, err := manifest.ValidateFile(fsys, path)
	if err != nil {
		return []string{fmt.Sprintf("Could not validate %s: %v", manifest.FileName, err)}
	}
	var warnings []string
	for _, issue := range res.Issues {
		warnings = append(warnings, issue.String())
	}
	return warnings
}
