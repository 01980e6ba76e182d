package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// SourceDir holds the application code and is where dependencies are installed.
const SourceDir = "src"

// SourceSubdirs are created under SourceDir, in order.
var SourceSubdirs = []string{"controllers", "middlewares", "models", "routes"}

// ErrNotDirectory is returned when a scaffold directory path is occupied by a file.
var ErrNotDirectory = errors.New("path exists and is not a directory")

// File describes one generated file. Path is slash-separated and relative to
// the project root.
type File struct {
	Path     string
	Template string
	Perm     os.FileMode
}

// Base files, written before dependencies are installed.
var (
	EntryFile    = File{Path: "src/index.js", Template: "base/index.js.tmpl", Perm: 0644}
	EnvFile      = File{Path: ".env", Template: "base/env.tmpl", Perm: 0600}
	ManifestFile = File{Path: "package.json", Template: "base/package.json.tmpl", Perm: 0644}
)

// Auth module files, written once dependencies are installed.
var (
	ControllerFile = File{Path: "src/controllers/authController.js", Template: "auth/authController.js.tmpl", Perm: 0644}
	MiddlewareFile = File{Path: "src/middlewares/authMiddleware.js", Template: "auth/authMiddleware.js.tmpl", Perm: 0644}
	ModelFile      = File{Path: "src/models/authModel.js", Template: "auth/authModel.js.tmpl", Perm: 0644}
	RoutesFile     = File{Path: "src/routes/authRoutes.js", Template: "auth/authRoutes.js.tmpl", Perm: 0644}
)

// BaseFiles and AuthFiles are the two emission groups, in write order.
var (
	BaseFiles = []File{EntryFile, EnvFile, ManifestFile}
	AuthFiles = []File{ControllerFile, MiddlewareFile, ModelFile, RoutesFile}
)

// Dirs returns the slash-separated directories created under the project root.
func Dirs() []string {
	dirs := []string{SourceDir}
	for _, sub := range SourceSubdirs {
		dirs = append(dirs, path.Join(SourceDir, sub))
	}
	return dirs
}

// Layout returns every directory and file of a complete project.
func Layout() []string {
	entries := Dirs()
	for _, f := range BaseFiles {
		entries = append(entries, f.Path)
	}
	for _, f := range AuthFiles {
		entries = append(entries, f.Path)
	}
	return entries
}

// BuildDirs creates root and the source directories beneath it. Existing
// directories are left alone; a file in the way fails with ErrNotDirectory.
// It returns the created directories relative to root.
func BuildDirs(fsys afero.Fs, root string) ([]string, error) {
	if err := ensureDir(fsys, root); err != nil {
		return nil, err
	}
	dirs := Dirs()
	for _, d := range dirs {
		if err := ensureDir(fsys, filepath.Join(root, filepath.FromSlash(d))); err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

func ensureDir(fsys afero.Fs, dir string) error {
	info, err := fsys.Stat(dir)
	if err == nil && !info.IsDir() {
		return fmt.Errorf("creating %s: %w", dir, ErrNotDirectory)
	}
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// ImportPath returns the CommonJS require path from one generated file to another.
func ImportPath(from, to File) string {
	rel, err := filepath.Rel(filepath.Dir(filepath.FromSlash(from.Path)), filepath.FromSlash(to.Path))
	if err != nil {
		// Both paths are relative to the same root, so Rel cannot fail.
		panic(err)
	}
	rel = strings.TrimSuffix(filepath.ToSlash(rel), ".js")
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}
