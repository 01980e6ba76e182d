package scaffold

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/wavythreads/wavythreads/internal/manifest"
)

var secretPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// EnvKeys must be present and non-empty in the generated env file.
var EnvKeys = []string{"PORT", "MONGODB_URI", "JWT_SECRET"}

// Check inspects a generated project under root and writes one line per
// check to w. It returns the number of problems found.
func Check(fsys afero.Fs, root string, w io.Writer) int {
	fmt.Fprintf(w, "Project check (%s):\n", root)
	problems := 0

	for _, entry := range Layout() {
		p := filepath.Join(root, filepath.FromSlash(entry))
		info, err := fsys.Stat(p)
		switch {
		case err != nil:
			fmt.Fprintf(w, "  [MISS] %s\n", entry)
			problems++
		case isDirEntry(entry) != info.IsDir():
			fmt.Fprintf(w, "  [FAIL] %s has the wrong type\n", entry)
			problems++
		default:
			fmt.Fprintf(w, "  [ OK ] %s\n", entry)
		}
	}

	name := ""
	m, err := manifest.ParseFile(fsys, filepath.Join(root, ManifestFile.Path))
	if err == nil {
		name = m.Name
	}

	problems += checkManifest(fsys, root, w)
	problems += checkEnv(fsys, root, name, w)
	if m != nil {
		problems += checkInstalled(fsys, root, m, w)
	}
	return problems
}

// modulesDirs are searched in order for installed packages. The package
// manager resolves package.json upward from SourceDir, so installs normally
// land at the project root.
var modulesDirs = []string{"node_modules", path.Join(SourceDir, "node_modules")}

// checkInstalled compares every installed dependency against its range in
// the manifest. A project that was never installed is skipped.
func checkInstalled(fsys afero.Fs, root string, m *manifest.PackageManifest, w io.Writer) int {
	modules := ""
	for _, d := range modulesDirs {
		p := filepath.Join(root, filepath.FromSlash(d))
		if ok, _ := afero.DirExists(fsys, p); ok {
			modules = p
			break
		}
	}
	if modules == "" {
		fmt.Fprintln(w, "  [SKIP] node_modules not found; installed versions not checked")
		return 0
	}

	names := make([]string, 0, len(m.Dependencies))
	for dep := range m.Dependencies {
		names = append(names, dep)
	}
	sort.Strings(names)

	problems := 0
	for _, dep := range names {
		rng := m.Dependencies[dep]
		installed, err := manifest.ParseFile(fsys, filepath.Join(modules, filepath.FromSlash(dep), manifest.FileName))
		if err != nil {
			fmt.Fprintf(w, "  [MISS] %s is not installed\n", dep)
			problems++
			continue
		}
		ok, err := manifest.Satisfies(rng, installed.Version)
		switch {
		case err != nil:
			fmt.Fprintf(w, "  [FAIL] %s %s: %v\n", dep, installed.Version, err)
			problems++
		case !ok:
			fmt.Fprintf(w, "  [FAIL] %s %s does not satisfy %s\n", dep, installed.Version, rng)
			problems++
		default:
			fmt.Fprintf(w, "  [ OK ] %s %s\n", dep, installed.Version)
		}
	}
	return problems
}

func isDirEntry(entry string) bool {
	for _, d := range Dirs() {
		if d == entry {
			return true
		}
	}
	return false
}

func checkManifest(fsys afero.Fs, root string, w io.Writer) int {
	path := filepath.Join(root, ManifestFile.Path)
	if exists, _ := afero.Exists(fsys, path); !exists {
		return 0 // already reported as missing
	}
	res, err := manifest.ValidateFile(fsys, path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", ManifestFile.Path, err)
		return 1
	}
	if res.Valid {
		fmt.Fprintf(w, "  [ OK ] %s is valid\n", ManifestFile.Path)
		return 0
	}
	for _, issue := range res.Issues {
		fmt.Fprintf(w, "  [FAIL] %s %s\n", ManifestFile.Path, issue)
	}
	return len(res.Issues)
}

func checkEnv(fsys afero.Fs, root, name string, w io.Writer) int {
	path := filepath.Join(root, EnvFile.Path)
	f, err := fsys.Open(path)
	if err != nil {
		return 0 // already reported as missing
	}
	defer f.Close()

	env, err := godotenv.Parse(f)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", EnvFile.Path, err)
		return 1
	}

	problems := 0
	for _, key := range EnvKeys {
		if env[key] == "" {
			fmt.Fprintf(w, "  [MISS] %s: %s is not set\n", EnvFile.Path, key)
			problems++
		}
	}
	if s := env["JWT_SECRET"]; s != "" && !secretPattern.MatchString(s) {
		fmt.Fprintf(w, "  [FAIL] %s: JWT_SECRET is not 64 hex characters\n", EnvFile.Path)
		problems++
	}
	if uri := env["MONGODB_URI"]; uri != "" && name != "" && !strings.HasSuffix(uri, "/"+name) {
		fmt.Fprintf(w, "  [FAIL] %s: MONGODB_URI does not point at database %q\n", EnvFile.Path, name)
		problems++
	}
	if problems == 0 {
		fmt.Fprintf(w, "  [ OK ] %s has %s\n", EnvFile.Path, strings.Join(EnvKeys, ", "))
	}
	return problems
}
