package manifest

// FileName is the manifest file name at the project root.
const FileName = "package.json"

// PackageManifest is the subset of package.json the generator writes.
type PackageManifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Scripts      map[string]string `json:"scripts"`
	Dependencies map[string]string `json:"dependencies"`
}
