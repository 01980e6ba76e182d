package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"text/template"

	"github.com/wavythreads/wavythreads/internal/project"
)

//go:embed scaffolds/*/*.tmpl
var scaffoldFS embed.FS

// Values fixed across every generated project.
const (
	DefaultPort  = "5000"
	FallbackPort = "3000"
	MongoHost    = "mongodb://localhost:27017"
	AuthMount    = "/api/auth"
	TokenTTL     = "1h"
	ManifestVer  = "1.0.0"
)

// Dependency is one entry of the generated package.json.
type Dependency struct {
	Name  string
	Range string
}

// Dependencies are written to package.json in this order.
var Dependencies = []Dependency{
	{"bcrypt", "^5.1.1"},
	{"dotenv", "^16.4.5"},
	{"express", "^4.19.2"},
	{"jsonwebtoken", "^9.0.2"},
	{"mongoose", "^8.5.1"},
	{"nodemon", "^2.0.15"},
}

// imports holds require paths relative to the file being rendered.
type imports struct {
	Routes     string
	Controller string
	Middleware string
	Model      string
}

// templateData holds all variables available to scaffold templates.
type templateData struct {
	Name         string
	Secret       string
	Port         string
	FallbackPort string
	MongoURI     string
	AuthMount    string
	TokenTTL     string
	Version      string
	EntryPoint   string
	Dependencies []Dependency
	Imports      imports
}

// MongoURI returns the connection string written to the env file.
func MongoURI(name string) string {
	return MongoHost + "/" + name
}

func newTemplateData(f File, spec *project.Spec) *templateData {
	return &templateData{
		Name:         spec.Name,
		Secret:       spec.Secret,
		Port:         DefaultPort,
		FallbackPort: FallbackPort,
		MongoURI:     MongoURI(spec.Name),
		AuthMount:    AuthMount,
		TokenTTL:     TokenTTL,
		Version:      ManifestVer,
		EntryPoint:   EntryFile.Path,
		Dependencies: Dependencies,
		Imports: imports{
			Routes:     ImportPath(f, RoutesFile),
			Controller: ImportPath(f, ControllerFile),
			Middleware: ImportPath(f, MiddlewareFile),
			Model:      ImportPath(f, ModelFile),
		},
	}
}

// Render produces the content of f for spec. It has no side effects.
func Render(f File, spec *project.Spec) ([]byte, error) {
	tmplPath := path.Join("scaffolds", f.Template)
	tmplBytes, err := scaffoldFS.ReadFile(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("template %q not found: %w", f.Template, err)
	}

	tmpl, err := template.New(f.Template).Option("missingkey=error").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", f.Template, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newTemplateData(f, spec)); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", f.Template, err)
	}
	return buf.Bytes(), nil
}
