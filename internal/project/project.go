package project

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxNameLength keeps names usable as MongoDB database names (< 64 bytes).
const MaxNameLength = 63

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ErrInvalidName is returned for project names that cannot be used as a
// directory name, package name, and database name at once.
var ErrInvalidName = errors.New("invalid project name")

var reservedNames = map[string]bool{
	"node_modules": true,
	"favicon.ico":  true,
}

// Spec is the input to every template: the project name and its secret.
type Spec struct {
	Name   string
	Secret string
}

// New validates name and generates a fresh secret for it.
func New(name string) (*Spec, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	secret, err := GenerateSecret()
	if err != nil {
		return nil, err
	}
	return &Spec{Name: name, Secret: secret}, nil
}

// ValidateName reports why name is unusable, wrapping ErrInvalidName.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q refers to a directory, not a new project", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidName, name)
	case len(name) > MaxNameLength:
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidName, name, MaxNameLength)
	case reservedNames[name]:
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	case !namePattern.MatchString(name):
		return fmt.Errorf("%w: %q must match pattern [a-z0-9][a-z0-9_-]*", ErrInvalidName, name)
	}
	return nil
}
