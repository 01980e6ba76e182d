package manifest

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// checkVersions reports a non-semver package version and any dependency
// range semver cannot parse. Dependencies are checked in name order.
func checkVersions(m *PackageManifest) []ValidationIssue {
	var issues []ValidationIssue

	if m.Version != "" {
		if _, err := parseSemver(m.Version); err != nil {
			issues = append(issues, ValidationIssue{
				Path:    "/version",
				Message: "not a semantic version: " + err.Error(),
				Keyword: "semver",
			})
		}
	}

	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rng := m.Dependencies[name]
		if rng == "" {
			continue // reported by the schema
		}
		if _, err := semver.NewConstraint(rng); err != nil {
			issues = append(issues, ValidationIssue{
				Path:    "/dependencies/" + name,
				Message: "invalid version range " + rng + ": " + err.Error(),
				Keyword: "semver",
			})
		}
	}
	return issues
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.StrictNewVersion(strings.TrimPrefix(version, "v"))
}

// Satisfies reports whether version falls inside the dependency range.
func Satisfies(rng, version string) (bool, error) {
	c, err := semver.NewConstraint(rng)
	if err != nil {
		return false, err
	}
	v, err := parseSemver(version)
	if err != nil {
		return false, err
	}
	return c.Check(v), nil
}
