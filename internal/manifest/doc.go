// Package manifest parses and validates the package.json written into a
// generated project. Structure is checked against an embedded JSON Schema;
// the version and every dependency range are checked as semver.
package manifest
