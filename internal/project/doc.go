// Package project holds the resolved project specification: the validated
// project name and the generated signing secret that parameterize every
// scaffolded file.
package project
