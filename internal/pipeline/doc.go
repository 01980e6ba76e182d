// Package pipeline runs project initialization as an explicit sequence of
// stages: build directories, write the base files, install dependencies, then
// write the auth module. Each stage runs only when the previous one succeeded,
// and the returned Report records the stage the run reached.
package pipeline
