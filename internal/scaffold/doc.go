// Package scaffold generates the files of a new Express + MongoDB project from
// embedded templates. It powers the "wavythreads init" command: it builds the
// directory skeleton, renders each template as a pure function of the project
// spec, and writes the results into a project root on an afero filesystem.
// Check inspects an existing project against the same layout.
package scaffold
