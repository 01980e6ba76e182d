// Package config manages user-level settings stored at ~/.wavythreads/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the package manager used to install generated projects and the install timeout.
package config
