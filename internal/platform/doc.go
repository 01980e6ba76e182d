// Package platform papers over OS differences in filesystem permissions.
// On Unix it applies permission bits directly; on Windows, which has no
// Unix-style permission bits, it leaves files as they are.
package platform
