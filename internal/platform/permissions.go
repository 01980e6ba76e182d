package platform

import (
	"os"
	"runtime"

	"github.com/spf13/afero"
)

// Chmod sets permissions on a path in fsys. On Windows this is a no-op.
func Chmod(fsys afero.Fs, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return fsys.Chmod(path, mode)
}

// WriteFile writes data to path and then enforces mode, so a file that
// already existed with looser permissions is tightened as well.
func WriteFile(fsys afero.Fs, path string, data []byte, mode os.FileMode) error {
	if err := afero.WriteFile(fsys, path, data, mode); err != nil {
		return err
	}
	return Chmod(fsys, path, mode)
}
