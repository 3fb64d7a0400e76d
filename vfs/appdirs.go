package vfs

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
)

// UserConfigDir returns the per-user configuration directory for an
// application, <user-config>/<author>/<name>, following the platform
// convention (XDG base directories on Linux, Application Support on
// macOS, AppData on Windows). The directory is not created.
func UserConfigDir(author, name string) (string, error) {
	if err := checkAppID(author, name); err != nil {
		return "", err
	}
	return filepath.Join(xdg.ConfigHome, author, name), nil
}

// UserDataDir returns the per-user data directory for an application,
// <user-data>/<author>/<name>. This is the conventional home for saved
// games and downloaded content, and the default write root.
func UserDataDir(author, name string) (string, error) {
	if err := checkAppID(author, name); err != nil {
		return "", err
	}
	return filepath.Join(xdg.DataHome, author, name), nil
}

func checkAppID(author, name string) error {
	if author == "" || name == "" {
		return fmt.Errorf("%w: empty application author or name", ErrInvalidPath)
	}
	for _, s := range []string{author, name} {
		if filepath.Base(s) != s || s == "." || s == ".." {
			return fmt.Errorf("%w: application id %q is not a bare name", ErrInvalidPath, s)
		}
	}
	return nil
}
