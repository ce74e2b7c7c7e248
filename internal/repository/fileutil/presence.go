// Package fileutil holds the existence check shared by the file-backed stores.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// Presence is the outcome of an existence check.
type Presence int

const (
	// PresenceFound means the file already existed.
	PresenceFound Presence = iota
	// PresenceCreated means the file was missing and has been created.
	PresenceCreated
)

// String returns the presence name for display purposes.
func (p Presence) String() string {
	if p == PresenceCreated {
		return "created"
	}
	return "found"
}

// Ensure checks whether path exists and creates it with initial contents if it
// does not. Creating is idempotent: a file created concurrently counts as found.
func Ensure(path string, initial []byte, dirPerm os.FileMode) (Presence, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return PresenceFound, fmt.Errorf("%s is a directory", path)
		}
		return PresenceFound, nil
	case !os.IsNotExist(err):
		return PresenceFound, err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return PresenceFound, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return PresenceFound, nil
		}
		return PresenceFound, err
	}
	if _, err := f.Write(initial); err != nil {
		f.Close()
		return PresenceCreated, err
	}
	return PresenceCreated, f.Close()
}
