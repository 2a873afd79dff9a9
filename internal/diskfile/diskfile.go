// Package diskfile is the small filesystem collaborator the file cache
// reads through: a named-path read returning bytes + mtime, and a stat
// call, with no caching or path logic of its own.
package diskfile

import (
	"os"
	"time"
)

// Read returns the full contents of path and its modification time.
func Read(path string) ([]byte, time.Time, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	return data, info.ModTime(), nil
}

// ModTime stats path and returns its modification time.
func ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
