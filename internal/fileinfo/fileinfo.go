// Package fileinfo answers simple questions about files on disk.
package fileinfo

import (
	"os"

	"github.com/dustin/go-humanize"
)

// Unknown is returned by Size when the file cannot be stat'ed.
const Unknown = "Unknown"

// Validate reports whether path exists and is a regular file.
func Validate(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Size returns the human-readable size of path, e.g. "1.5 KiB".
func Size(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return Unknown
	}
	return humanize.IBytes(uint64(info.Size()))
}
