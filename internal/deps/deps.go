// Package deps probes the search path for the external archive tools.
package deps

import "os/exec"

// Tools is every external program the format tables can invoke.
var Tools = []string{
	"unzip", "tar", "gunzip", "bunzip2", "unxz", "7z", "unrar",
	"zip", "gzip", "bzip2", "xz", "rar",
}

// LookPathFunc resolves a program name to an executable path.
type LookPathFunc func(name string) (string, error)

// Missing returns the tools lookPath cannot find, in Tools order. A nil
// lookPath uses exec.LookPath.
func Missing(lookPath LookPathFunc) []string {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	var missing []string
	for _, tool := range Tools {
		if _, err := lookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	return missing
}
