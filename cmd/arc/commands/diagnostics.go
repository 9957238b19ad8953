package commands

import (
	"errors"
	"fmt"

	"github.com/ecairns22/arc/internal/archive"
	"github.com/ecairns22/arc/internal/formats"
	"github.com/ecairns22/arc/internal/runner"
)

// Diagnostics renders err as the "[!]" lines printed on failure.
func Diagnostics(err error) []string {
	var (
		notFound    *archive.NotFoundError
		unsupported *formats.UnsupportedError
		missing     *runner.ToolMissingError
		failure     *runner.ToolFailureError
	)
	switch {
	case errors.As(err, &notFound):
		if notFound.Op == formats.OpCompress {
			return []string{"[!] Source not found: " + notFound.Path}
		}
		return []string{"[!] File not found: " + notFound.Path}
	case errors.As(err, &unsupported):
		return []string{fmt.Sprintf("[!] Unsupported file format for %s: %s", unsupported.Op, unsupported.Ext)}
	case errors.As(err, &missing):
		return []string{
			"[!] Command not found: " + missing.Tool,
			fmt.Sprintf("[!] Please install %s to use this format", missing.Tool),
		}
	case errors.As(err, &failure):
		return []string{
			"[!] Command failed: " + failure.Command,
			fmt.Sprintf("[!] Error: %v", failure.Err),
		}
	default:
		return []string{"[!] " + err.Error()}
	}
}
