// Package formats maps archive file extensions to the external tool
// invocations that extract or create them.
package formats

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Op is the direction of an archive operation.
type Op string

const (
	OpExtract  Op = "extraction"
	OpCompress Op = "compression"
)

// Template is a program name followed by its fixed flags. Path arguments
// are appended to a copy of it to form a runnable command.
type Template []string

// Program returns the executable name of the template.
func (t Template) Program() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// With returns a new argument vector with args appended. The template itself
// is never modified.
func (t Template) With(args ...string) []string {
	argv := make([]string, 0, len(t)+len(args))
	argv = append(argv, t...)
	return append(argv, args...)
}

func (t Template) String() string {
	return strings.Join(t, " ")
}

// Mapping associates one extension with its command template.
type Mapping struct {
	Ext      string
	Template Template
}

// compoundExts are checked before any single-suffix lookup, in this order,
// so that ".tar.gz" never falls through to ".gz".
var compoundExts = []string{".tar.gz", ".tar.bz2", ".tar.xz"}

var extractTable = []Mapping{
	{".zip", Template{"unzip", "-q"}},
	{".tar", Template{"tar", "-xf"}},
	{".tar.gz", Template{"tar", "-xzf"}},
	{".tgz", Template{"tar", "-xzf"}},
	{".tar.bz2", Template{"tar", "-xjf"}},
	{".tbz", Template{"tar", "-xjf"}},
	{".tar.xz", Template{"tar", "-xJf"}},
	{".txz", Template{"tar", "-xJf"}},
	{".gz", Template{"gunzip"}},
	{".bz2", Template{"bunzip2"}},
	{".xz", Template{"unxz"}},
	{".7z", Template{"7z", "x"}},
	{".rar", Template{"unrar", "x"}},
}

// Single-file compressors (.gz, .bz2, .xz) are extraction-only.
var compressTable = []Mapping{
	{".zip", Template{"zip", "-r"}},
	{".tar", Template{"tar", "-cf"}},
	{".tar.gz", Template{"tar", "-czf"}},
	{".tgz", Template{"tar", "-czf"}},
	{".tar.bz2", Template{"tar", "-cjf"}},
	{".tbz", Template{"tar", "-cjf"}},
	{".tar.xz", Template{"tar", "-cJf"}},
	{".txz", Template{"tar", "-cJf"}},
	{".7z", Template{"7z", "a"}},
	{".rar", Template{"rar", "a"}},
}

// UnsupportedError reports an extension with no registered command.
type UnsupportedError struct {
	Op  Op
	Ext string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported file format for %s: %s", e.Op, e.Ext)
}

// Resolution is the outcome of matching a path against a table.
type Resolution struct {
	Ext      string
	Template Template
	// OutputDir is the directory name extraction writes into. Empty for
	// compression.
	OutputDir string
}

// ResolveExtract picks the extraction command for path and derives the
// output directory name from its base name.
func ResolveExtract(path string) (Resolution, error) {
	base := filepath.Base(path)
	ext, tmpl, ok := resolve(extractTable, path)
	if !ok {
		return Resolution{}, &UnsupportedError{Op: OpExtract, Ext: ext}
	}
	return Resolution{
		Ext:       ext,
		Template:  tmpl,
		OutputDir: base[:len(base)-len(ext)],
	}, nil
}

// ResolveCompress picks the compression command for the archive being
// written to outputPath.
func ResolveCompress(outputPath string) (Resolution, error) {
	ext, tmpl, ok := resolve(compressTable, outputPath)
	if !ok {
		return Resolution{}, &UnsupportedError{Op: OpCompress, Ext: ext}
	}
	return Resolution{Ext: ext, Template: tmpl}, nil
}

// DefaultCompressOutput is the archive written when no output is given.
func DefaultCompressOutput(source string) string {
	return source + ".zip"
}

// resolve returns the matched extension (lowercased) and a copy of its
// template. When nothing matches, ext is the rejected suffix.
//
// Matching folds ASCII letters only, so the matched extension always has the
// same byte length as the tail of the base name it came from.
func resolve(table []Mapping, path string) (ext string, tmpl Template, ok bool) {
	base := filepath.Base(path)
	folded := asciiLower(base)
	for _, c := range compoundExts {
		if strings.HasSuffix(folded, c) {
			if t, found := lookup(table, c); found {
				return c, t, true
			}
		}
	}

	ext = suffix(folded)
	if ext == "" {
		return "", nil, false
	}
	t, found := lookup(table, ext)
	return ext, t, found
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// suffix returns the final dotted segment of a base name. A leading dot alone
// does not start an extension, so ".zip" has none.
func suffix(base string) string {
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return base[i:]
}

func lookup(table []Mapping, ext string) (Template, bool) {
	for _, m := range table {
		if m.Ext == ext {
			return append(Template(nil), m.Template...), true
		}
	}
	return nil, false
}

// Supported lists the extensions each direction accepts, in table order.
type Supported struct {
	Extract  []string
	Compress []string
}

// SupportedFormats returns the extensions known to both tables.
func SupportedFormats() Supported {
	return Supported{Extract: exts(extractTable), Compress: exts(compressTable)}
}

// ExtractMappings returns a copy of the extraction table.
func ExtractMappings() []Mapping { return copyTable(extractTable) }

// CompressMappings returns a copy of the compression table.
func CompressMappings() []Mapping { return copyTable(compressTable) }

func exts(table []Mapping) []string {
	out := make([]string, len(table))
	for i, m := range table {
		out[i] = m.Ext
	}
	return out
}

func copyTable(table []Mapping) []Mapping {
	out := make([]Mapping, len(table))
	for i, m := range table {
		out[i] = Mapping{Ext: m.Ext, Template: append(Template(nil), m.Template...)}
	}
	return out
}
