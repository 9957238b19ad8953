package commands

import (
	"github.com/ecairns22/arc/internal/archive"
	"github.com/ecairns22/arc/internal/history"
)

// buildArchiver wires the archiver from config. The caller is responsible
// for calling the returned cleanup function.
func (a *app) buildArchiver() (*archive.Archiver, func()) {
	opts := archive.Options{
		Runner:  a.runner,
		Logger:  a.log,
		DestDir: a.cfg.Extract.DestDir,
		Program: a.cfg.Program,
		Timeout: a.cfg.Exec.Parsed,
	}
	cleanup := func() {}

	if a.cfg.History.Enabled {
		store, err := history.Open(a.cfg.History.Path)
		if err != nil {
			a.log.WithError(err).Warn("history disabled for this run")
		} else {
			opts.History = store
			cleanup = func() { store.Close() }
		}
	}

	return archive.New(opts), cleanup
}
