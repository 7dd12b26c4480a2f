package local

import "github.com/gobeaver/fsops"

func init() {
	fsops.RegisterDriver("local", func(cfg *fsops.Config) (fsops.FileSystem, error) {
		return New(cfg.LocalBasePath,
			WithWatchBuffer(cfg.WatchBufferSize),
			WithDefaultVisibility(fsops.Visibility(cfg.DefaultVisibility)))
	})
}
