package memory

import "github.com/gobeaver/fsops"

func init() {
	fsops.RegisterDriver("memory", func(cfg *fsops.Config) (fsops.FileSystem, error) {
		return New(Config{
			MaxSize:     cfg.MemoryMaxSize,
			WatchBuffer: cfg.WatchBufferSize,
		}), nil
	})
}
