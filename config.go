package fsops

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Default driver to use (local, memory)
	Driver string `env:"FSOPS_DRIVER,default:local"`

	// Local driver configuration
	LocalBasePath string `env:"FSOPS_LOCAL_BASE_PATH,default:./storage"`

	// Memory driver configuration (0 = unlimited)
	MemoryMaxSize int64 `env:"FSOPS_MEMORY_MAX_SIZE,default:0"`

	// Watch subscription event buffer
	WatchBufferSize int `env:"FSOPS_WATCH_BUFFER_SIZE,default:64"`

	// Default visibility for written files (private or public)
	DefaultVisibility string `env:"FSOPS_DEFAULT_VISIBILITY,default:private"`

	// CLI logging
	LogLevel  string `env:"FSOPS_LOG_LEVEL,default:info"`
	LogFormat string `env:"FSOPS_LOG_FORMAT,default:console"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
