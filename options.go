package fsops

// WriteMode controls how Write treats an existing target.
type WriteMode int

const (
	// Overwrite replaces existing content or creates a new file.
	Overwrite WriteMode = iota

	// CreateOnly fails with ErrExist if the target is already present.
	CreateOnly
)

// Visibility represents file visibility
type Visibility string

const (
	// Private means the file is only readable by the owning user
	Private Visibility = "private"

	// Public means the file is world-readable
	Public Visibility = "public"
)

// Option represents a configuration option
type Option func(*Options)

// Options contains all possible options for write operations
type Options struct {
	// Mode determines whether an existing target is replaced (Overwrite,
	// the default) or refused (CreateOnly).
	Mode WriteMode

	// Visibility defines the file visibility (public or private)
	Visibility Visibility

	// ContentType specifies the MIME type of the file. Local backends
	// ignore it; kept on the options struct so decorators can inspect it.
	ContentType string

	// Metadata contains additional metadata for the file
	Metadata map[string]string
}

// ApplyOptions folds a list of options into an Options struct.
// Drivers use this to interpret their variadic option arguments.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithCreateOnly makes Write refuse to replace an existing file.
func WithCreateOnly() Option {
	return func(o *Options) {
		o.Mode = CreateOnly
	}
}

// WithVisibility sets the file visibility
func WithVisibility(visibility Visibility) Option {
	return func(o *Options) {
		o.Visibility = visibility
	}
}

// WithContentType sets the content type of the file
func WithContentType(contentType string) Option {
	return func(o *Options) {
		o.ContentType = contentType
	}
}

// WithMetadata sets additional metadata for the file
func WithMetadata(metadata map[string]string) Option {
	return func(o *Options) {
		o.Metadata = metadata
	}
}
