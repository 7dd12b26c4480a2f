package fsops

import (
	"context"
	"io"
	"time"
)

// FileInfo represents file/directory metadata
type FileInfo struct {
	Name        string
	Path        string
	Size        int64
	ModTime     time.Time
	IsDir       bool
	ContentType string
}

// ============================================================================
// Core Interfaces (Interface Segregation)
// ============================================================================

// FileReader provides read-only filesystem access.
// Use this type in function signatures to enforce read-only at compile time.
type FileReader interface {
	// Read returns a stream for reading file content.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// ReadAll reads entire file into memory. Use for small files only.
	ReadAll(ctx context.Context, path string) ([]byte, error)

	// FileExists checks if a file exists at path.
	// Absence is reported as (false, nil); an error means the check itself
	// failed (permission, I/O), never "not found".
	FileExists(ctx context.Context, path string) (bool, error)

	// DirExists checks if a directory exists at path.
	// Same contract as FileExists.
	DirExists(ctx context.Context, path string) (bool, error)

	// Stat returns file/directory metadata.
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// ListContents lists directory contents.
	// If recursive is true, includes all descendants.
	// Ordering is backend-defined and not guaranteed stable across calls.
	ListContents(ctx context.Context, path string, recursive bool) ([]FileInfo, error)
}

// FileWriter provides write filesystem operations.
type FileWriter interface {
	// Write writes content from reader to path and returns the number of
	// bytes written. By default existing content is replaced and missing
	// parent directories are created. With WithCreateOnly the write fails
	// with ErrExist if the target is already present.
	//
	// A failure mid-write may leave truncated content; no partial-write
	// guarantee is made beyond what the backend provides.
	Write(ctx context.Context, path string, r io.Reader, opts ...Option) (int64, error)

	// Append appends content to an existing file and returns the number of
	// bytes written. Append never creates: it fails with ErrNotExist when
	// the target is absent. Appends are not atomic relative to concurrent
	// writers outside this facade.
	Append(ctx context.Context, path string, r io.Reader) (int64, error)

	// Delete removes a file. Fails with ErrNotExist when the target is
	// absent; calling twice yields the same ErrNotExist.
	Delete(ctx context.Context, path string) error

	// CreateDir creates a directory. Fails with ErrExist when path already
	// denotes a file or directory. The parent must exist.
	CreateDir(ctx context.Context, path string) error

	// DeleteDir removes a directory and all contents. Fails with
	// ErrNotExist when absent and ErrNotDir when path denotes a file.
	// No rollback: a failure partway leaves the tree partially deleted and
	// reports the first failure encountered.
	DeleteDir(ctx context.Context, path string) error
}

// FileSystem provides full read-write filesystem access.
type FileSystem interface {
	FileReader
	FileWriter
}

// ============================================================================
// Optional Capability Interfaces
// ============================================================================
// These interfaces allow drivers to expose optional capabilities.
// Use type assertion to check if a driver supports a capability:
//
//	if copier, ok := fs.(CanCopy); ok {
//	    copier.Copy(ctx, src, dst)
//	}

// CanCopy indicates the filesystem supports native copy operations.
// Native copy is more efficient than read+write for same-backend operations.
type CanCopy interface {
	Copy(ctx context.Context, src, dst string) error
}

// CanMove indicates the filesystem supports native move/rename operations.
// Native move is more efficient than copy+delete for same-backend operations.
type CanMove interface {
	Move(ctx context.Context, src, dst string) error
}

// ============================================================================
// Checksum Interface
// ============================================================================

// ChecksumAlgorithm represents a supported checksum algorithm
type ChecksumAlgorithm string

const (
	// ChecksumMD5 is the MD5 hash algorithm (128-bit, fast but not cryptographically secure)
	ChecksumMD5 ChecksumAlgorithm = "md5"
	// ChecksumSHA1 is the SHA-1 hash algorithm (160-bit, legacy)
	ChecksumSHA1 ChecksumAlgorithm = "sha1"
	// ChecksumSHA256 is the SHA-256 hash algorithm (256-bit, recommended)
	ChecksumSHA256 ChecksumAlgorithm = "sha256"
	// ChecksumSHA512 is the SHA-512 hash algorithm (512-bit, most secure)
	ChecksumSHA512 ChecksumAlgorithm = "sha512"
	// ChecksumCRC32 is the CRC32 checksum (32-bit, fastest, for integrity only)
	ChecksumCRC32 ChecksumAlgorithm = "crc32"
	// ChecksumXXHash is the xxHash algorithm (64-bit, extremely fast)
	ChecksumXXHash ChecksumAlgorithm = "xxhash"
)

// CanChecksum indicates the filesystem supports integrity verification.
//
// Example:
//
//	if cs, ok := fs.(CanChecksum); ok {
//	    hash, err := cs.Checksum(ctx, "file.txt", fsops.ChecksumSHA256)
//	    fmt.Printf("SHA256: %s\n", hash)
//	}
type CanChecksum interface {
	// Checksum calculates the checksum of a file using the specified algorithm.
	// Returns the checksum as a hex-encoded string.
	Checksum(ctx context.Context, path string, algorithm ChecksumAlgorithm) (string, error)

	// Checksums calculates multiple checksums in a single read pass.
	// Returns a map of algorithm to hex-encoded checksum.
	Checksums(ctx context.Context, path string, algorithms []ChecksumAlgorithm) (map[ChecksumAlgorithm]string, error)
}

// ============================================================================
// File Watching Interface
// ============================================================================

// CanWatch indicates the filesystem supports file change notifications.
// Not all backends support watching - check with type assertion.
//
// Example:
//
//	if watcher, ok := fs.(CanWatch); ok {
//	    sub, err := watcher.Watch(ctx, "config.json")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer sub.Cancel()
//
//	    for ev := range sub.Events() {
//	        fmt.Println(ev.Kind, ev.Path)
//	    }
//	}
type CanWatch interface {
	// Watch subscribes to change notifications for path (a file or a
	// directory; for directories, events cover the entries inside it too).
	// Fails with ErrNotExist if path is absent at start time.
	//
	// Events are delivered in backend notification order with no
	// de-duplication: rapid successive modifications may yield multiple
	// events for the same logical change.
	Watch(ctx context.Context, path string) (*Subscription, error)
}
