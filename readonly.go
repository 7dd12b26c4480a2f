package fsops

import (
	"context"
	"errors"
	"io"
)

// ErrReadOnly is returned when a write operation is attempted on a read-only filesystem.
var ErrReadOnly = errors.New("filesystem is read-only")

// ReadOnlyFileSystem wraps a FileSystem to prevent all write operations.
// Useful for providing safe read-only views of a backend, e.g. to
// untrusted code or for dry-run tooling.
//
// Example:
//
//	fs, _ := local.New("/data")
//	readOnly := fsops.NewReadOnlyFileSystem(fs)
//
//	// Read operations work normally
//	reader, _ := readOnly.Read(ctx, "file.txt")
//
//	// Write operations return ErrReadOnly
//	_, err := readOnly.Write(ctx, "file.txt", reader)
type ReadOnlyFileSystem struct {
	fs FileSystem
}

// NewReadOnlyFileSystem creates a read-only wrapper around a FileSystem.
// All write operations (Write, Append, Delete, CreateDir, DeleteDir) fail
// with ErrReadOnly wrapped in a PathError.
func NewReadOnlyFileSystem(fs FileSystem) *ReadOnlyFileSystem {
	return &ReadOnlyFileSystem{fs: fs}
}

// Unwrap returns the underlying FileSystem.
func (r *ReadOnlyFileSystem) Unwrap() FileSystem {
	return r.fs
}

// IsReadOnly returns true, indicating this is a read-only filesystem.
func (r *ReadOnlyFileSystem) IsReadOnly() bool {
	return true
}

func readOnlyError(op, path string) error {
	return &PathError{Op: op, Path: path, Err: ErrReadOnly}
}

// Read delegates to the underlying filesystem.
func (r *ReadOnlyFileSystem) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	return r.fs.Read(ctx, path)
}

// ReadAll delegates to the underlying filesystem.
func (r *ReadOnlyFileSystem) ReadAll(ctx context.Context, path string) ([]byte, error) {
	return r.fs.ReadAll(ctx, path)
}

// FileExists delegates to the underlying filesystem.
func (r *ReadOnlyFileSystem) FileExists(ctx context.Context, path string) (bool, error) {
	return r.fs.FileExists(ctx, path)
}

// DirExists delegates to the underlying filesystem.
func (r *ReadOnlyFileSystem) DirExists(ctx context.Context, path string) (bool, error) {
	return r.fs.DirExists(ctx, path)
}

// Stat delegates to the underlying filesystem.
func (r *ReadOnlyFileSystem) Stat(ctx context.Context, path string) (*FileInfo, error) {
	return r.fs.Stat(ctx, path)
}

// ListContents delegates to the underlying filesystem.
func (r *ReadOnlyFileSystem) ListContents(ctx context.Context, path string, recursive bool) ([]FileInfo, error) {
	return r.fs.ListContents(ctx, path, recursive)
}

// Write returns ErrReadOnly.
func (r *ReadOnlyFileSystem) Write(ctx context.Context, path string, content io.Reader, opts ...Option) (int64, error) {
	return 0, readOnlyError("write", path)
}

// Append returns ErrReadOnly.
func (r *ReadOnlyFileSystem) Append(ctx context.Context, path string, content io.Reader) (int64, error) {
	return 0, readOnlyError("append", path)
}

// Delete returns ErrReadOnly.
func (r *ReadOnlyFileSystem) Delete(ctx context.Context, path string) error {
	return readOnlyError("delete", path)
}

// CreateDir returns ErrReadOnly.
func (r *ReadOnlyFileSystem) CreateDir(ctx context.Context, path string) error {
	return readOnlyError("createdir", path)
}

// DeleteDir returns ErrReadOnly.
func (r *ReadOnlyFileSystem) DeleteDir(ctx context.Context, path string) error {
	return readOnlyError("deletedir", path)
}

// Copy returns ErrReadOnly: the destination is a write.
func (r *ReadOnlyFileSystem) Copy(ctx context.Context, src, dst string) error {
	return readOnlyError("copy", dst)
}

// Move returns ErrReadOnly.
func (r *ReadOnlyFileSystem) Move(ctx context.Context, src, dst string) error {
	return readOnlyError("move", dst)
}

// Checksum delegates to the underlying filesystem if supported.
func (r *ReadOnlyFileSystem) Checksum(ctx context.Context, path string, algorithm ChecksumAlgorithm) (string, error) {
	if checksummer, ok := r.fs.(CanChecksum); ok {
		return checksummer.Checksum(ctx, path, algorithm)
	}
	return "", &PathError{Op: "checksum", Path: path, Err: ErrNotSupported}
}

// Checksums delegates to the underlying filesystem if supported.
func (r *ReadOnlyFileSystem) Checksums(ctx context.Context, path string, algorithms []ChecksumAlgorithm) (map[ChecksumAlgorithm]string, error) {
	if checksummer, ok := r.fs.(CanChecksum); ok {
		return checksummer.Checksums(ctx, path, algorithms)
	}
	return nil, &PathError{Op: "checksums", Path: path, Err: ErrNotSupported}
}

// Watch delegates to the underlying filesystem if supported.
func (r *ReadOnlyFileSystem) Watch(ctx context.Context, path string) (*Subscription, error) {
	if watcher, ok := r.fs.(CanWatch); ok {
		return watcher.Watch(ctx, path)
	}
	return nil, &PathError{Op: "watch", Path: path, Err: ErrNotSupported}
}

// IsReadOnlyError checks if an error is due to read-only restrictions.
func IsReadOnlyError(err error) bool {
	return errors.Is(err, ErrReadOnly)
}

// Ensure ReadOnlyFileSystem implements FileSystem and optional interfaces
var (
	_ FileSystem  = (*ReadOnlyFileSystem)(nil)
	_ CanCopy     = (*ReadOnlyFileSystem)(nil)
	_ CanMove     = (*ReadOnlyFileSystem)(nil)
	_ CanChecksum = (*ReadOnlyFileSystem)(nil)
	_ CanWatch    = (*ReadOnlyFileSystem)(nil)
)
