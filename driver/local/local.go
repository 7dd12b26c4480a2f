// Package local provides a root-jailed local filesystem implementation of
// fsops.FileSystem, including fsnotify-backed change watching.
package local

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"syscall"

	"github.com/gobeaver/fsops"
)

// Adapter provides a local filesystem implementation of fsops.FileSystem.
// All paths are interpreted relative to the adapter root; paths escaping
// the root are rejected by fsops.ResolvePath before any OS call.
type Adapter struct {
	root        string
	watchBuffer int
	defaultVis  fsops.Visibility
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithWatchBuffer sets the event buffer size for Watch subscriptions.
func WithWatchBuffer(n int) AdapterOption {
	return func(a *Adapter) {
		a.watchBuffer = n
	}
}

// WithDefaultVisibility sets the visibility applied to writes that do not
// specify one. The adapter defaults to Private.
func WithDefaultVisibility(v fsops.Visibility) AdapterOption {
	return func(a *Adapter) {
		if v != "" {
			a.defaultVis = v
		}
	}
}

// New creates a new local filesystem adapter rooted at root.
// The root directory is created if it does not exist.
func New(root string, opts ...AdapterOption) (*Adapter, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(absRoot, 0o755); err != nil {
		return nil, err
	}

	a := &Adapter{
		root:        absRoot,
		watchBuffer: fsops.DefaultWatchBuffer,
		defaultVis:  fsops.Private,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Root returns the absolute root directory of the adapter.
func (a *Adapter) Root() string {
	return a.root
}

// abs resolves a caller path into an absolute path under the root.
func (a *Adapter) abs(path string) (string, error) {
	rel, err := fsops.ResolvePath(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(a.root, filepath.FromSlash(rel)), nil
}

// pathErr classifies an OS error into the facade taxonomy and wraps it
// with the operation and path that caused it.
func pathErr(op, path string, err error) error {
	switch {
	case os.IsNotExist(err):
		err = fsops.ErrNotExist
	case os.IsExist(err):
		err = fsops.ErrExist
	case os.IsPermission(err):
		err = fsops.ErrPermission
	case errors.Is(err, syscall.EISDIR):
		err = fsops.ErrIsDir
	case errors.Is(err, syscall.ENOTDIR):
		err = fsops.ErrNotDir
	}
	return &fsops.PathError{Op: op, Path: path, Err: err}
}

func visibilityPerm(v fsops.Visibility) os.FileMode {
	if v == fsops.Public {
		return 0o644
	}
	return 0o600
}

// writePerm resolves the effective permission for a write: the per-call
// visibility when given, otherwise the adapter default.
func (a *Adapter) writePerm(opts *fsops.Options) os.FileMode {
	v := opts.Visibility
	if v == "" {
		v = a.defaultVis
	}
	return visibilityPerm(v)
}

// Write implements fsops.FileWriter
func (a *Adapter) Write(ctx context.Context, path string, content io.Reader, options ...fsops.Option) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	fullPath, err := a.abs(path)
	if err != nil {
		return 0, err
	}

	opts := fsops.ApplyOptions(options...)

	// Ensure the parent directory exists
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, pathErr("write", path, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if opts.Mode == fsops.CreateOnly {
		// O_EXCL makes the refusal atomic; no check-then-create race.
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(fullPath, flags, a.writePerm(opts))
	if err != nil {
		return 0, pathErr("write", path, err)
	}

	n, err := io.Copy(f, content)
	if err != nil {
		f.Close()
		// A failure mid-write may leave truncated content; surfaced, not masked.
		return n, pathErr("write", path, err)
	}

	if err := f.Close(); err != nil {
		return n, pathErr("write", path, err)
	}

	return n, nil
}

// Append implements fsops.FileWriter. Append never creates: the open is
// performed without O_CREATE so an absent target fails with ErrNotExist.
func (a *Adapter) Append(ctx context.Context, path string, content io.Reader) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	fullPath, err := a.abs(path)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return 0, pathErr("append", path, err)
	}

	n, err := io.Copy(f, content)
	if err != nil {
		f.Close()
		return n, pathErr("append", path, err)
	}

	if err := f.Close(); err != nil {
		return n, pathErr("append", path, err)
	}

	return n, nil
}

// Read implements fsops.FileReader
func (a *Adapter) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fullPath, err := a.abs(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return nil, pathErr("read", path, err)
	}

	return f, nil
}

// ReadAll implements fsops.FileReader
func (a *Adapter) ReadAll(ctx context.Context, path string) ([]byte, error) {
	rc, err := a.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// Delete implements fsops.FileWriter
func (a *Adapter) Delete(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fullPath, err := a.abs(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		return pathErr("delete", path, err)
	}

	return nil
}

// FileExists implements fsops.FileReader
func (a *Adapter) FileExists(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	fullPath, err := a.abs(path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, pathErr("fileexists", path, err)
	}

	// Return true only if it's a file (not a directory)
	return !info.IsDir(), nil
}

// DirExists implements fsops.FileReader
func (a *Adapter) DirExists(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	fullPath, err := a.abs(path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, pathErr("direxists", path, err)
	}

	return info.IsDir(), nil
}

// Stat implements fsops.FileReader
func (a *Adapter) Stat(ctx context.Context, path string) (*fsops.FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fullPath, err := a.abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, pathErr("stat", path, err)
	}

	contentType := ""
	if !info.IsDir() {
		contentType = getContentType(fullPath)
	}

	return &fsops.FileInfo{
		Name:        filepath.Base(fullPath),
		Path:        path,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		IsDir:       info.IsDir(),
		ContentType: contentType,
	}, nil
}

// ListContents implements fsops.FileReader
func (a *Adapter) ListContents(ctx context.Context, path string, recursive bool) ([]fsops.FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fullPath, err := a.abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, pathErr("listcontents", path, err)
	}
	if !info.IsDir() {
		return nil, &fsops.PathError{Op: "listcontents", Path: path, Err: fsops.ErrNotDir}
	}

	var files []fsops.FileInfo

	if recursive {
		err = filepath.Walk(fullPath, func(walkPath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Skip the root directory itself
			if walkPath == fullPath {
				return nil
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			relPath, err := filepath.Rel(a.root, walkPath)
			if err != nil {
				return err
			}

			files = append(files, a.toFileInfo(filepath.ToSlash(relPath), walkPath, info))
			return nil
		})
		if err != nil {
			return nil, pathErr("listcontents", path, err)
		}
	} else {
		entries, err := os.ReadDir(fullPath)
		if err != nil {
			return nil, pathErr("listcontents", path, err)
		}

		files = make([]fsops.FileInfo, 0, len(entries))
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil {
				continue
			}

			entryFull := filepath.Join(fullPath, entry.Name())
			relPath, err := filepath.Rel(a.root, entryFull)
			if err != nil {
				continue
			}

			files = append(files, a.toFileInfo(filepath.ToSlash(relPath), entryFull, info))
		}
	}

	return files, nil
}

func (a *Adapter) toFileInfo(relPath, fullPath string, info os.FileInfo) fsops.FileInfo {
	contentType := ""
	if !info.IsDir() {
		contentType = getContentType(fullPath)
	}

	return fsops.FileInfo{
		Name:        info.Name(),
		Path:        relPath,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		IsDir:       info.IsDir(),
		ContentType: contentType,
	}
}

// CreateDir implements fsops.FileWriter. Unlike MkdirAll it refuses an
// existing target, file or directory, and requires the parent to exist.
func (a *Adapter) CreateDir(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fullPath, err := a.abs(path)
	if err != nil {
		return err
	}

	if err := os.Mkdir(fullPath, 0o755); err != nil {
		return pathErr("createdir", path, err)
	}

	return nil
}

// DeleteDir implements fsops.FileWriter
func (a *Adapter) DeleteDir(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fullPath, err := a.abs(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return pathErr("deletedir", path, err)
	}
	if !info.IsDir() {
		return &fsops.PathError{Op: "deletedir", Path: path, Err: fsops.ErrNotDir}
	}

	if err := os.RemoveAll(fullPath); err != nil {
		return pathErr("deletedir", path, err)
	}

	return nil
}

// Copy implements fsops.CanCopy for native file copying.
func (a *Adapter) Copy(ctx context.Context, src, dst string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	srcPath, err := a.abs(src)
	if err != nil {
		return err
	}
	dstPath, err := a.abs(dst)
	if err != nil {
		return err
	}

	srcFile, err := os.Open(srcPath)
	if err != nil {
		return pathErr("copy", src, err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return pathErr("copy", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return pathErr("copy", dst, err)
	}

	dstFile, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return pathErr("copy", dst, err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return pathErr("copy", dst, err)
	}

	return nil
}

// Move implements fsops.CanMove for native file moving/renaming.
func (a *Adapter) Move(ctx context.Context, src, dst string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	srcPath, err := a.abs(src)
	if err != nil {
		return err
	}
	dstPath, err := a.abs(dst)
	if err != nil {
		return err
	}

	if _, err := os.Stat(srcPath); err != nil {
		return pathErr("move", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return pathErr("move", dst, err)
	}

	// Rename works on the same filesystem; fall back to copy+delete across devices.
	if err := os.Rename(srcPath, dstPath); err != nil {
		if err := a.Copy(ctx, src, dst); err != nil {
			return err
		}
		if err := os.Remove(srcPath); err != nil {
			return pathErr("move", src, err)
		}
	}

	return nil
}

// Checksum implements fsops.CanChecksum for local files.
func (a *Adapter) Checksum(ctx context.Context, path string, algorithm fsops.ChecksumAlgorithm) (string, error) {
	rc, err := a.Read(ctx, path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	checksum, err := fsops.CalculateChecksum(rc, algorithm)
	if err != nil {
		return "", &fsops.PathError{Op: "checksum", Path: path, Err: err}
	}

	return checksum, nil
}

// Checksums implements fsops.CanChecksum for efficient multi-hash calculation.
func (a *Adapter) Checksums(ctx context.Context, path string, algorithms []fsops.ChecksumAlgorithm) (map[fsops.ChecksumAlgorithm]string, error) {
	rc, err := a.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	checksums, err := fsops.CalculateChecksums(rc, algorithms)
	if err != nil {
		return nil, &fsops.PathError{Op: "checksums", Path: path, Err: err}
	}

	return checksums, nil
}

// getContentType tries to determine the content type of a file
func getContentType(path string) string {
	if ext := filepath.Ext(path); ext != "" {
		if contentType := mime.TypeByExtension(ext); contentType != "" {
			return contentType
		}
	}

	// Fall back to sniffing the file header
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}

	return http.DetectContentType(buffer[:n])
}

// Ensure Adapter implements interfaces
var (
	_ fsops.FileSystem  = (*Adapter)(nil)
	_ fsops.FileReader  = (*Adapter)(nil)
	_ fsops.FileWriter  = (*Adapter)(nil)
	_ fsops.CanCopy     = (*Adapter)(nil)
	_ fsops.CanMove     = (*Adapter)(nil)
	_ fsops.CanChecksum = (*Adapter)(nil)
	_ fsops.CanWatch    = (*Adapter)(nil)
)
