// Package memory provides an in-memory implementation of fsops.FileSystem.
// Useful for testing and ephemeral storage scenarios.
package memory

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gobeaver/fsops"
)

// memoryFile represents a file stored in memory
type memoryFile struct {
	content     []byte
	contentType string
	metadata    map[string]string
	modTime     time.Time
	visibility  fsops.Visibility
}

// memoryDir represents a directory in memory
type memoryDir struct {
	modTime time.Time
}

// watchEntry represents a single watch subscription
type watchEntry struct {
	path string
	sub  *fsops.Subscription
}

// Adapter provides an in-memory implementation of fsops.FileSystem
type Adapter struct {
	mu      sync.RWMutex
	files   map[string]*memoryFile
	dirs    map[string]*memoryDir
	maxSize int64 // Maximum total storage size (0 = unlimited)
	size    int64 // Current total size

	// Watch support
	watchMu     sync.RWMutex
	watches     []*watchEntry
	watchBuffer int
}

// Config holds configuration for the memory adapter
type Config struct {
	// MaxSize is the maximum total storage size in bytes (0 = unlimited)
	MaxSize int64

	// WatchBuffer is the event buffer size for Watch subscriptions
	WatchBuffer int
}

// New creates a new in-memory filesystem adapter
func New(cfg ...Config) *Adapter {
	var c Config
	if len(cfg) > 0 {
		c = cfg[0]
	}

	a := &Adapter{
		files:       make(map[string]*memoryFile),
		dirs:        make(map[string]*memoryDir),
		maxSize:     c.MaxSize,
		watchBuffer: c.WatchBuffer,
	}

	// Root directory always exists
	a.dirs[""] = &memoryDir{modTime: time.Now()}

	return a
}

func parentOf(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// isUnder reports whether p is root itself or a descendant of root.
func isUnder(p, root string) bool {
	if root == "" || p == root {
		return true
	}
	return strings.HasPrefix(p, root+"/")
}

// Write implements fsops.FileWriter. Missing parent directories are
// created implicitly, matching the local driver.
func (a *Adapter) Write(ctx context.Context, rawPath string, content io.Reader, options ...fsops.Option) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	p, err := fsops.ResolvePath(rawPath)
	if err != nil {
		return 0, err
	}

	opts := fsops.ApplyOptions(options...)

	data, err := io.ReadAll(content)
	if err != nil {
		return 0, &fsops.PathError{Op: "write", Path: rawPath, Err: err}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, isDir := a.dirs[p]; isDir {
		return 0, &fsops.PathError{Op: "write", Path: rawPath, Err: fsops.ErrIsDir}
	}

	existing, exists := a.files[p]
	if exists && opts.Mode == fsops.CreateOnly {
		return 0, &fsops.PathError{Op: "write", Path: rawPath, Err: fsops.ErrExist}
	}

	var oldSize int64
	if exists {
		oldSize = int64(len(existing.content))
	}
	if a.maxSize > 0 && a.size-oldSize+int64(len(data)) > a.maxSize {
		return 0, &fsops.PathError{Op: "write", Path: rawPath, Err: fsops.ErrNoSpace}
	}

	// Create parent directories
	now := time.Now()
	for dir := parentOf(p); dir != ""; dir = parentOf(dir) {
		if _, ok := a.dirs[dir]; ok {
			break
		}
		a.dirs[dir] = &memoryDir{modTime: now}
	}

	a.files[p] = &memoryFile{
		content:     data,
		contentType: opts.ContentType,
		metadata:    opts.Metadata,
		modTime:     now,
		visibility:  opts.Visibility,
	}
	a.size += int64(len(data)) - oldSize

	kind := fsops.EventRenamed
	if exists {
		kind = fsops.EventModified
	}
	// Events are delivered in mutation order; Publish never blocks.
	a.notify(p, kind)

	return int64(len(data)), nil
}

// Append implements fsops.FileWriter. Append never creates.
func (a *Adapter) Append(ctx context.Context, rawPath string, content io.Reader) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	p, err := fsops.ResolvePath(rawPath)
	if err != nil {
		return 0, err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return 0, &fsops.PathError{Op: "append", Path: rawPath, Err: err}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, isDir := a.dirs[p]; isDir {
		return 0, &fsops.PathError{Op: "append", Path: rawPath, Err: fsops.ErrIsDir}
	}

	f, exists := a.files[p]
	if !exists {
		return 0, &fsops.PathError{Op: "append", Path: rawPath, Err: fsops.ErrNotExist}
	}

	if a.maxSize > 0 && a.size+int64(len(data)) > a.maxSize {
		return 0, &fsops.PathError{Op: "append", Path: rawPath, Err: fsops.ErrNoSpace}
	}

	f.content = append(f.content, data...)
	f.modTime = time.Now()
	a.size += int64(len(data))

	a.notify(p, fsops.EventModified)

	return int64(len(data)), nil
}

// Read implements fsops.FileReader
func (a *Adapter) Read(ctx context.Context, rawPath string) (io.ReadCloser, error) {
	data, err := a.ReadAll(ctx, rawPath)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// ReadAll implements fsops.FileReader
func (a *Adapter) ReadAll(ctx context.Context, rawPath string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p, err := fsops.ResolvePath(rawPath)
	if err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if _, isDir := a.dirs[p]; isDir {
		return nil, &fsops.PathError{Op: "read", Path: rawPath, Err: fsops.ErrIsDir}
	}

	f, exists := a.files[p]
	if !exists {
		return nil, &fsops.PathError{Op: "read", Path: rawPath, Err: fsops.ErrNotExist}
	}

	// Copy so callers cannot mutate stored content
	data := make([]byte, len(f.content))
	copy(data, f.content)

	return data, nil
}

// Delete implements fsops.FileWriter
func (a *Adapter) Delete(ctx context.Context, rawPath string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	p, err := fsops.ResolvePath(rawPath)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, isDir := a.dirs[p]; isDir {
		return &fsops.PathError{Op: "delete", Path: rawPath, Err: fsops.ErrIsDir}
	}

	f, exists := a.files[p]
	if !exists {
		return &fsops.PathError{Op: "delete", Path: rawPath, Err: fsops.ErrNotExist}
	}

	a.size -= int64(len(f.content))
	delete(a.files, p)

	a.notifyRemoved(p)

	return nil
}

// FileExists implements fsops.FileReader
func (a *Adapter) FileExists(ctx context.Context, rawPath string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	p, err := fsops.ResolvePath(rawPath)
	if err != nil {
		return false, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	_, exists := a.files[p]
	return exists, nil
}

// DirExists implements fsops.FileReader
func (a *Adapter) DirExists(ctx context.Context, rawPath string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	p, err := fsops.ResolvePath(rawPath)
	if err != nil {
		return false, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	_, exists := a.dirs[p]
	return exists, nil
}

// Stat implements fsops.FileReader
func (a *Adapter) Stat(ctx context.Context, rawPath string) (*fsops.FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p, err := fsops.ResolvePath(rawPath)
	if err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if f, ok := a.files[p]; ok {
		return &fsops.FileInfo{
			Name:        path.Base(p),
			Path:        p,
			Size:        int64(len(f.content)),
			ModTime:     f.modTime,
			ContentType: f.contentType,
		}, nil
	}

	if d, ok := a.dirs[p]; ok {
		return &fsops.FileInfo{
			Name:    path.Base(p),
			Path:    p,
			ModTime: d.modTime,
			IsDir:   true,
		}, nil
	}

	return nil, &fsops.PathError{Op: "stat", Path: rawPath, Err: fsops.ErrNotExist}
}

// ListContents implements fsops.FileReader. Entries are returned sorted by
// path for deterministic iteration over the backing maps.
func (a *Adapter) ListContents(ctx context.Context, rawPath string, recursive bool) ([]fsops.FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p, err := fsops.ResolvePath(rawPath)
	if err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if _, isFile := a.files[p]; isFile {
		return nil, &fsops.PathError{Op: "listcontents", Path: rawPath, Err: fsops.ErrNotDir}
	}
	if _, ok := a.dirs[p]; !ok {
		return nil, &fsops.PathError{Op: "listcontents", Path: rawPath, Err: fsops.ErrNotExist}
	}

	include := func(entry string) bool {
		if entry == p || !isUnder(entry, p) {
			return false
		}
		if recursive {
			return true
		}
		return parentOf(entry) == p
	}

	files := make([]fsops.FileInfo, 0)

	for fp, f := range a.files {
		if include(fp) {
			files = append(files, fsops.FileInfo{
				Name:        path.Base(fp),
				Path:        fp,
				Size:        int64(len(f.content)),
				ModTime:     f.modTime,
				ContentType: f.contentType,
			})
		}
	}

	for dp, d := range a.dirs {
		if include(dp) {
			files = append(files, fsops.FileInfo{
				Name:    path.Base(dp),
				Path:    dp,
				ModTime: d.modTime,
				IsDir:   true,
			})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	return files, nil
}

// CreateDir implements fsops.FileWriter. Refuses an existing target and
// requires the parent to exist, matching the local driver.
func (a *Adapter) CreateDir(ctx context.Context, rawPath string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	p, err := fsops.ResolvePath(rawPath)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.dirs[p]; ok {
		return &fsops.PathError{Op: "createdir", Path: rawPath, Err: fsops.ErrExist}
	}
	if _, ok := a.files[p]; ok {
		return &fsops.PathError{Op: "createdir", Path: rawPath, Err: fsops.ErrExist}
	}
	if _, ok := a.dirs[parentOf(p)]; !ok {
		return &fsops.PathError{Op: "createdir", Path: rawPath, Err: fsops.ErrNotExist}
	}

	a.dirs[p] = &memoryDir{modTime: time.Now()}

	a.notify(p, fsops.EventRenamed)

	return nil
}

// DeleteDir implements fsops.FileWriter. Removes the directory and all
// descendants.
func (a *Adapter) DeleteDir(ctx context.Context, rawPath string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	p, err := fsops.ResolvePath(rawPath)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, isFile := a.files[p]; isFile {
		return &fsops.PathError{Op: "deletedir", Path: rawPath, Err: fsops.ErrNotDir}
	}
	if _, ok := a.dirs[p]; !ok {
		return &fsops.PathError{Op: "deletedir", Path: rawPath, Err: fsops.ErrNotExist}
	}

	var removed []string

	for fp, f := range a.files {
		if isUnder(fp, p) {
			a.size -= int64(len(f.content))
			delete(a.files, fp)
			removed = append(removed, fp)
		}
	}
	for dp := range a.dirs {
		if dp != p && isUnder(dp, p) {
			delete(a.dirs, dp)
			removed = append(removed, dp)
		}
	}
	delete(a.dirs, p)

	for _, r := range removed {
		a.notify(r, fsops.EventRenamed)
	}
	// Terminates subscriptions watching p or any removed descendant.
	a.notifyRemoved(p)

	return nil
}

// Copy implements fsops.CanCopy
func (a *Adapter) Copy(ctx context.Context, src, dst string) error {
	data, err := a.ReadAll(ctx, src)
	if err != nil {
		return err
	}
	_, err = a.Write(ctx, dst, bytes.NewReader(data))
	return err
}

// Move implements fsops.CanMove
func (a *Adapter) Move(ctx context.Context, src, dst string) error {
	if err := a.Copy(ctx, src, dst); err != nil {
		return err
	}
	return a.Delete(ctx, src)
}

// Checksum implements fsops.CanChecksum
func (a *Adapter) Checksum(ctx context.Context, rawPath string, algorithm fsops.ChecksumAlgorithm) (string, error) {
	data, err := a.ReadAll(ctx, rawPath)
	if err != nil {
		return "", err
	}
	return fsops.CalculateChecksum(bytes.NewReader(data), algorithm)
}

// Checksums implements fsops.CanChecksum
func (a *Adapter) Checksums(ctx context.Context, rawPath string, algorithms []fsops.ChecksumAlgorithm) (map[fsops.ChecksumAlgorithm]string, error) {
	data, err := a.ReadAll(ctx, rawPath)
	if err != nil {
		return nil, err
	}
	return fsops.CalculateChecksums(bytes.NewReader(data), algorithms)
}

// Size returns the current total storage size in bytes.
func (a *Adapter) Size() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.size
}

// Ensure Adapter implements interfaces
var (
	_ fsops.FileSystem  = (*Adapter)(nil)
	_ fsops.CanCopy     = (*Adapter)(nil)
	_ fsops.CanMove     = (*Adapter)(nil)
	_ fsops.CanChecksum = (*Adapter)(nil)
	_ fsops.CanWatch    = (*Adapter)(nil)
)
