package fsops

import (
	"context"
	"io"
	"testing"
)

// stubFS is a do-nothing FileSystem used to exercise the driver registry.
type stubFS struct{}

func (stubFS) Read(ctx context.Context, path string) (io.ReadCloser, error) { return nil, ErrNotExist }
func (stubFS) ReadAll(ctx context.Context, path string) ([]byte, error)     { return nil, ErrNotExist }
func (stubFS) FileExists(ctx context.Context, path string) (bool, error)    { return false, nil }
func (stubFS) DirExists(ctx context.Context, path string) (bool, error)     { return false, nil }
func (stubFS) Stat(ctx context.Context, path string) (*FileInfo, error)     { return nil, ErrNotExist }
func (stubFS) ListContents(ctx context.Context, path string, recursive bool) ([]FileInfo, error) {
	return nil, nil
}
func (stubFS) Write(ctx context.Context, path string, r io.Reader, opts ...Option) (int64, error) {
	return 0, ErrNotSupported
}
func (stubFS) Append(ctx context.Context, path string, r io.Reader) (int64, error) {
	return 0, ErrNotSupported
}
func (stubFS) Delete(ctx context.Context, path string) error    { return ErrNotSupported }
func (stubFS) CreateDir(ctx context.Context, path string) error { return ErrNotSupported }
func (stubFS) DeleteDir(ctx context.Context, path string) error { return ErrNotSupported }

func TestOpenDriver(t *testing.T) {
	RegisterDriver("stub", func(cfg *Config) (FileSystem, error) {
		return stubFS{}, nil
	})

	fs, err := OpenDriver(&Config{Driver: "stub"})
	if err != nil {
		t.Fatalf("OpenDriver failed: %v", err)
	}
	if _, ok := fs.(stubFS); !ok {
		t.Errorf("OpenDriver returned %T, want stubFS", fs)
	}
}

func TestOpenDriverUnregistered(t *testing.T) {
	if _, err := OpenDriver(&Config{Driver: "no-such-driver"}); err == nil {
		t.Fatal("expected error for unregistered driver")
	}
}
