package fsops

import (
	"context"
	"io"
)

// Result carries the outcome of a non-blocking operation: a success value
// or the same typed error the blocking form would have returned.
type Result[T any] struct {
	Value T
	Err   error
}

// The *Async helpers are the non-blocking variants of the facade
// operations. Each launches the blocking call on its own goroutine and
// returns a 1-buffered channel that receives exactly one Result; the
// channel is closed after delivery. Semantics are identical to the
// blocking form.
//
// In-flight operations cannot be aborted: a caller that stops waiting
// (e.g. its deadline expired) has abandoned the result, but the backend
// call still runs to completion and its Result is delivered into the
// buffer and discarded with it.

// ReadAsync is the non-blocking variant of FileReader.ReadAll.
func ReadAsync(ctx context.Context, fs FileReader, path string) <-chan Result[[]byte] {
	return async(func() ([]byte, error) {
		return fs.ReadAll(ctx, path)
	})
}

// WriteAsync is the non-blocking variant of FileWriter.Write.
func WriteAsync(ctx context.Context, fs FileWriter, path string, r io.Reader, opts ...Option) <-chan Result[int64] {
	return async(func() (int64, error) {
		return fs.Write(ctx, path, r, opts...)
	})
}

// AppendAsync is the non-blocking variant of FileWriter.Append.
func AppendAsync(ctx context.Context, fs FileWriter, path string, r io.Reader) <-chan Result[int64] {
	return async(func() (int64, error) {
		return fs.Append(ctx, path, r)
	})
}

// DeleteAsync is the non-blocking variant of FileWriter.Delete.
func DeleteAsync(ctx context.Context, fs FileWriter, path string) <-chan Result[struct{}] {
	return async(func() (struct{}, error) {
		return struct{}{}, fs.Delete(ctx, path)
	})
}

// ListAsync is the non-blocking variant of FileReader.ListContents.
func ListAsync(ctx context.Context, fs FileReader, path string, recursive bool) <-chan Result[[]FileInfo] {
	return async(func() ([]FileInfo, error) {
		return fs.ListContents(ctx, path, recursive)
	})
}

func async[T any](op func() (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		v, err := op()
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}
