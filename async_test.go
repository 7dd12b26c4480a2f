package fsops_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gobeaver/fsops"
	"github.com/gobeaver/fsops/driver/memory"
)

func TestWriteAsyncThenReadAsync(t *testing.T) {
	ctx := context.Background()
	fs := memory.New()

	res := <-fsops.WriteAsync(ctx, fs, "a.txt", strings.NewReader("hello"))
	if res.Err != nil {
		t.Fatalf("WriteAsync failed: %v", res.Err)
	}
	if res.Value != 5 {
		t.Errorf("bytes written = %d, want 5", res.Value)
	}

	read := <-fsops.ReadAsync(ctx, fs, "a.txt")
	if read.Err != nil {
		t.Fatalf("ReadAsync failed: %v", read.Err)
	}
	if string(read.Value) != "hello" {
		t.Errorf("read %q, want %q", read.Value, "hello")
	}
}

func TestReadAsyncTypedError(t *testing.T) {
	ctx := context.Background()
	fs := memory.New()

	// Non-blocking form surfaces the same typed errors as the blocking form
	res := <-fsops.ReadAsync(ctx, fs, "missing.txt")
	if !fsops.IsNotExist(res.Err) {
		t.Errorf("ReadAsync error = %v, want ErrNotExist", res.Err)
	}
}

func TestAppendAsyncOrder(t *testing.T) {
	ctx := context.Background()
	fs := memory.New()

	if _, err := fs.Write(ctx, "log.txt", strings.NewReader("start")); err != nil {
		t.Fatal(err)
	}

	// Sequential awaits preserve order
	if res := <-fsops.AppendAsync(ctx, fs, "log.txt", strings.NewReader("-1")); res.Err != nil {
		t.Fatal(res.Err)
	}
	if res := <-fsops.AppendAsync(ctx, fs, "log.txt", strings.NewReader("-2")); res.Err != nil {
		t.Fatal(res.Err)
	}

	data, err := fs.ReadAll(ctx, "log.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "start-1-2" {
		t.Errorf("content = %q, want %q", data, "start-1-2")
	}
}

func TestDeleteAsync(t *testing.T) {
	ctx := context.Background()
	fs := memory.New()

	if _, err := fs.Write(ctx, "a.txt", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}

	if res := <-fsops.DeleteAsync(ctx, fs, "a.txt"); res.Err != nil {
		t.Fatalf("DeleteAsync failed: %v", res.Err)
	}

	exists, err := fs.FileExists(ctx, "a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("file still exists after DeleteAsync")
	}
}

func TestAsyncAbandonedResultIsBuffered(t *testing.T) {
	ctx := context.Background()
	fs := memory.New()

	// The caller never receives; the goroutine must still complete and
	// not leak a blocked send.
	fsops.WriteAsync(ctx, fs, "bg.txt", strings.NewReader("data"))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		exists, err := fs.FileExists(ctx, "bg.txt")
		if err != nil {
			t.Fatal(err)
		}
		if exists {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("abandoned async write never completed")
}
