package fsops_test

import (
	"context"
	"strings"
	"testing"

	"github.com/gobeaver/fsops"
	"github.com/gobeaver/fsops/driver/memory"
)

func TestReadOnlyFileSystem(t *testing.T) {
	ctx := context.Background()
	backing := memory.New()

	if _, err := backing.Write(ctx, "data.txt", strings.NewReader("payload")); err != nil {
		t.Fatal(err)
	}
	if err := backing.CreateDir(ctx, "dir"); err != nil {
		t.Fatal(err)
	}

	ro := fsops.NewReadOnlyFileSystem(backing)

	t.Run("reads delegate", func(t *testing.T) {
		data, err := ro.ReadAll(ctx, "data.txt")
		if err != nil {
			t.Fatalf("ReadAll failed: %v", err)
		}
		if string(data) != "payload" {
			t.Errorf("read %q, want %q", data, "payload")
		}

		exists, err := ro.FileExists(ctx, "data.txt")
		if err != nil || !exists {
			t.Errorf("FileExists = (%v, %v), want (true, nil)", exists, err)
		}

		if _, err := ro.ListContents(ctx, "/", false); err != nil {
			t.Errorf("ListContents failed: %v", err)
		}
	})

	t.Run("writes blocked", func(t *testing.T) {
		if _, err := ro.Write(ctx, "new.txt", strings.NewReader("x")); !fsops.IsReadOnlyError(err) {
			t.Errorf("Write error = %v, want ErrReadOnly", err)
		}
		if _, err := ro.Append(ctx, "data.txt", strings.NewReader("x")); !fsops.IsReadOnlyError(err) {
			t.Errorf("Append error = %v, want ErrReadOnly", err)
		}
		if err := ro.Delete(ctx, "data.txt"); !fsops.IsReadOnlyError(err) {
			t.Errorf("Delete error = %v, want ErrReadOnly", err)
		}
		if err := ro.CreateDir(ctx, "other"); !fsops.IsReadOnlyError(err) {
			t.Errorf("CreateDir error = %v, want ErrReadOnly", err)
		}
		if err := ro.DeleteDir(ctx, "dir"); !fsops.IsReadOnlyError(err) {
			t.Errorf("DeleteDir error = %v, want ErrReadOnly", err)
		}
		if err := ro.Copy(ctx, "data.txt", "copy.txt"); !fsops.IsReadOnlyError(err) {
			t.Errorf("Copy error = %v, want ErrReadOnly", err)
		}
	})

	t.Run("backing untouched", func(t *testing.T) {
		data, err := backing.ReadAll(ctx, "data.txt")
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "payload" {
			t.Errorf("backing content changed: %q", data)
		}
	})

	t.Run("checksum delegates", func(t *testing.T) {
		sum, err := ro.Checksum(ctx, "data.txt", fsops.ChecksumSHA256)
		if err != nil {
			t.Fatalf("Checksum failed: %v", err)
		}
		if sum == "" {
			t.Error("empty checksum")
		}
	})
}
