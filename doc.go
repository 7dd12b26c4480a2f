// Package fsops provides a small, race-aware filesystem operations facade:
// unified blocking/non-blocking file access, safe existence checks,
// directory lifecycle management and change notification behind one
// coherent contract.
//
// fsops follows interface segregation principles, providing separate
// interfaces for read-only ([FileReader]) and write ([FileWriter])
// operations, combined in the full [FileSystem] interface. This allows
// compile-time enforcement of access patterns.
//
// # Backends
//
//   - Local filesystem (github.com/gobeaver/fsops/driver/local)
//   - In-memory (github.com/gobeaver/fsops/driver/memory)
//
// Each operation is stateless: it opens, acts and closes within its own
// scope, holding no handle across calls. Operations are independent and
// may run concurrently; consistency guarantees are delegated to the host
// filesystem, which the facade does not attempt to strengthen.
//
// # Basic Usage
//
//	import "github.com/gobeaver/fsops/driver/local"
//
//	fs, err := local.New("./storage")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//
//	// Write a file (Overwrite semantics by default)
//	n, err := fs.Write(ctx, "hello.txt", strings.NewReader("Hello, World!"))
//
//	// Refuse to replace an existing file
//	n, err = fs.Write(ctx, "hello.txt", r, fsops.WithCreateOnly())
//
//	// Append to an existing file (never creates)
//	n, err = fs.Append(ctx, "hello.txt", strings.NewReader("!"))
//
//	// Read a file
//	data, err := fs.ReadAll(ctx, "hello.txt")
//
//	// Check existence (false, nil for absent - never an error)
//	exists, err := fs.FileExists(ctx, "hello.txt")
//
//	// List directory contents ("/" denotes the backend root)
//	files, err := fs.ListContents(ctx, "/", false)
//
// # Non-Blocking Variants
//
// Every file operation has a non-blocking form sharing the same contract.
// The *Async helpers run the call on its own goroutine and deliver one
// [Result] on a buffered channel:
//
//	res := <-fsops.ReadAsync(ctx, fs, "hello.txt")
//	if res.Err != nil {
//	    // same typed errors as the blocking form
//	}
//
// A caller that needs a timeout wraps the channel receive with its own
// deadline; an operation still pending at the deadline is abandoned, not
// aborted.
//
// # Watching for Changes
//
// Backends that implement [CanWatch] deliver typed [ChangeEvent] values on
// a [Subscription] until it is cancelled or the watched path is removed:
//
//	if watcher, ok := fs.(fsops.CanWatch); ok {
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
//
// # Error Handling
//
// fsops provides sentinel errors and helper functions for error handling.
// Every failure surfaces to the immediate caller as a typed error; nothing
// is swallowed or merely logged:
//
//	_, err := fs.ReadAll(ctx, "nonexistent.txt")
//	if fsops.IsNotExist(err) {
//	    // File does not exist
//	}
//
//	var pathErr *fsops.PathError
//	if errors.As(err, &pathErr) {
//	    fmt.Printf("Operation: %s, Path: %s\n", pathErr.Op, pathErr.Path)
//	}
//
// # Decorators and Selectors
//
//	// Read-only protection
//	readOnly := fsops.NewReadOnlyFileSystem(fs)
//
//	// Glob-filtered listing
//	files, err := fsops.ListWithSelector(ctx, fs, "/", fsops.MustGlob("*.txt"), true)
//
// # Configuration
//
// fsops can be configured via environment variables with the BEAVER_FSOPS_
// prefix, or programmatically via the [Config] struct:
//
//	cfg := fsops.Config{
//	    Driver:        "local",
//	    LocalBasePath: "/var/data",
//	}
//	fs, err := fsops.OpenDriver(&cfg)
package fsops
