package cli

import (
	"errors"

	"github.com/gobeaver/fsops"
)

// Exit codes, one per error kind.
const (
	ExitOK          = 0
	ExitIOFailure   = 1
	ExitInvalidPath = 2
	ExitNotFound    = 3
	ExitExists      = 4
	ExitPermission  = 5
)

// ExitCode maps an error to its exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case fsops.IsInvalidPath(err):
		return ExitInvalidPath
	case fsops.IsNotExist(err) || errors.Is(err, fsops.ErrNotDir) || errors.Is(err, fsops.ErrIsDir):
		return ExitNotFound
	case fsops.IsExist(err):
		return ExitExists
	case fsops.IsPermission(err) || fsops.IsReadOnlyError(err):
		return ExitPermission
	default:
		return ExitIOFailure
	}
}

// ErrorKind names the error kind for the one-line failure message.
func ErrorKind(err error) string {
	switch ExitCode(err) {
	case ExitInvalidPath:
		return "invalid-path"
	case ExitNotFound:
		return "not-found"
	case ExitExists:
		return "already-exists"
	case ExitPermission:
		return "access-denied"
	default:
		return "io-failure"
	}
}
