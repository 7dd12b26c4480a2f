package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gobeaver/fsops"
)

// newReadCmd creates the read command: file contents to stdout.
func newReadCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "read <path>",
		Short: "Read a file and print its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := cli.FS.ReadAll(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

// newWriteCmd creates the write command. Content comes from the second
// argument, or from stdin when the argument is omitted or "-".
func newWriteCmd(cli *CLI) *cobra.Command {
	var createOnly bool

	cmd := &cobra.Command{
		Use:   "write <path> [content]",
		Short: "Write a file (replaces existing content by default)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := contentReader(args)
			if err != nil {
				return err
			}

			var opts []fsops.Option
			if createOnly {
				opts = append(opts, fsops.WithCreateOnly())
			}

			n, err := cli.FS.Write(cmd.Context(), args[0], r, opts...)
			if err != nil {
				return err
			}

			cli.Log.Info().Str("path", args[0]).Int64("bytes", n).Msg("wrote file")
			return nil
		},
	}

	cmd.Flags().BoolVar(&createOnly, "create-only", false, "fail if the target already exists")

	return cmd
}

// newAppendCmd creates the append command. Appending to a missing file is
// an error: append never creates.
func newAppendCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "append <path> [content]",
		Short: "Append to an existing file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := contentReader(args)
			if err != nil {
				return err
			}

			n, err := cli.FS.Append(cmd.Context(), args[0], r)
			if err != nil {
				return err
			}

			cli.Log.Info().Str("path", args[0]).Int64("bytes", n).Msg("appended to file")
			return nil
		},
	}
}

// newRemoveCmd creates the remove command.
func newRemoveCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>",
		Short: "Remove a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.FS.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			cli.Log.Info().Str("path", args[0]).Msg("removed file")
			return nil
		},
	}
}

// newSumCmd creates the sum command: checksum of a file.
func newSumCmd(cli *CLI) *cobra.Command {
	var algo string

	cmd := &cobra.Command{
		Use:   "sum <path>",
		Short: "Print a file checksum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, ok := cli.FS.(fsops.CanChecksum)
			if !ok {
				return &fsops.PathError{Op: "sum", Path: args[0], Err: fsops.ErrNotSupported}
			}

			sum, err := cs.Checksum(cmd.Context(), args[0], fsops.ChecksumAlgorithm(algo))
			if err != nil {
				return err
			}

			fmt.Printf("%s  %s\n", sum, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&algo, "algo", string(fsops.ChecksumSHA256), "checksum algorithm (md5, sha1, sha256, sha512, crc32, xxhash)")

	return cmd
}

// contentReader returns the content argument as a reader, falling back to
// stdin when it is omitted or "-".
func contentReader(args []string) (io.Reader, error) {
	if len(args) < 2 || args[1] == "-" {
		return os.Stdin, nil
	}
	return strings.NewReader(args[1]), nil
}
