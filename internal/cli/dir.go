package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gobeaver/fsops"
)

// newMkdirCmd creates the mkdir command. An existing target, file or
// directory, is an error.
func newMkdirCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.FS.CreateDir(cmd.Context(), args[0]); err != nil {
				return err
			}
			cli.Log.Info().Str("path", args[0]).Msg("created directory")
			return nil
		},
	}
}

// newRmdirCmd creates the rmdir command: recursive removal.
func newRmdirCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "rmdir <path>",
		Short: "Remove a directory and all its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.FS.DeleteDir(cmd.Context(), args[0]); err != nil {
				return err
			}
			cli.Log.Info().Str("path", args[0]).Msg("removed directory")
			return nil
		},
	}
}

// newLsCmd creates the ls command.
func newLsCmd(cli *CLI) *cobra.Command {
	var (
		recursive bool
		pattern   string
	)

	cmd := &cobra.Command{
		Use:   "ls <path>",
		Short: "List directory contents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}

			var (
				files []fsops.FileInfo
				err   error
			)

			if pattern != "" {
				selector, serr := fsops.Glob(pattern)
				if serr != nil {
					return serr
				}
				files, err = fsops.ListWithSelector(cmd.Context(), cli.FS, path, selector, recursive)
			} else {
				files, err = cli.FS.ListContents(cmd.Context(), path, recursive)
			}
			if err != nil {
				return err
			}

			for _, f := range files {
				if f.IsDir {
					fmt.Printf("%12s  %s/\n", "-", f.Path)
				} else {
					fmt.Printf("%12d  %s\n", f.Size, f.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "include all descendants")
	cmd.Flags().StringVar(&pattern, "glob", "", "only list files matching a glob pattern")

	return cmd
}
