package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gobeaver/fsops"
)

// newWatchCmd creates the watch command: prints one line per change event
// until interrupted, the timeout elapses, or the watched path is removed.
func newWatchCmd(cli *CLI) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "watch <path>",
		Short: "Watch a path for changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, ok := cli.FS.(fsops.CanWatch)
			if !ok {
				return &fsops.PathError{Op: "watch", Path: args[0], Err: fsops.ErrNotSupported}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sub, err := watcher.Watch(ctx, args[0])
			if err != nil {
				return err
			}
			defer sub.Cancel()

			cli.Log.Info().Str("path", args[0]).Msg("watching")

			var deadline <-chan time.Time
			if timeout > 0 {
				t := time.NewTimer(timeout)
				defer t.Stop()
				deadline = t.C
			}

			for {
				select {
				case ev, ok := <-sub.Events():
					if !ok {
						if sub.State() == fsops.WatchPathRemoved {
							cli.Log.Warn().Str("path", args[0]).Msg("watched path removed")
						}
						return nil
					}
					fmt.Printf("%s  %-8s  %s\n", ev.Time.Format(time.RFC3339), ev.Kind, ev.Path)

				case <-deadline:
					return nil

				case <-ctx.Done():
					return nil
				}
			}
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "stop watching after this duration (0 = until interrupted)")

	return cmd
}
