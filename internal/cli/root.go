// Package cli wires the Stack commands: authentication, listing, and the
// assignment mutations. Commands are thin - all list semantics live in
// internal/engine, and every one-shot mutation drains the engine's outbox
// before the process exits.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	// Memory runs against the seeded in-memory repository instead of the
	// remote store. Also the automatic fallback when no Supabase
	// configuration is present.
	Memory bool
}

// NewRootCommand creates the root command for the Stack CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Stack - assignment tracker",
		Long:  "A task/assignment tracker backed by a Supabase store, with optimistic local mutations.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&opts.Memory, "memory", false, "use the seeded in-memory repository")

	cmd.AddCommand(NewSignupCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))

	return cmd
}
