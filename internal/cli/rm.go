package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <id>",
		Short:         "Delete an assignment",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid assignment id %q: %w", args[0], err)
			}

			env, err := NewAppEnv(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.RequireSession(); err != nil {
				return err
			}
			if err := env.Engine.Load(cmd.Context()); err != nil {
				return err
			}

			env.Engine.Select(id)
			if !env.Engine.DeleteSelected() {
				return fmt.Errorf("no assignment with id %s", id)
			}

			env.Engine.Flush()
			if appErr, ok := env.Engine.Err(); ok {
				return appErr
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}
