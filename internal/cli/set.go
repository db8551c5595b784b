package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/stack/internal/model"
)

// SetOptions holds flags for the set command.
type SetOptions struct {
	*RootOptions
	Status string
	Name   string
	Course string
	Type   string
	Due    string
}

// NewSetCommand creates the set command for editing assignment fields.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Edit fields of an assignment",
		Long: `Edit fields of an assignment.

Example:
  stack set 2f1a... --status "In Progress" --due 2026-09-10`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid assignment id %q: %w", args[0], err)
			}

			env, err := NewAppEnv(opts.RootOptions)
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

			changed := false
			if cmd.Flags().Changed("status") {
				status, ok := model.ParseStatus(opts.Status)
				if !ok {
					return fmt.Errorf("unknown status %q (one of %v)", opts.Status, model.AllStatuses)
				}
				changed = env.Engine.UpdateStatus(id, status) || changed
			}
			if cmd.Flags().Changed("name") {
				changed = env.Engine.UpdateName(id, opts.Name) || changed
			}
			if cmd.Flags().Changed("course") {
				changed = env.Engine.UpdateCourse(id, opts.Course) || changed
			}
			if cmd.Flags().Changed("type") {
				typ, ok := model.ParseType(opts.Type)
				if !ok {
					return fmt.Errorf("unknown type %q (one of %v)", opts.Type, model.AllTypes)
				}
				changed = env.Engine.UpdateType(id, typ) || changed
			}
			if cmd.Flags().Changed("due") {
				dueAt, err := parseDueDate(opts.Due)
				if err != nil {
					return err
				}
				changed = env.Engine.UpdateDueDate(id, dueAt) || changed
			}

			if !changed {
				return fmt.Errorf("no assignment with id %s (or no fields given)", id)
			}

			env.Engine.Flush()
			if appErr, ok := env.Engine.Err(); ok {
				return appErr
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "status")
	cmd.Flags().StringVar(&opts.Name, "name", "", "display name")
	cmd.Flags().StringVar(&opts.Course, "course", "", "course name")
	cmd.Flags().StringVar(&opts.Type, "type", "", "assignment type")
	cmd.Flags().StringVar(&opts.Due, "due", "", "due date")

	return cmd
}
