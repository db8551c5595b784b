package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/stack/internal/engine"
	"github.com/roach88/stack/internal/model"
)

// dueDateLayouts are accepted by the --due flag, most specific first.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Course string
	Type   string
	Due    string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an assignment",
		Long: `Add an assignment.

Example:
  stack add "Quiz 1" --course "CS 101" --type Quiz --due 2026-09-04`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, ok := model.ParseType(opts.Type)
			if !ok {
				return fmt.Errorf("unknown type %q (one of %v)", opts.Type, model.AllTypes)
			}
			dueAt, err := parseDueDate(opts.Due)
			if err != nil {
				return err
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

			added := env.Engine.Add(engine.AddRequest{
				Name:   args[0],
				Course: opts.Course,
				Type:   typ,
				DueAt:  dueAt,
			})
			env.Engine.Flush()
			if appErr, ok := env.Engine.Err(); ok {
				return appErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", added.Name, added.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Course, "course", "", "course name (empty means uncategorized)")
	cmd.Flags().StringVar(&opts.Type, "type", string(model.TypeHomework), "assignment type")
	cmd.Flags().StringVar(&opts.Due, "due", "", "due date (RFC3339, '2006-01-02 15:04', or 2006-01-02)")

	return cmd
}

func parseDueDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().AddDate(0, 0, 1), nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date %q", raw)
}
