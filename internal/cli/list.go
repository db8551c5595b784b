package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List assignments by due date",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			assignments := env.Engine.Assignments()
			if len(assignments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No assignments.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDUE\tSTATUS\tTYPE\tCOURSE\tNAME")
			for _, a := range assignments {
				course := a.Course
				if course == "" {
					course = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					a.ID, a.DueAt.Local().Format("2006-01-02 15:04"), a.Status, a.Type, course, a.Name)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if courses := env.Engine.AvailableCourses(); len(courses) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\nCourses: %s\n", strings.Join(courses, ", "))
			}
			return nil
		},
	}
}
