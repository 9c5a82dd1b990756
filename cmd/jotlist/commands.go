package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dori/jotlist/internal/app"
	"github.com/dori/jotlist/internal/form"
	"github.com/dori/jotlist/internal/model"
	"github.com/dori/jotlist/internal/notify"
	"github.com/dori/jotlist/internal/view"
	"github.com/spf13/cobra"
)

// shortIDLen is how much of an id the list shows; any unique prefix resolves.
const shortIDLen = 8

// withApp opens the app for the duration of fn
func withApp(o *rootOptions, fn func(a *app.App) error) error {
	a, err := o.open()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// add
func newAddCmd(o *rootOptions) *cobra.Command {
	var in form.Input

	cmd := &cobra.Command{
		Use:   "add <title>...",
		Short: "Add a todo",
		Long: `Add a todo. All arguments are joined into the title.

Deadlines accept 2026-01-02T15:04, 2026-01-02 15:04, 2026-01-02 (end of day),
RFC 3339, or today, tomorrow, nextweek and weekday names.`,
		Example: `  jotlist add Buy groceries --due tomorrow --tags errands,home
  jotlist add "Review PR" --priority high`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = strings.Join(args, " ")
			return withApp(o, func(a *app.App) error {
				f := form.NewEntryForm()
				f.Input = in
				created, err := f.Submit(a.Repo, time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s\n", shortID(created.ID), created.Text)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&in.Description, "desc", "d", "", "Description")
	cmd.Flags().StringVar(&in.Deadline, "due", "", "Deadline")
	cmd.Flags().StringVarP(&in.Priority, "priority", "p", "", "Priority (high, medium, low)")
	cmd.Flags().StringVarP(&in.Tags, "tags", "t", "", "Comma-separated tags")
	return cmd
}

// list
func newListCmd(o *rootOptions) *cobra.Command {
	var (
		sortBy    string
		order     string
		tag       string
		completed bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List todos",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := o.viewOptions(sortBy, order)
			if err != nil {
				return err
			}
			opts.Tag = tag

			return withApp(o, func(a *app.App) error {
				res := view.Query(a.Repo.Todos(), opts)
				todos := res.Active
				if completed {
					todos = res.Completed
				}
				printTodoTable(cmd.OutOrStdout(), todos, time.Now())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort key (createdAt, deadline, priority)")
	cmd.Flags().StringVar(&order, "order", "", "Sort order (asc, desc)")
	cmd.Flags().StringVar(&tag, "tag", "", "Only todos carrying this tag")
	cmd.Flags().BoolVarP(&completed, "completed", "c", false, "List completed todos instead of active ones")
	return cmd
}

// edit
func newEditCmd(o *rootOptions) *cobra.Command {
	var (
		in    form.Input
		noDue bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a todo",
		Long: `Edit a todo. Only the given flags change; the result is validated
with the same rules as add. A new deadline must not be in the past.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if noDue && flags.Changed("due") {
				return fmt.Errorf("--due and --no-due are mutually exclusive")
			}

			return withApp(o, func(a *app.App) error {
				id, err := a.Repo.Resolve(args[0])
				if err != nil {
					return err
				}
				t, _ := a.Repo.Get(id)

				f := form.NewEditForm(t)
				if flags.Changed("title") {
					f.Title = in.Title
				}
				if flags.Changed("desc") {
					f.Description = in.Description
				}
				if flags.Changed("due") {
					f.Deadline = in.Deadline
				}
				if noDue {
					f.Deadline = ""
				}
				if flags.Changed("priority") {
					f.Priority = in.Priority
				}
				if flags.Changed("tags") {
					f.Tags = in.Tags
				}

				if err := f.Save(a.Repo, time.Now()); err != nil {
					return err
				}
				updated, _ := a.Repo.Get(id)
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", shortID(id), updated.Text)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "New title")
	cmd.Flags().StringVarP(&in.Description, "desc", "d", "", "New description")
	cmd.Flags().StringVar(&in.Deadline, "due", "", "New deadline")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "Remove the deadline")
	cmd.Flags().StringVarP(&in.Priority, "priority", "p", "", "New priority (high, medium, low)")
	cmd.Flags().StringVarP(&in.Tags, "tags", "t", "", "New comma-separated tags (replaces all)")
	return cmd
}

// done
func newDoneCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a todo between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(a *app.App) error {
				id, err := a.Repo.Resolve(args[0])
				if err != nil {
					return err
				}
				a.Repo.ToggleComplete(id)
				t, _ := a.Repo.Get(id)
				if t.Completed {
					fmt.Fprintf(cmd.OutOrStdout(), "Completed %s: %s\n", shortID(id), t.Text)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Reopened %s: %s\n", shortID(id), t.Text)
				}
				return nil
			})
		},
	}
}

// restore
func newRestoreCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Move a completed todo back to active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(a *app.App) error {
				id, err := a.Repo.Resolve(args[0])
				if err != nil {
					return err
				}
				a.Repo.Restore(id)
				t, _ := a.Repo.Get(id)
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %s: %s\n", shortID(id), t.Text)
				return nil
			})
		},
	}
}

// rm
func newRemoveCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Short:   "Delete a todo",
		Aliases: []string{"delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(a *app.App) error {
				id, err := a.Repo.Resolve(args[0])
				if err != nil {
					return err
				}
				t, _ := a.Repo.Get(id)
				a.Repo.Remove(id)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", shortID(id), t.Text)
				return nil
			})
		},
	}
}

// clear
func newClearCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every completed todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(a *app.App) error {
				n := a.Repo.ClearCompleted()
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed\n", n)
				return nil
			})
		},
	}
}

// tags
func newTagsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(a *app.App) error {
				for _, tag := range view.Vocabulary(a.Repo.Todos()) {
					fmt.Fprintln(cmd.OutOrStdout(), tag)
				}
				return nil
			})
		},
	}
}

// remind
func newRemindCmd(o *rootOptions) *cobra.Command {
	var (
		within time.Duration
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send desktop notifications for overdue and soon-due todos",
		Long: `Send a notify-send reminder for every active todo that is overdue
or due within --within. Suitable for running from cron.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(a *app.App) error {
				now := time.Now()
				if dryRun {
					printTodoTable(cmd.OutOrStdout(), notify.Due(a.Repo.Todos(), now, within), now)
					return nil
				}
				sent, err := notify.NewNotifier().RemindDue(a.Repo.Todos(), now, within)
				a.Logger.Info("sent reminders", "count", sent, "err", err)
				if err != nil {
					return fmt.Errorf("send reminder: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sent %d reminder(s)\n", sent)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&within, "within", time.Hour, "Also remind about todos due within this window")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the todos instead of notifying")
	return cmd
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func printTodoTable(w io.Writer, todos []model.Todo, now time.Time) {
	if len(todos) == 0 {
		fmt.Fprintln(w, "No todos found.")
		return
	}

	rows := make([][]string, 0, len(todos))
	for _, t := range todos {
		due := "-"
		if t.Deadline != nil {
			due = t.Deadline.Local().Format("2006-01-02 15:04")
			if t.IsOverdue(now) {
				due += " (overdue)"
			}
		}
		rows = append(rows, []string{
			shortID(t.ID),
			t.Text,
			string(t.Priority),
			due,
			strings.Join(t.Tags, ", "),
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "PRIORITY", "DEADLINE", "TAGS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, tbl.Render())
}
