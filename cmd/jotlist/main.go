// Package main implements the jotlist CLI and TUI.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/jotlist/internal/app"
	"github.com/dori/jotlist/internal/config"
	"github.com/dori/jotlist/internal/ui"
	"github.com/dori/jotlist/internal/ui/theme"
	"github.com/dori/jotlist/internal/view"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions carries the persistent flags and the config they resolve to
type rootOptions struct {
	configPath string
	dataDir    string
	debug      bool
	ephemeral  bool

	theme  string
	sortBy string
	order  string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "jotlist",
		Short: "jotlist - a small todo list for the terminal",
		Long: `jotlist keeps a single list of todos with titles, descriptions,
deadlines, priorities and tags.

Run without arguments to start the TUI.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/jotlist/config.toml)")
	pf.StringVar(&opts.dataDir, "data-dir", "", "Directory for the database, lock and log files")
	pf.BoolVar(&opts.debug, "debug", false, "Log at debug level")
	pf.BoolVar(&opts.ephemeral, "ephemeral", false, "Keep todos in memory only")

	cmd.Flags().StringVar(&opts.theme, "theme", "", "Theme (nord, dracula, gruvbox, catppuccin)")
	cmd.Flags().StringVar(&opts.sortBy, "sort", "", "Initial sort key (createdAt, deadline, priority)")
	cmd.Flags().StringVar(&opts.order, "order", "", "Initial sort order (asc, desc)")

	cmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newEditCmd(opts),
		newDoneCmd(opts),
		newRestoreCmd(opts),
		newRemoveCmd(opts),
		newClearCmd(opts),
		newTagsCmd(opts),
		newRemindCmd(opts),
		newVersionCmd(),
	)
	cmd.Version = version
	cmd.SetVersionTemplate("jotlist v{{.Version}}\n")

	return cmd
}

// loadConfig reads the config file and applies flag overrides
func (o *rootOptions) loadConfig() error {
	path := o.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	o.cfg = cfg
	return nil
}

// open starts the application over the resolved config
func (o *rootOptions) open() (*app.App, error) {
	return app.New(o.cfg, app.Options{Debug: o.debug, Ephemeral: o.ephemeral})
}

// viewOptions merges the config's list controls with --sort and --order
func (o *rootOptions) viewOptions(sortBy, order string) (view.Options, error) {
	opts := o.cfg.ViewOptions()
	if sortBy != "" {
		k, err := view.ParseSortKey(sortBy)
		if err != nil {
			return opts, err
		}
		opts.SortBy = k
	}
	if order != "" {
		ord, err := view.ParseSortOrder(order)
		if err != nil {
			return opts, err
		}
		opts.Order = ord
	}
	return opts, nil
}

func runTUI(o *rootOptions) error {
	vopts, err := o.viewOptions(o.sortBy, o.order)
	if err != nil {
		return err
	}

	themeName := o.cfg.Theme
	if o.theme != "" {
		themeName = o.theme
	}
	t, ok := theme.ByName(themeName)
	if !ok {
		return fmt.Errorf("unknown theme %q", themeName)
	}
	theme.SetTheme(t)

	application, err := o.open()
	if err != nil {
		return err
	}
	defer application.Close()

	model := ui.NewRootModel(application.Repo, vopts, application.Logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
