package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"timetracking/internal/config"
	"timetracking/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	app     *App
	config  *config.Config
	options []AppOption
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, opts ...AppOption) *RootCommand {
	root := &RootCommand{
		config:  cfg,
		options: opts,
	}

	root.cmd = &cobra.Command{
		Use:   "tt",
		Short: "A command-line time tracking application",
		Long: `Time Tracker (tt) records when you start and stop working on projects and
reports how much time went into each project per day.

EXAMPLES:
  tt add website                           # Register a project
  tt start website                         # Stop everything else, start website
  tt start -c -p docs                      # Start docs, keep other projects running
  tt end website                           # Stop website
  tt end                                   # Stop all active projects
  tt list -a                               # List active projects
  tt report --round 30                     # Daily totals rounded up to 30 minutes
  tt output format=csv > log.csv           # Export the log as CSV
  tt output format=sqlite ~/tt.db          # Snapshot the log into SQLite

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  Files Configuration:
    TT_DIR                                 Data directory (default: ~/.tt)
    TT_PROJECTS_FILE                       Project list file (default: projects.json)
    TT_TRACKING_FILE                       Tracking log file (default: tracking.log)
    TT_DIR_PERMISSIONS                     Permissions for created directories (default: 0755)

  Tracker Configuration:
    TT_ROUND_MINUTES                       Report rounding granularity (default: 15)

  Display Configuration:
    TT_DATE_FORMAT                         Report date header layout (default: Mon 2.1.2006)
    TT_NAME_WIDTH                          Report project column width (default: 15)

  Application Configuration:
    TT_CONFIG                              Config file (default: ~/.tt/config.yaml)
    TT_APP_TIMEOUT                         Application timeout (default: 60s)
    TT_APP_VERBOSE                         Enable verbose output (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.setup()
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Files configuration
	flags.String("dir", "", "Data directory (overrides TT_DIR)")
	flags.String("projects-file", "", "Project list file (overrides TT_PROJECTS_FILE)")
	flags.String("tracking-file", "", "Tracking log file (overrides TT_TRACKING_FILE)")

	// Tracker configuration
	flags.Int("round-minutes", 0, "Report rounding granularity (overrides TT_ROUND_MINUTES)")

	// Display configuration
	flags.String("date-format", "", "Report date header layout (overrides TT_DATE_FORMAT)")
	flags.Int("name-width", 0, "Report project column width (overrides TT_NAME_WIDTH)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TT_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Start command
	var startProject string
	var keepOthers bool
	startCmd := &cobra.Command{
		Use:   "start [project]",
		Short: "Start tracking a project",
		Long: `Start tracking time for a registered project. All other active projects are
stopped first unless -c is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			startHandler := NewStartCommand(r.app, keepOthers)
			return startHandler.Execute(ctx, projectArgs(startProject, args))
		},
	}
	startCmd.Flags().StringVarP(&startProject, "project", "p", "", "Project to start")
	startCmd.Flags().BoolVarP(&keepOthers, "continue", "c", false, "Keep other active projects running")

	// End command
	var endProject string
	endCmd := &cobra.Command{
		Use:     "end [project]",
		Aliases: []string{"stop"},
		Short:   "Stop tracking a project",
		Long:    "Stop tracking time for a project, or for every active project when none is named.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			stopHandler := NewStopCommand(r.app)
			return stopHandler.Execute(ctx, projectArgs(endProject, args))
		},
	}
	endCmd.Flags().StringVarP(&endProject, "project", "p", "", "Project to stop")

	// List command
	var activeOnly bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "List the registered projects, or only the active ones with -a.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			listHandler := NewListCommand(r.app, activeOnly)
			return listHandler.Execute(ctx, args)
		},
	}
	listCmd.Flags().BoolVarP(&activeOnly, "active", "a", false, "List only active projects")

	// Report command
	var roundTo int
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Show time spent per project and day",
		Long: `Replay the tracking log and print the time spent on every project per day.
Each span is rounded up to the rounding granularity before it is added.

Examples:
  tt report              # Use the configured granularity
  tt report --round 60   # Round every span up to a full hour`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			reportHandler := NewReportCommand(r.app, r.roundMinutes(cmd, roundTo))
			return reportHandler.Execute(ctx, args)
		},
	}
	reportCmd.Flags().IntVarP(&roundTo, "round", "r", 0, "Rounding granularity in minutes")

	// Add command
	addCmd := &cobra.Command{
		Use:   "add [project]",
		Short: "Register a new project",
		Long:  "Register a new project. You are prompted for the name when none is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Add may wait for user input
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout()*2)
			defer cancel()

			addHandler := NewAddCommand(r.app)
			return addHandler.Execute(ctx, args)
		},
	}

	// Output command
	outputCmd := &cobra.Command{
		Use:   "output format=csv|format=sqlite [path] | output runs <path> [run-id]",
		Short: "Export the tracking log",
		Long: `Export the tracking log in the specified format.

Supported formats:
  csv    - Comma-separated values written to standard output
  sqlite - Events and daily totals stored as a new run in a SQLite database

The runs form lists the export runs stored in a SQLite database, or the
daily totals of a single run when its id is given.

Examples:
  tt output format=csv
  tt output format=sqlite ~/tt-export.db
  tt output runs ~/tt-export.db`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			outputHandler := NewOutputCommand(r.app)
			return outputHandler.Execute(ctx, args)
		},
	}

	// Config command
	configCmd := &cobra.Command{
		Use:   "config show|init",
		Short: "Show or create the configuration file",
		Long: `Show the effective configuration, or write a config file with the defaults.

Examples:
  tt config show
  tt config init`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configHandler := NewConfigCommand(r.app)
			return configHandler.Execute(cmd.Context(), args)
		},
	}

	// Add all subcommands to root
	r.cmd.AddCommand(
		startCmd,
		endCmd,
		listCmd,
		reportCmd,
		addCmd,
		outputCmd,
		configCmd,
	)
}

// projectArgs merges the -p flag and the positional project argument
func projectArgs(flagValue string, args []string) []string {
	if flagValue != "" {
		return []string{flagValue}
	}
	return args
}

// roundMinutes returns the --round value if given, otherwise the configured granularity
func (r *RootCommand) roundMinutes(cmd *cobra.Command, flagValue int) int {
	if cmd.Flags().Changed("round") {
		return flagValue
	}
	return r.config.GetRoundMinutes()
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// setup applies flag overrides and builds the application from the final configuration
func (r *RootCommand) setup() error {
	if err := r.getConfigFromFlags(); err != nil {
		return err
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	logging.SetVerbose(r.config.Application.Verbose)
	logging.Debugf("Tracking log %s, projects file %s\n", r.config.GetTrackingPath(), r.config.GetProjectsPath())

	r.app = NewApp(r.config, r.options...)
	return nil
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	// Files configuration
	if flags.Changed("dir") {
		dir, _ := flags.GetString("dir")
		overrides.Dir = &dir
	}
	if flags.Changed("projects-file") {
		projectsFile, _ := flags.GetString("projects-file")
		overrides.ProjectsFile = &projectsFile
	}
	if flags.Changed("tracking-file") {
		trackingFile, _ := flags.GetString("tracking-file")
		overrides.TrackingFile = &trackingFile
	}

	// Tracker configuration
	if flags.Changed("round-minutes") {
		roundMinutes, _ := flags.GetInt("round-minutes")
		overrides.RoundMinutes = &roundMinutes
	}

	// Display configuration
	if flags.Changed("date-format") {
		dateFormat, _ := flags.GetString("date-format")
		overrides.DateFormat = &dateFormat
	}
	if flags.Changed("name-width") {
		nameWidth, _ := flags.GetInt("name-width")
		overrides.NameWidth = &nameWidth
	}

	// Application configuration
	if flags.Changed("app-timeout") {
		appTimeout, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &appTimeout
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}

	config.ApplyOverrides(r.config, overrides)
	return nil
}
