package cli

import (
	"context"
	"io"
	"os"

	"timetracking/internal/config"
	"timetracking/internal/services"
)

// ExportTarget is a database that stores and reads back export runs
type ExportTarget interface {
	services.ExportRepository
	services.ExportReader
	Close() error
}

// App represents the main CLI application
type App struct {
	config     *config.Config
	configPath string
	services   *services.ServiceContainer
	out        io.Writer
	errOut     io.Writer
	in         io.Reader
	prompter   Prompter
	openExport func(ctx context.Context, path string) (ExportTarget, error)
}

// AppOption customizes an App
type AppOption func(*App)

// WithOutput sets the writers for regular output and diagnostics
func WithOutput(out, errOut io.Writer) AppOption {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

// WithInput sets the reader used by interactive prompts
func WithInput(in io.Reader) AppOption {
	return func(a *App) {
		a.in = in
	}
}

// WithPrompter replaces the interactive prompt
func WithPrompter(p Prompter) AppOption {
	return func(a *App) {
		a.prompter = p
	}
}

// WithServices replaces the services built from the configuration
func WithServices(s *services.ServiceContainer) AppOption {
	return func(a *App) {
		a.services = s
	}
}

// WithConfigPath sets the config file written by "config init"
func WithConfigPath(path string) AppOption {
	return func(a *App) {
		a.configPath = path
	}
}

// NewApp creates a new CLI application with stores at the configured paths
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config:     cfg,
		configPath: config.DefaultFilePath(),
		out:        os.Stdout,
		errOut:     os.Stderr,
		in:         os.Stdin,
		openExport: func(ctx context.Context, path string) (ExportTarget, error) {
			repo, err := config.CreateExportRepository(ctx, path)
			if err != nil {
				return nil, err
			}
			return repo, nil
		},
	}
	for _, opt := range opts {
		opt(app)
	}

	if app.services == nil {
		app.services = services.NewServiceContainer(
			config.CreateTrackingLog(cfg),
			config.CreateProjectRegistry(cfg),
		)
	}
	if app.prompter == nil {
		app.prompter = NewTeaPrompter(app.in, app.out)
	}
	return app
}

// Config returns the effective configuration
func (a *App) Config() *config.Config {
	return a.config
}
