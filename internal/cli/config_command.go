package cli

import (
	"context"
	"fmt"
	"io"

	"timetracking/internal/config"
	"timetracking/internal/errors"
)

// ConfigCommand handles the config command
type ConfigCommand struct {
	config     *config.Config
	configPath string
	out        io.Writer
}

// NewConfigCommand creates a new config command handler
func NewConfigCommand(app *App) *ConfigCommand {
	return &ConfigCommand{
		config:     app.config,
		configPath: app.configPath,
		out:        app.out,
	}
}

// Execute runs "config show" or "config init"
func (c *ConfigCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "config", "usage: tt config show|init")
	}

	switch args[0] {
	case "show":
		content, err := c.config.YAML()
		if err != nil {
			return err
		}
		_, err = io.WriteString(c.out, content)
		return err
	case "init":
		if err := config.WriteDefault(c.configPath); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Wrote default configuration to %s\n", c.configPath)
		return nil
	default:
		return errors.NewInvalidInputError("action", args[0], "unsupported config action")
	}
}
