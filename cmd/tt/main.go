package main

import (
	"fmt"
	"os"

	"timetracking/internal/cli"
	"timetracking/internal/errors"
	"timetracking/internal/logging"
)

func main() {
	cfg, configPath, err := loadConfig()
	if err != nil {
		exit(err)
	}

	root := cli.NewRootCommand(cfg, cli.WithConfigPath(configPath))
	if err := root.Execute(); err != nil {
		exit(err)
	}
}

// exit reports err and terminates. System errors are also debug-logged with
// their code and cause.
func exit(err error) {
	if errors.ShouldLogError(err) {
		if appErr, ok := errors.AsAppError(err); ok {
			logging.Debugf("%s: %v\n", errors.GetErrorCode(err), appErr)
		}
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
