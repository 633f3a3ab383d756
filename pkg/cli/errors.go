package cli

import (
	"errors"
	"fmt"
)

// ErrValidationFailed marks a run in which at least one document did not
// pass. Commands wrap it in a CommandError so that callers can test for
// it with errors.Is regardless of the output format in use.
var ErrValidationFailed = errors.New("validation failed")

// ConfigError reports a problem with the loaded configuration. Field is
// the dotted config path ("history.sqlite.path") and is empty when the
// file itself could not be read or parsed.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config error: " + e.Message
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// NewConfigError builds a ConfigError for the given config path.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// CommandError ties a failure to the subcommand that produced it. It
// unwraps to the underlying cause.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with the name of the failing subcommand.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}
