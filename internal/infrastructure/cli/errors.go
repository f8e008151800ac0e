package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/felixgeelhaar/burndown/internal/infrastructure/config"
	"github.com/felixgeelhaar/burndown/internal/infrastructure/redmine"
	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
	"github.com/felixgeelhaar/burndown/pkg/domain/sprint"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *redmine.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return NewCLIError("redmine rejected the request", fmt.Sprintf("Set %s to a valid API key", config.EnvAPIKey), err)
		case http.StatusNotFound:
			return NewCLIError("redmine resource not found", "Check the project identifiers in "+config.DefaultFile, err)
		}
	}

	switch {
	case errors.Is(err, sprint.ErrFutureSprint):
		return NewCLIError("sprint has not started", "Omit --sprint to report on the current sprint", err)
	case errors.Is(err, sprint.ErrInvalidSprint):
		return NewCLIError("invalid sprint number", "Sprint numbers start at 1", err)
	case errors.Is(err, sprint.ErrBeforeEpoch):
		return NewCLIError("no sprint has started yet", "Check the system clock", err)
	case errors.Is(err, burndown.ErrTodayOutsideWindow):
		return NewCLIError("no working day to report", "Pass --sprint to replay a finished sprint", err)
	}

	return err
}
