package pipclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/checkpoint/internal/execshell"
)

const (
	pipFreezeSubcommandConstant       = "freeze"
	freezeFailedErrorTemplateConstant = "pip freeze failed: %w"
)

// ErrExecutorNotConfigured reports a missing pip executor dependency.
var ErrExecutorNotConfigured = errors.New("pip client requires a pip executor")

// ErrPipUnavailable reports that the pip executable could not be run at all.
var ErrPipUnavailable = errors.New("pip executable unavailable")

// PipExecutor exposes the subset of shell execution used by the pip client.
type PipExecutor interface {
	ExecutePip(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client captures dependency snapshots via the pip command line interface.
type Client struct {
	pipExecutor PipExecutor
}

// NewClient validates dependencies and constructs a Client.
func NewClient(pipExecutor PipExecutor) (*Client, error) {
	if pipExecutor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{pipExecutor: pipExecutor}, nil
}

// FreezeDependencies returns the installed package listing exactly as pip reports it.
func (client *Client) FreezeDependencies(executionContext context.Context, workingDirectory string) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{pipFreezeSubcommandConstant},
		WorkingDirectory: workingDirectory,
	}

	executionResult, executionError := client.pipExecutor.ExecutePip(executionContext, commandDetails)
	if executionError != nil {
		executionFailure := execshell.CommandExecutionError{}
		if errors.As(executionError, &executionFailure) {
			return "", fmt.Errorf("%w: %v", ErrPipUnavailable, executionFailure.Cause)
		}
		return "", fmt.Errorf(freezeFailedErrorTemplateConstant, executionError)
	}

	return executionResult.StandardOutput, nil
}
