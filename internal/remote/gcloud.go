package remote

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"netinventory/pkg/logging"
)

const defaultGCloudBinary = "gcloud"

// GCloudConfig configures the `gcloud compute ssh` executor.
type GCloudConfig struct {
	Binary   string   // defaults to "gcloud" on PATH
	Zone     string   // optional --zone
	Project  string   // optional --project
	SSHFlags []string // passed as repeated --ssh-flag
}

// commandRunner runs a local process and returns its captured streams.
type commandRunner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// GCloudExecutor runs remote commands through the gcloud CLI.
type GCloudExecutor struct {
	config GCloudConfig
	logger logging.Logger
	run    commandRunner
}

// NewGCloudExecutor creates a new GCloudExecutor
func NewGCloudExecutor(config GCloudConfig, logger logging.Logger) *GCloudExecutor {
	if config.Binary == "" {
		config.Binary = defaultGCloudBinary
	}
	return &GCloudExecutor{
		config: config,
		logger: logger,
		run:    runLocalCommand,
	}
}

// Args builds the gcloud argument list for running command on instance.
func (e *GCloudExecutor) Args(instance, command string) []string {
	args := []string{"compute", "ssh", instance}
	if e.config.Zone != "" {
		args = append(args, "--zone="+e.config.Zone)
	}
	if e.config.Project != "" {
		args = append(args, "--project="+e.config.Project)
	}
	for _, f := range e.config.SSHFlags {
		args = append(args, "--ssh-flag="+f)
	}
	return append(args, "--command="+command)
}

// Run executes command on instance and returns its standard output. gcloud
// writes warnings to stderr on success, so only the exit status decides failure.
func (e *GCloudExecutor) Run(ctx context.Context, instance, command string) (string, error) {
	args := e.Args(instance, command)
	e.logger.Debug("Running %s %s", e.config.Binary, strings.Join(args, " "))

	stdout, stderr, err := e.run(ctx, e.config.Binary, args...)
	if err == nil {
		return string(stdout), nil
	}

	errOut := strings.TrimSpace(string(stderr))
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return "", NewRemoteExecError(ErrTimeout, instance, command, -1, errOut, ctxErr)
		}
		return "", NewRemoteExecError(ErrTransport, instance, command, -1, errOut, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "", NewRemoteExecError(ErrExitStatus, instance, command, exitErr.ExitCode(), errOut, err)
	}
	return "", NewRemoteExecError(ErrTransport, instance, command, -1, errOut, err)
}

// Close is a no-op; every gcloud invocation is a separate process.
func (e *GCloudExecutor) Close() error { return nil }

func runLocalCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
