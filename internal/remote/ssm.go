package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"netinventory/pkg/logging"
)

// Defaults applied by NewSSMExecutor to zero SSMConfig fields
const (
	DefaultSSMDocument     = "AWS-RunShellScript"
	DefaultSSMWaitTimeout  = 10 * time.Minute
	DefaultSSMPollInterval = 2 * time.Second
)

// SSMConfig configures the AWS Systems Manager executor.
type SSMConfig struct {
	DocumentName string
	WaitTimeout  time.Duration
	PollInterval time.Duration
}

// SSMExecutor runs commands through SSM SendCommand and waits for the
// invocation to finish.
type SSMExecutor struct {
	config   SSMConfig
	client   SSMClientAPI
	resolver InstanceIDResolver
	logger   logging.Logger
	ids      map[string]string
}

// NewSSMExecutor creates a new SSMExecutor. A nil resolver means instance
// names are already EC2 instance IDs.
func NewSSMExecutor(config SSMConfig, client SSMClientAPI, resolver InstanceIDResolver, logger logging.Logger) *SSMExecutor {
	if config.DocumentName == "" {
		config.DocumentName = DefaultSSMDocument
	}
	if config.WaitTimeout <= 0 {
		config.WaitTimeout = DefaultSSMWaitTimeout
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultSSMPollInterval
	}
	return &SSMExecutor{
		config:   config,
		client:   client,
		resolver: resolver,
		logger:   logger,
		ids:      make(map[string]string),
	}
}

// Run executes command on instance and returns its standard output.
func (e *SSMExecutor) Run(ctx context.Context, instance, command string) (string, error) {
	instanceID, err := e.instanceID(ctx, instance)
	if err != nil {
		return "", NewRemoteExecError(ErrResolve, instance, command, -1, "", err)
	}

	e.logger.Debug("Sending %q to %s (%s) via SSM", command, instance, instanceID)
	sent, err := e.client.SendCommand(ctx, &ssm.SendCommandInput{
		DocumentName: aws.String(e.config.DocumentName),
		InstanceIds:  []string{instanceID},
		Parameters: map[string][]string{
			"commands": {command},
		},
		Comment: aws.String("netinventory discovery"),
	})
	if err != nil {
		return "", NewRemoteExecError(ErrTransport, instance, command, -1, "", fmt.Errorf("sending command: %w", err))
	}
	if sent.Command == nil || sent.Command.CommandId == nil {
		return "", NewRemoteExecError(ErrTransport, instance, command, -1, "", errors.New("SendCommand returned no command ID"))
	}

	input := &ssm.GetCommandInvocationInput{
		CommandId:  sent.Command.CommandId,
		InstanceId: aws.String(instanceID),
	}

	waiter := ssm.NewCommandExecutedWaiter(e.client, func(o *ssm.CommandExecutedWaiterOptions) {
		o.MinDelay = e.config.PollInterval
		if o.MaxDelay < o.MinDelay {
			o.MaxDelay = o.MinDelay
		}
	})
	// the waiter fails on any terminal non-success status; the invocation
	// below carries the details for those
	waitErr := waiter.Wait(ctx, input, e.config.WaitTimeout)
	if waitErr != nil {
		e.logger.Debug("SSM waiter for %s finished with: %v", instance, waitErr)
	}

	inv, err := e.client.GetCommandInvocation(ctx, input)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return "", NewRemoteExecError(ErrTimeout, instance, command, -1, "", ctxErr)
			}
			return "", NewRemoteExecError(ErrTransport, instance, command, -1, "", ctxErr)
		}
		return "", NewRemoteExecError(ErrTransport, instance, command, -1, "", fmt.Errorf("getting command invocation: %w", err))
	}

	stderr := strings.TrimSpace(aws.ToString(inv.StandardErrorContent))
	switch inv.Status {
	case types.CommandInvocationStatusSuccess:
		return aws.ToString(inv.StandardOutputContent), nil
	case types.CommandInvocationStatusPending, types.CommandInvocationStatusInProgress, types.CommandInvocationStatusDelayed:
		return "", NewRemoteExecError(ErrTimeout, instance, command, -1, stderr, waitErr)
	case types.CommandInvocationStatusTimedOut:
		return "", NewRemoteExecError(ErrTimeout, instance, command, int(inv.ResponseCode), stderr, waitErr)
	default:
		return "", NewRemoteExecError(ErrExitStatus, instance, command, int(inv.ResponseCode), stderr,
			fmt.Errorf("invocation status %s: %s", inv.Status, aws.ToString(inv.StatusDetails)))
	}
}

// Close is a no-op; the SSM client holds no per-instance state.
func (e *SSMExecutor) Close() error { return nil }

func (e *SSMExecutor) instanceID(ctx context.Context, instance string) (string, error) {
	if e.resolver == nil {
		return instance, nil
	}
	if id, ok := e.ids[instance]; ok {
		return id, nil
	}
	id, err := e.resolver.ResolveInstanceID(ctx, instance)
	if err != nil {
		return "", err
	}
	e.ids[instance] = id
	return id, nil
}
