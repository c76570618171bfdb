package remote

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Executor runs a shell command on a named remote instance and returns its
// standard output.
//
//go:generate mockery --name=Executor --output=./mocks
type Executor interface {
	Run(ctx context.Context, instance, command string) (string, error)
	Close() error
}

// AddressResolver maps an instance name to a dialable host:port.
//
//go:generate mockery --name=AddressResolver --output=./mocks
type AddressResolver interface {
	ResolveAddress(ctx context.Context, instance string) (string, error)
}

// InstanceIDResolver maps an instance name to its cloud instance ID.
//
//go:generate mockery --name=InstanceIDResolver --output=./mocks
type InstanceIDResolver interface {
	ResolveInstanceID(ctx context.Context, instance string) (string, error)
}

// SSMClientAPI defines the SSM operations used by SSMExecutor
//
//go:generate mockery --name=SSMClientAPI --output=./mocks --unroll-variadic=false
type SSMClientAPI interface {
	SendCommand(ctx context.Context, params *ssm.SendCommandInput, optFns ...func(*ssm.Options)) (*ssm.SendCommandOutput, error)
	GetCommandInvocation(ctx context.Context, params *ssm.GetCommandInvocationInput, optFns ...func(*ssm.Options)) (*ssm.GetCommandInvocationOutput, error)
}
