package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	awsprovider "netinventory/internal/providers/aws"
	"netinventory/internal/remote"
	"netinventory/pkg/logging"
)

// loadAWSConfig is replaced in tests
var loadAWSConfig = awsprovider.LoadConfig

// buildExecutor returns the remote executor selected by s.Executor.
func buildExecutor(ctx context.Context, s settings, logger logging.Logger) (remote.Executor, error) {
	switch s.Executor {
	case executorGCloud:
		return remote.NewGCloudExecutor(s.GCloud, logger), nil

	case executorSSH:
		var resolver remote.AddressResolver = remote.StaticResolver{Port: s.AWS.Port}
		if s.AWS.ResolveEC2 {
			cfg, err := loadAWSConfig(ctx, s.AWS.Region, s.AWS.Profile)
			if err != nil {
				return nil, err
			}
			resolver = newInstanceService(cfg, s.AWS, logger)
		}
		executor, err := remote.NewSSHExecutor(s.SSH, resolver, logger)
		if err != nil {
			return nil, fmt.Errorf("configuring SSH: %w", err)
		}
		return executor, nil

	case executorSSM:
		cfg, err := loadAWSConfig(ctx, s.AWS.Region, s.AWS.Profile)
		if err != nil {
			return nil, err
		}
		var ids remote.InstanceIDResolver
		if !s.AWS.InstanceIDs {
			ids = newInstanceService(cfg, s.AWS, logger)
		}
		return remote.NewSSMExecutor(s.SSM, ssm.NewFromConfig(cfg), ids, logger), nil
	}
	return nil, fmt.Errorf("unknown executor %q", s.Executor)
}

func newInstanceService(cfg aws.Config, s awsSettings, logger logging.Logger) *awsprovider.InstanceService {
	svc := awsprovider.NewInstanceServiceWithClient(ec2.NewFromConfig(cfg), logger)
	svc.UsePublicIP = s.UsePublicIP
	svc.Port = s.Port
	return svc
}
