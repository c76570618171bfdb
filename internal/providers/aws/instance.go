package aws

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"netinventory/internal/models"
	"netinventory/pkg/logging"
)

const defaultSSHPort = 22

// InstanceService looks up running EC2 instances by their Name tag
type InstanceService struct {
	client EC2ClientAPI
	logger logging.Logger

	// UsePublicIP prefers the public address when resolving SSH targets
	UsePublicIP bool
	// Port is appended to resolved addresses; 0 means 22
	Port int
}

// LoadConfig loads the default AWS SDK configuration, optionally pinned to a
// region and shared-config profile.
func LoadConfig(ctx context.Context, region, profile string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, NewAWSError(ErrConfigurationError, "", "", "unable to load AWS SDK config", err)
	}
	return cfg, nil
}

// NewInstanceServiceWithClient creates a new InstanceService with a provided client
func NewInstanceServiceWithClient(client EC2ClientAPI, logger logging.Logger) *InstanceService {
	return &InstanceService{
		client: client,
		logger: logger,
	}
}

// LookupInstance finds the running instance whose Name tag equals name. When
// several match, the first one in response order wins.
func (s *InstanceService) LookupInstance(ctx context.Context, name string) (*models.InstanceLocation, error) {
	if name == "" {
		return nil, NewAWSError(ErrInvalidInput, EC2ResourceType, "", "instance name is empty", nil)
	}

	resp, err := s.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{Name: aws.String("tag:Name"), Values: []string{name}},
			{Name: aws.String("instance-state-name"), Values: []string{string(types.InstanceStateNameRunning)}},
		},
	})
	if err != nil {
		return nil, ClassifyAWSError(err, EC2ResourceType, name)
	}

	var matches []types.Instance
	for _, r := range resp.Reservations {
		matches = append(matches, r.Instances...)
	}
	if len(matches) == 0 {
		return nil, NewAWSError(ErrResourceNotFound, EC2ResourceType, name, "no running instance with this Name tag", nil)
	}
	if len(matches) > 1 {
		s.logger.Warn("%d running instances are named %s, using %s", len(matches), name, aws.ToString(matches[0].InstanceId))
	}

	return toLocation(name, matches[0]), nil
}

// ResolveAddress returns the host:port to dial for the named instance
func (s *InstanceService) ResolveAddress(ctx context.Context, name string) (string, error) {
	loc, err := s.LookupInstance(ctx, name)
	if err != nil {
		return "", err
	}

	primary, fallback := loc.PrivateIP, loc.PublicIP
	if s.UsePublicIP {
		primary, fallback = fallback, primary
	}
	host := primary
	if host == "" {
		host = fallback
	}
	if host == "" {
		return "", NewAWSError(ErrResourceNotFound, EC2ResourceType, name, "instance has no IP address", nil)
	}

	port := s.Port
	if port == 0 {
		port = defaultSSHPort
	}
	s.logger.Debug("Resolved %s to %s (%s)", name, host, loc.InstanceID)
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

// ResolveInstanceID returns the EC2 instance ID for the named instance
func (s *InstanceService) ResolveInstanceID(ctx context.Context, name string) (string, error) {
	loc, err := s.LookupInstance(ctx, name)
	if err != nil {
		return "", err
	}
	if loc.InstanceID == "" {
		return "", fmt.Errorf("instance %s has no instance ID", name)
	}
	return loc.InstanceID, nil
}

func toLocation(name string, instance types.Instance) *models.InstanceLocation {
	loc := &models.InstanceLocation{
		Name:       name,
		InstanceID: aws.ToString(instance.InstanceId),
		PrivateIP:  aws.ToString(instance.PrivateIpAddress),
		PublicIP:   aws.ToString(instance.PublicIpAddress),
		PublicDNS:  aws.ToString(instance.PublicDnsName),
	}
	if instance.State != nil {
		loc.State = string(instance.State.Name)
	}
	return loc
}
