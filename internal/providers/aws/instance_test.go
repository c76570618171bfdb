package aws

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"netinventory/internal/providers/aws/mocks"
	"netinventory/pkg/logging"
)

func byName(name string) interface{} {
	return mock.MatchedBy(func(input *ec2.DescribeInstancesInput) bool {
		if len(input.Filters) != 2 {
			return false
		}
		return aws.ToString(input.Filters[0].Name) == "tag:Name" &&
			len(input.Filters[0].Values) == 1 && input.Filters[0].Values[0] == name &&
			aws.ToString(input.Filters[1].Name) == "instance-state-name" &&
			input.Filters[1].Values[0] == "running"
	})
}

func instance(id, privateIP, publicIP string) types.Instance {
	inst := types.Instance{
		InstanceId: aws.String(id),
		State:      &types.InstanceState{Name: types.InstanceStateNameRunning},
	}
	if privateIP != "" {
		inst.PrivateIpAddress = aws.String(privateIP)
	}
	if publicIP != "" {
		inst.PublicIpAddress = aws.String(publicIP)
		inst.PublicDnsName = aws.String("ec2-" + publicIP + ".compute.amazonaws.com")
	}
	return inst
}

func TestLookupInstance_Success(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)
	mockClient.On("DescribeInstances", mock.Anything, byName("vm-a")).Return(&ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{
			{Instances: []types.Instance{instance("i-0abc", "10.0.1.5", "3.3.3.3")}},
		},
	}, nil)

	service := NewInstanceServiceWithClient(mockClient, logging.NewMockLogger())
	loc, err := service.LookupInstance(context.Background(), "vm-a")

	require.NoError(t, err)
	assert.Equal(t, "vm-a", loc.Name)
	assert.Equal(t, "i-0abc", loc.InstanceID)
	assert.Equal(t, "10.0.1.5", loc.PrivateIP)
	assert.Equal(t, "3.3.3.3", loc.PublicIP)
	assert.Equal(t, "ec2-3.3.3.3.compute.amazonaws.com", loc.PublicDNS)
	assert.Equal(t, "running", loc.State)
}

func TestLookupInstance_SeveralMatchesUsesFirst(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)
	mockClient.On("DescribeInstances", mock.Anything, byName("vm-a")).Return(&ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{
			{Instances: []types.Instance{instance("i-first", "10.0.1.5", "")}},
			{Instances: []types.Instance{instance("i-second", "10.0.1.6", "")}},
		},
	}, nil)

	var buf bytes.Buffer
	service := NewInstanceServiceWithClient(mockClient, logging.NewLogger(&buf, logging.INFO, false))
	loc, err := service.LookupInstance(context.Background(), "vm-a")

	require.NoError(t, err)
	assert.Equal(t, "i-first", loc.InstanceID)
	assert.Contains(t, buf.String(), "2 running instances are named vm-a")
}

func TestLookupInstance_NotFound(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)
	mockClient.On("DescribeInstances", mock.Anything, byName("ghost")).Return(&ec2.DescribeInstancesOutput{}, nil)

	service := NewInstanceServiceWithClient(mockClient, logging.NewMockLogger())
	loc, err := service.LookupInstance(context.Background(), "ghost")

	assert.Nil(t, loc)
	var awsErr *Error
	require.True(t, errors.As(err, &awsErr))
	assert.Equal(t, ErrResourceNotFound, awsErr.Category)
	assert.Equal(t, EC2ResourceType, awsErr.ResourceType)
	assert.Equal(t, "ghost", awsErr.ResourceID)
}

func TestLookupInstance_EmptyName(t *testing.T) {
	service := NewInstanceServiceWithClient(mocks.NewEC2ClientAPI(t), logging.NewMockLogger())
	_, err := service.LookupInstance(context.Background(), "")

	assert.True(t, IsErrorCategory(err, ErrInvalidInput))
}

func TestLookupInstance_AWSError(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)
	apiErr := &smithy.GenericAPIError{Code: "UnauthorizedOperation", Message: "You are not authorized to perform this operation."}
	mockClient.On("DescribeInstances", mock.Anything, byName("vm-a")).Return(nil, apiErr)

	service := NewInstanceServiceWithClient(mockClient, logging.NewMockLogger())
	_, err := service.LookupInstance(context.Background(), "vm-a")

	var awsErr *Error
	require.True(t, errors.As(err, &awsErr))
	assert.Equal(t, ErrPermissionDenied, awsErr.Category)
	assert.Equal(t, "vm-a", awsErr.ResourceID)
	assert.ErrorIs(t, err, apiErr)
}

func TestResolveAddress(t *testing.T) {
	tests := []struct {
		name        string
		usePublicIP bool
		port        int
		instance    types.Instance
		want        string
		wantErr     ErrorCategory
	}{
		{
			name:     "Private address with default port",
			instance: instance("i-1", "10.0.1.5", "3.3.3.3"),
			want:     "10.0.1.5:22",
		},
		{
			name:        "Public address when requested",
			usePublicIP: true,
			port:        2222,
			instance:    instance("i-1", "10.0.1.5", "3.3.3.3"),
			want:        "3.3.3.3:2222",
		},
		{
			name:        "Public requested but absent falls back to private",
			usePublicIP: true,
			instance:    instance("i-1", "10.0.1.5", ""),
			want:        "10.0.1.5:22",
		},
		{
			name:     "No address at all",
			instance: instance("i-1", "", ""),
			wantErr:  ErrResourceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := mocks.NewEC2ClientAPI(t)
			mockClient.On("DescribeInstances", mock.Anything, byName("vm-a")).Return(&ec2.DescribeInstancesOutput{
				Reservations: []types.Reservation{{Instances: []types.Instance{tt.instance}}},
			}, nil)

			service := NewInstanceServiceWithClient(mockClient, logging.NewMockLogger())
			service.UsePublicIP = tt.usePublicIP
			service.Port = tt.port

			got, err := service.ResolveAddress(context.Background(), "vm-a")
			if tt.wantErr != "" {
				assert.True(t, IsErrorCategory(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveInstanceID(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)
	mockClient.On("DescribeInstances", mock.Anything, byName("vm-a")).Return(&ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{{Instances: []types.Instance{instance("i-0abc", "10.0.1.5", "")}}},
	}, nil)

	service := NewInstanceServiceWithClient(mockClient, logging.NewMockLogger())
	id, err := service.ResolveInstanceID(context.Background(), "vm-a")

	require.NoError(t, err)
	assert.Equal(t, "i-0abc", id)
}

func TestClassifyAWSError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{name: "API not found code", err: &smithy.GenericAPIError{Code: "InvalidInstanceID.NotFound"}, want: ErrResourceNotFound},
		{name: "API throttling code", err: &smithy.GenericAPIError{Code: "RequestLimitExceeded"}, want: ErrThrottling},
		{name: "API expired token", err: &smithy.GenericAPIError{Code: "ExpiredToken"}, want: ErrConfigurationError},
		{name: "API bad filter", err: &smithy.GenericAPIError{Code: "InvalidParameterValue"}, want: ErrInvalidInput},
		{name: "Unknown API code", err: &smithy.GenericAPIError{Code: "Unavailable", Message: "try later"}, want: ErrInternalError},
		{name: "Network message", err: errors.New("dial tcp: lookup ec2.eu-west-1.amazonaws.com: no such host"), want: ErrNetworkError},
		{name: "Credentials message", err: errors.New("failed to retrieve credentials"), want: ErrConfigurationError},
		{name: "Plain message", err: errors.New("boom"), want: ErrInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAWSError(tt.err, EC2ResourceType, "vm-a")
			assert.Equal(t, tt.want, got.Category)
			assert.Equal(t, tt.err, got.Unwrap())
		})
	}

	assert.Nil(t, ClassifyAWSError(nil, EC2ResourceType, "vm-a"))
}

func TestErrorMessage(t *testing.T) {
	err := NewAWSError(ErrResourceNotFound, EC2ResourceType, "ghost", "no running instance with this Name tag", nil)
	assert.Equal(t, "resource_not_found: no running instance with this Name tag [resource: EC2/ghost]", err.Error())

	wrapped := NewAWSError(ErrConfigurationError, "", "", "unable to load AWS SDK config", errors.New("no region"))
	assert.Equal(t, "configuration_error: unable to load AWS SDK config: no region", wrapped.Error())
}
