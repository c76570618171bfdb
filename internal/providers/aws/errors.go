package aws

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

type ErrorCategory string

// Error categories for better error classification and handling
const (
	// ErrResourceNotFound is returned when no running instance matches the lookup
	ErrResourceNotFound ErrorCategory = "resource_not_found"

	// ErrPermissionDenied is returned when AWS API access is denied
	ErrPermissionDenied ErrorCategory = "permission_denied"

	// ErrThrottling is returned when AWS API throttles the request
	ErrThrottling ErrorCategory = "request_throttled"

	// ErrConfigurationError is returned when there's an issue with AWS configuration
	ErrConfigurationError ErrorCategory = "configuration_error"

	// ErrNetworkError is returned for network-related errors accessing AWS API
	ErrNetworkError ErrorCategory = "network_error"

	// ErrInvalidInput is returned when invalid input is provided
	ErrInvalidInput ErrorCategory = "invalid_input"

	// ErrInternalError is returned for unexpected internal errors
	ErrInternalError ErrorCategory = "internal_error"
)

// EC2ResourceType is the resource type reported for instance lookups
const EC2ResourceType = "EC2"

// Error represents an error that occurred during AWS operations with
// additional context about what went wrong.
type Error struct {
	// Category for programmatic error handling
	Category ErrorCategory

	// ResourceType identifies the AWS resource type
	ResourceType string

	// ResourceID is the instance name or ID the lookup was for
	ResourceID string

	// Message provides human-readable details
	Message string

	// Underlying is the wrapped cause of this error
	Underlying error
}

// Error returns a formatted error message
func (e *Error) Error() string {
	var msg string
	switch {
	case e.ResourceID != "":
		msg = fmt.Sprintf("%s: %s [resource: %s/%s]", e.Category, e.Message, e.ResourceType, e.ResourceID)
	case e.ResourceType != "":
		msg = fmt.Sprintf("%s: %s [resource type: %s]", e.Category, e.Message, e.ResourceType)
	default:
		msg = fmt.Sprintf("%s: %s", e.Category, e.Message)
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewAWSError creates a new AWS error with the specified details
func NewAWSError(category ErrorCategory, resourceType, resourceID, message string, underlying error) *Error {
	return &Error{
		Category:     category,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Message:      message,
		Underlying:   underlying,
	}
}

// IsErrorCategory checks if an error belongs to a specific error category
func IsErrorCategory(err error, category ErrorCategory) bool {
	if err == nil {
		return false
	}

	var awsErr *Error
	if errors.As(err, &awsErr) {
		return awsErr.Category == category
	}

	return false
}

// ClassifyAWSError classifies an AWS error by its API error code, falling
// back to the message for transport and SDK configuration failures.
func ClassifyAWSError(err error, resourceType, resourceID string) *Error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if category, ok := categoryForCode(apiErr.ErrorCode()); ok {
			return NewAWSError(category, resourceType, resourceID, messageFor(category), err)
		}
	}

	errMsg := err.Error()
	switch {
	// Reference: https://docs.aws.amazon.com/AWSEC2/latest/APIReference/errors-overview.html
	case contains(errMsg, "InvalidInstanceID.NotFound", "InvalidInstanceID"):
		return NewAWSError(ErrResourceNotFound, resourceType, resourceID, messageFor(ErrResourceNotFound), err)

	case contains(errMsg, "UnauthorizedOperation", "AuthFailure"):
		return NewAWSError(ErrPermissionDenied, resourceType, resourceID, messageFor(ErrPermissionDenied), err)

	case contains(errMsg, "RequestLimitExceeded"):
		return NewAWSError(ErrThrottling, resourceType, resourceID, messageFor(ErrThrottling), err)

	case contains(errMsg, "no such host", "connection refused", "timeout"):
		return NewAWSError(ErrNetworkError, resourceType, resourceID, messageFor(ErrNetworkError), err)

	case contains(errMsg, "InvalidClientTokenId", "could not find region", "failed to retrieve credentials"):
		return NewAWSError(ErrConfigurationError, resourceType, resourceID, messageFor(ErrConfigurationError), err)

	default:
		return NewAWSError(ErrInternalError, resourceType, resourceID, messageFor(ErrInternalError), err)
	}
}

func categoryForCode(code string) (ErrorCategory, bool) {
	switch {
	case strings.HasPrefix(code, "InvalidInstanceID"):
		return ErrResourceNotFound, true
	case code == "UnauthorizedOperation", code == "AuthFailure", code == "AccessDenied", code == "AccessDeniedException":
		return ErrPermissionDenied, true
	case code == "RequestLimitExceeded", code == "Throttling", code == "ThrottlingException":
		return ErrThrottling, true
	case code == "InvalidClientTokenId", code == "ExpiredToken", code == "UnrecognizedClientException":
		return ErrConfigurationError, true
	case strings.HasPrefix(code, "InvalidParameter"), code == "ValidationError", code == "MalformedQueryString", code == "InvalidFilter":
		return ErrInvalidInput, true
	}
	return "", false
}

func messageFor(category ErrorCategory) string {
	switch category {
	case ErrResourceNotFound:
		return "Resource not found"
	case ErrPermissionDenied:
		return "Access denied"
	case ErrThrottling:
		return "Request throttled"
	case ErrNetworkError:
		return "Network error while accessing AWS API"
	case ErrConfigurationError:
		return "AWS SDK configuration error"
	case ErrInvalidInput:
		return "Invalid input"
	default:
		return "Internal error occurred"
	}
}

// contains checks if the error message contains any of the provided substrings
func contains(s string, substrings ...string) bool {
	lower := strings.ToLower(s)
	for _, substr := range substrings {
		if strings.Contains(lower, strings.ToLower(substr)) {
			return true
		}
	}
	return false
}
