package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// notFoundCodes are EC2 error codes for resources that no longer exist
var notFoundCodes = map[string]bool{
	"InvalidSnapshot.NotFound": true,
	"InvalidVolume.NotFound":   true,
}

// IsNotFound checks if the error reports a missing snapshot or volume
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return notFoundCodes[apiErr.ErrorCode()]
	}
	return false
}
