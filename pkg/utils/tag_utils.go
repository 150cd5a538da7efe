package utils

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// GetTagsMap converts a slice of tags to a map
func GetTagsMap(tags []types.Tag) map[string]string {
	result := make(map[string]string)
	for _, tag := range tags {
		if tag.Key != nil && tag.Value != nil {
			result[*tag.Key] = *tag.Value
		}
	}
	return result
}

// NewTag builds a single EC2 tag
func NewTag(key, value string) types.Tag {
	return types.Tag{
		Key:   aws.String(key),
		Value: aws.String(value),
	}
}

// NewFilter builds an EC2 filter matching any of the given values
func NewFilter(name string, values ...string) types.Filter {
	return types.Filter{
		Name:   aws.String(name),
		Values: values,
	}
}

// TagFilterName returns the filter name that matches resources by tag key
func TagFilterName(key string) string {
	return "tag:" + key
}
