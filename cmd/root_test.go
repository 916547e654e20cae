package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func jsonParseError(t *testing.T) error {
	t.Helper()
	var v any
	err := json.Unmarshal([]byte("{"), &v)
	assert.Error(t, err)
	return err
}

func TestDescribeError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "context deadline",
			err:  context.DeadlineExceeded,
			want: "Network timeout error",
		},
		{
			name: "wrapped context deadline",
			err:  fmt.Errorf("failed to fetch activity from GitHub API: %w", context.DeadlineExceeded),
			want: "Network timeout error",
		},
		{
			name: "url error with timeout cause",
			err:  &url.Error{Op: "Post", URL: "https://api.github.com/graphql", Err: timeoutError{}},
			want: "Network timeout error",
		},
		{
			name: "url error without timeout cause",
			err:  &url.Error{Op: "Post", URL: "https://api.github.com/graphql", Err: errors.New("connection refused")},
			want: "Network connection error",
		},
		{
			name: "json syntax error",
			err:  jsonParseError(t),
			want: "Data parsing error",
		},
		{
			name: "anything else passes through verbatim",
			err:  errors.New("GITHUB_TOKEN environment variable is required"),
			want: "GITHUB_TOKEN environment variable is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, describeError(tc.err), tc.want)
		})
	}
}
