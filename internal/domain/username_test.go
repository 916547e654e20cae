package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		name        string
		username    string
		expectError bool
	}{
		{name: "simple login", username: "octocat"},
		{name: "single character", username: "a"},
		{name: "digits and hyphens", username: "user-42-name"},
		{name: "mixed case", username: "OctoCat"},
		{name: "exactly 39 characters", username: strings.Repeat("a", 39)},
		{name: "empty", username: "", expectError: true},
		{name: "40 characters", username: strings.Repeat("a", 40), expectError: true},
		{name: "leading hyphen", username: "-octocat", expectError: true},
		{name: "trailing hyphen", username: "octocat-", expectError: true},
		{name: "underscore", username: "octo_cat", expectError: true},
		{name: "dot", username: "octo.cat", expectError: true},
		{name: "space", username: "octo cat", expectError: true},
		{name: "slash", username: "acme/octocat", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUsername(tc.username)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
