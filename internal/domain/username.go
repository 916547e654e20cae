package domain

import (
	"errors"
	"fmt"
	"regexp"
)

const maxUsernameLength = 39

// GitHub usernames are letters, digits and hyphens, with no hyphen at either
// end.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

// ValidateUsername rejects strings that cannot be a GitHub login. Checked
// before any network call so a typo fails fast instead of as an API error.
func ValidateUsername(name string) error {
	if name == "" {
		return errors.New("username must not be empty")
	}
	if len(name) > maxUsernameLength {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLength)
	}
	if !usernamePattern.MatchString(name) {
		return fmt.Errorf("username %q may only contain letters, digits and hyphens, with no hyphen at the start or end", name)
	}
	return nil
}
