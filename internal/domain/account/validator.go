package account

import (
	"fmt"
	"regexp"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 32
	minPasswordLen = 8
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

type Validator struct{}

func NewValidator() Validator {
	return Validator{}
}

func (Validator) ValidateRegister(username, password string) error {
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return fmt.Errorf("username must be between %d and %d characters", minUsernameLen, maxUsernameLen)
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits, dot, dash and underscore")
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

func (Validator) ValidateLogin(username string) error {
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return fmt.Errorf("invalid username")
	}
	return nil
}
