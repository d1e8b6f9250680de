package audit

import (
	"strings"

	"fifo/internal/pkg/errs"
)

const (
	SystemUsername    = "system"
	SystemDisplayName = "automatic"
)

// Actor is whoever triggered an audited change.
type Actor struct {
	username    string
	displayName string
}

// NewActor requires a username. A blank display name falls back to the username.
func NewActor(username, displayName string) (Actor, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Actor{}, errs.NewValueIsRequiredError("username")
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = username
	}

	return Actor{username: username, displayName: displayName}, nil
}

// SystemActor is recorded when no caller identity can be resolved.
func SystemActor() Actor {
	return Actor{username: SystemUsername, displayName: SystemDisplayName}
}

func (a Actor) Username() string {
	return a.username
}

func (a Actor) DisplayName() string {
	return a.displayName
}

func (a Actor) IsZero() bool {
	return a.username == ""
}
