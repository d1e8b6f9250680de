package audit

import (
	"fmt"
	"strings"

	"fifo/internal/pkg/errs"
)

// Action is the lifecycle operation an audit entry records.
type Action int

const (
	ActionUnknown Action = iota
	ActionEntry
	ActionExit
	ActionMove
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown: "UNKNOWN",
		ActionEntry:   "ENTRY",
		ActionExit:    "EXIT",
		ActionMove:    "MOVE",
	}
}

func ParseAction(s string) (Action, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for a, str := range getActionStrings() {
		if a != ActionUnknown && str == name {
			return a, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"action", fmt.Errorf("%q is not one of ENTRY, EXIT, MOVE", s))
}

func (a Action) Validate() error {
	if a < ActionEntry || a > ActionMove {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "UNKNOWN"
}
