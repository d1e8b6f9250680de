package parcel

import (
	"fmt"
	"strings"

	"fifo/internal/pkg/errs"
)

// Profile is the size class of a cage. Each class carries a fixed backlog weight.
type Profile int

const (
	// ProfileUnspecified marks an absent profile in a request.
	ProfileUnspecified Profile = iota
	ProfileP
	ProfileM
	ProfileG
	ProfileNotApplicable
)

const notApplicableName = "N/A"

func getProfileStrings() map[Profile]string {
	return map[Profile]string{
		ProfileUnspecified:   "",
		ProfileP:             "P",
		ProfileM:             "M",
		ProfileG:             "G",
		ProfileNotApplicable: notApplicableName,
	}
}

// ParseProfile maps a profile name to a Profile. Blank input yields ProfileUnspecified.
func ParseProfile(s string) (Profile, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for p, str := range getProfileStrings() {
		if str == name {
			return p, nil
		}
	}
	return ProfileUnspecified, errs.NewValueIsInvalidErrorWithCause(
		"profile", fmt.Errorf("%q is not one of P, M, G, N/A", s))
}

// Value is the backlog weight of the profile. It is always derived, never stored on its own.
func (p Profile) Value() int {
	switch p {
	case ProfileP:
		return 250
	case ProfileM:
		return 80
	case ProfileG:
		return 10
	case ProfileUnspecified, ProfileNotApplicable:
		return 0
	default:
		return 0
	}
}

// IsSizeClass reports whether p is one of P, M, G.
func (p Profile) IsSizeClass() bool {
	return p == ProfileP || p == ProfileM || p == ProfileG
}

// Validate accepts the profiles a stored row may carry.
func (p Profile) Validate() error {
	if p.IsSizeClass() || p == ProfileNotApplicable {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("profile", fmt.Errorf("%d is not a valid profile", p))
}

func (p Profile) String() string {
	if str, ok := getProfileStrings()[p]; ok {
		return str
	}
	return ""
}
