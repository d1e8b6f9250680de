package kernel

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fifo/internal/pkg/errs"
	"fifo/internal/pkg/guard"
)

const (
	// TrackingIDPrefix prefixes every sequentially allocated tracking ID.
	TrackingIDPrefix = "CG"

	// TrackingIDMaxLength bounds operator-printed labels.
	TrackingIDMaxLength = 64
)

// ErrTrackingIDIsNotConstructed is returned when a zero-value TrackingID is used.
var ErrTrackingIDIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking ID must be created via NewTrackingID or SequentialTrackingID")

// TrackingID is the human-facing identifier printed on a cage label.
//
// Labels issued by the allocator look like CG000042. Operators may also print
// custom labels, so any non-blank text up to TrackingIDMaxLength characters is
// accepted; it is trimmed and upper-cased so that scans are case-insensitive.
type TrackingID struct {
	value string
	guard guard.ConstructorGuard
}

// NewTrackingID normalizes and validates a scanned or typed label.
func NewTrackingID(raw string) (TrackingID, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return TrackingID{}, errs.NewValueIsRequiredError("trackingID")
	}
	if n := utf8.RuneCountInString(value); n > TrackingIDMaxLength {
		return TrackingID{}, errs.NewValueIsOutOfRangeError("trackingID length", n, 1, TrackingIDMaxLength)
	}
	if strings.ContainsAny(value, "\r\n\t") {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingID", fmt.Errorf("%q contains control characters", value))
	}

	return TrackingID{value: value, guard: guard.NewConstructorGuard()}, nil
}

// SequentialTrackingID formats the n-th allocator candidate, e.g. 42 -> CG000042.
func SequentialTrackingID(n int) TrackingID {
	return TrackingID{
		value: fmt.Sprintf("%s%06d", TrackingIDPrefix, n),
		guard: guard.NewConstructorGuard(),
	}
}

func (t TrackingID) String() string {
	return t.value
}

func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}

func (t TrackingID) Validate() error {
	return t.guard.Validate(ErrTrackingIDIsNotConstructed)
}
