package parcel

import (
	"fmt"
	"strings"

	"fifo/internal/pkg/errs"
)

// Buffer is the staging area a parcel waits in.
//
// RTS, EHA and SAL are the operational buffers an operator can enter a parcel
// into. Pending is reserved for pre-allocated placeholder rows created when a
// batch of labels is printed; it is never accepted from operators.
type Buffer int

const (
	BufferUnknown Buffer = iota
	BufferRTS
	BufferEHA
	BufferSAL
	BufferPending
)

func getBufferStrings() map[Buffer]string {
	return map[Buffer]string{
		BufferUnknown: "UNKNOWN",
		BufferRTS:     "RTS",
		BufferEHA:     "EHA",
		BufferSAL:     "SAL",
		BufferPending: "PENDING",
	}
}

// OperationalBuffers are the buffers counted by the dashboard, in display order.
func OperationalBuffers() []Buffer {
	return []Buffer{BufferRTS, BufferEHA, BufferSAL}
}

// ParseBuffer maps the stored or requested name to a Buffer, ignoring case.
func ParseBuffer(s string) (Buffer, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for b, str := range getBufferStrings() {
		if b != BufferUnknown && str == name {
			return b, nil
		}
	}
	return BufferUnknown, errs.NewValueIsInvalidErrorWithCause(
		"buffer", fmt.Errorf("%q is not a known buffer", s))
}

// Validate accepts every buffer a stored row may carry, Pending included.
func (b Buffer) Validate() error {
	if b <= BufferUnknown || b > BufferPending {
		return errs.NewValueIsInvalidErrorWithCause("buffer", fmt.Errorf("%d is not a valid buffer", b))
	}
	return nil
}

// ValidateForEntry accepts only buffers an operator may enter a parcel into.
func (b Buffer) ValidateForEntry() error {
	if !b.IsOperational() {
		return errs.NewValueIsInvalidErrorWithCause(
			"buffer", fmt.Errorf("%s is not one of RTS, EHA, SAL", b))
	}
	return nil
}

func (b Buffer) IsOperational() bool {
	return b == BufferRTS || b == BufferEHA || b == BufferSAL
}

// RequiresProfile reports whether parcels in b must carry a size profile.
func (b Buffer) RequiresProfile() bool {
	return b == BufferRTS || b == BufferEHA
}

// CountsTowardsBacklog reports whether parcels in b are part of the backlog.
// SAL is outbound and excluded.
func (b Buffer) CountsTowardsBacklog() bool {
	return b.RequiresProfile()
}

func (b Buffer) String() string {
	if str, ok := getBufferStrings()[b]; ok {
		return str
	}
	return "UNKNOWN"
}
