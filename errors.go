package rtree

import (
	"errors"
	"fmt"
)

// ErrInvalidEnvelope is returned when a caller-supplied envelope has
// x1 > x2 or y1 > y2. spec.md treats this as a contract violation the
// tree must survive without corrupting its state; returning an error
// (rather than panicking) lets that hold in release builds too.
var ErrInvalidEnvelope = errors.New("rtree: invalid envelope: x1 > x2 or y1 > y2")

func validateEnvelope(e Envelope) error {
	if !e.valid() {
		return fmt.Errorf("%w: got (%d,%d,%d,%d)", ErrInvalidEnvelope, e.X1, e.Y1, e.X2, e.Y2)
	}
	return nil
}
