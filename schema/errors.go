package schema

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is returned when a stored or imported record fails validation.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError describes which record failed validation and why.
// It matches ErrMalformedRecord under errors.Is.
type MalformedRecordError struct {
	Collection string // e.g. "history", "reflections", "scores"
	Index      int    // position in the collection, -1 when not applicable
	Reason     string
}

func (e *MalformedRecordError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s[%d]: %s", ErrMalformedRecord, e.Collection, e.Index, e.Reason)
	}
	if e.Collection != "" {
		return fmt.Sprintf("%s: %s: %s", ErrMalformedRecord, e.Collection, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedRecord, e.Reason)
}

// Is reports whether target is ErrMalformedRecord.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// Malformed builds a MalformedRecordError with no collection context.
func Malformed(format string, args ...any) error {
	return &MalformedRecordError{Index: -1, Reason: fmt.Sprintf(format, args...)}
}

// InCollection attaches collection and index context to a malformed record error.
// Other errors are returned unchanged.
func InCollection(err error, collection string, index int) error {
	var mre *MalformedRecordError
	if errors.As(err, &mre) {
		return &MalformedRecordError{Collection: collection, Index: index, Reason: mre.Reason}
	}
	return err
}
