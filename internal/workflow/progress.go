package workflow

import "errors"

// Assignment progress rules. Progress is an integer percentage that may only
// move forward within a single assignment cycle; the only way down is the
// in_progress -> revision transition, which closes the cycle and starts a new
// assignment.

var (
	// ErrProgressOutOfRange is returned for values outside 0..100.
	ErrProgressOutOfRange = errors.New("progress must be between 0 and 100")
	// ErrProgressDecreased is returned when an update would move progress backward.
	ErrProgressDecreased = errors.New("progress cannot decrease within an assignment")
	// ErrIncompleteProgress is returned when completion is recorded before 100%.
	ErrIncompleteProgress = errors.New("assignment cannot complete below 100% progress")
)

// ValidateProgress checks that an update from current to next is legal.
func ValidateProgress(current, next int) error {
	if next < 0 || next > 100 {
		return ErrProgressOutOfRange
	}
	if next < current {
		return ErrProgressDecreased
	}
	return nil
}

// ValidateCompletion checks that an assignment may be marked completed.
// Every checklist item must be done and progress must already be 100.
func ValidateCompletion(progress int, itemsDone, itemsTotal int) error {
	if progress != 100 {
		return ErrIncompleteProgress
	}
	if itemsTotal > 0 && itemsDone != itemsTotal {
		return ErrIncompleteProgress
	}
	return nil
}
