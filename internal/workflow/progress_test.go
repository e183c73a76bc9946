package workflow

import (
	"errors"
	"testing"
)

func TestValidateProgress(t *testing.T) {
	cases := []struct {
		name          string
		current, next int
		wantErr       error
	}{
		{"forward", 20, 60, nil},
		{"unchanged", 60, 60, nil},
		{"to full", 60, 100, nil},
		{"backward", 60, 40, ErrProgressDecreased},
		{"negative", 0, -1, ErrProgressOutOfRange},
		{"over 100", 90, 101, ErrProgressOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateProgress(tc.current, tc.next)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ValidateProgress(%d,%d) = %v, want %v", tc.current, tc.next, err, tc.wantErr)
			}
		})
	}
}

func TestValidateCompletion(t *testing.T) {
	if err := ValidateCompletion(100, 3, 3); err != nil {
		t.Fatalf("complete at 100%% with all items done: %v", err)
	}
	if err := ValidateCompletion(99, 3, 3); !errors.Is(err, ErrIncompleteProgress) {
		t.Fatalf("completion below 100%% must fail, got %v", err)
	}
	if err := ValidateCompletion(100, 2, 3); !errors.Is(err, ErrIncompleteProgress) {
		t.Fatalf("completion with open checklist items must fail, got %v", err)
	}
	// no checklist at all: progress alone decides
	if err := ValidateCompletion(100, 0, 0); err != nil {
		t.Fatalf("completion without checklist: %v", err)
	}
}
