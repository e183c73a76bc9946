package workflow

import (
	"errors"
	"testing"
)

func TestInitialStatus(t *testing.T) {
	if Initial() != StatusCreated {
		t.Fatalf("expected initial status created, got %s", Initial())
	}
}

func TestApprovalChainHappyPath(t *testing.T) {
	chain := []Status{StatusForwarded, StatusInVerification, StatusInProgress, StatusCompleted}
	cur := Initial()
	for _, next := range chain {
		got, err := Transition(cur, next)
		if err != nil {
			t.Fatalf("transition %s -> %s: %v", cur, next, err)
		}
		cur = got
	}
	if cur != StatusCompleted {
		t.Fatalf("expected completed at end of chain, got %s", cur)
	}
}

func TestIllegalTransitions(t *testing.T) {
	cases := []struct{ from, to Status }{
		{StatusCreated, StatusInProgress},
		{StatusCreated, StatusCompleted},
		{StatusForwarded, StatusInProgress},
		{StatusInVerification, StatusCompleted},
		{StatusRevision, StatusInProgress},
		{StatusRevision, StatusForwarded},
		{StatusRevision, StatusCompleted},
	}
	for _, tc := range cases {
		if _, err := Transition(tc.from, tc.to); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s -> %s: expected ErrInvalidTransition, got %v", tc.from, tc.to, err)
		}
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	if !StatusCompleted.Terminal() {
		t.Fatal("completed must be terminal")
	}
	for _, to := range []Status{StatusCreated, StatusForwarded, StatusInVerification, StatusInProgress, StatusRevision, StatusCompleted} {
		if _, err := Transition(StatusCompleted, to); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("completed -> %s: expected ErrInvalidTransition, got %v", to, err)
		}
	}
}

func TestRevisionReentersOnlyAtVerification(t *testing.T) {
	// revision is reachable only from in_progress
	for _, from := range []Status{StatusCreated, StatusForwarded, StatusInVerification, StatusCompleted} {
		if CanTransition(from, StatusRevision) {
			t.Errorf("%s -> revision must not be legal", from)
		}
	}
	if !CanTransition(StatusInProgress, StatusRevision) {
		t.Fatal("in_progress -> revision must be legal")
	}
	// and the only way out is back into verification
	if !CanTransition(StatusRevision, StatusInVerification) {
		t.Fatal("revision -> in_verification must be legal")
	}
	for _, to := range []Status{StatusCreated, StatusForwarded, StatusInProgress, StatusCompleted, StatusRevision} {
		if CanTransition(StatusRevision, to) {
			t.Errorf("revision -> %s must not be legal", to)
		}
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "CREATED", "done", "pending", "in progress"} {
		if _, err := ParseStatus(raw); !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("ParseStatus(%q): expected ErrUnknownStatus, got %v", raw, err)
		}
	}
	for _, raw := range []string{"created", "forwarded", "in_verification", "in_progress", "completed", "revision"} {
		if _, err := ParseStatus(raw); err != nil {
			t.Errorf("ParseStatus(%q): unexpected error %v", raw, err)
		}
	}
}

func TestStatusLabels(t *testing.T) {
	want := map[Status]string{
		StatusCreated:        "Created by TU",
		StatusForwarded:      "Forwarded to Coordinator",
		StatusInVerification: "In Document Verification",
		StatusInProgress:     "In Progress",
		StatusCompleted:      "Completed",
		StatusRevision:       "Needs Revision",
	}
	for st, label := range want {
		if st.Label() != label {
			t.Errorf("label for %s: got %q want %q", st, st.Label(), label)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"admin", "tu", "coordinator", "staff"} {
		if _, err := ParseRole(raw); err != nil {
			t.Errorf("ParseRole(%q): unexpected error %v", raw, err)
		}
	}
	for _, raw := range []string{"", "ADMIN", "owner", "superuser"} {
		if _, err := ParseRole(raw); err == nil {
			t.Errorf("ParseRole(%q): expected error", raw)
		}
	}
}
