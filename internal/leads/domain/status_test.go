package domain

import "testing"

func TestIsKnownStatus(t *testing.T) {
	for _, status := range []string{StatusNew, StatusContacted, StatusQualified, StatusProposal, StatusClosed, StatusLost} {
		if !IsKnownStatus(status) {
			t.Fatalf("expected %q to be a known status", status)
		}
	}
	for _, status := range []string{"", "won", "CLOSED"} {
		if IsKnownStatus(status) {
			t.Fatalf("expected %q to be rejected", status)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	if !IsTerminalStatus(StatusClosed) || !IsTerminalStatus(StatusLost) {
		t.Fatal("closed and lost end the pipeline")
	}
	for _, status := range []string{StatusNew, StatusContacted, StatusQualified, StatusProposal, "unknown"} {
		if IsTerminalStatus(status) {
			t.Fatalf("expected %q to be non-terminal", status)
		}
	}
}
